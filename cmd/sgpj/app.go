package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"sgpj-client/internal/apiclient"
	"sgpj-client/internal/config"
	"sgpj-client/internal/logging"
	"sgpj-client/internal/permission"
	"sgpj-client/internal/resources"
	"sgpj-client/internal/tokenstore"
)

// SessionExpired is printed whenever the backend rejects the token.
const SessionExpired = "Sesión expirada. Inicia sesión nuevamente con `sgpj login`."

type appOptions struct {
	APIURL   string
	Timeout  time.Duration
	LogLevel string
	Stderr   io.Writer
	// Tokens replaces the session file, mainly for tests.
	Tokens tokenstore.Store
	Config *config.Config
}

// app carries everything a command needs for one invocation.
type app struct {
	cfg     config.Config
	logger  *logging.Logger
	client  *apiclient.Client
	clients *resources.Clients
	auth    *resources.Auth
	gate    *permission.Gate
	stderr  io.Writer
	now     func() time.Time
}

func newApp(opts appOptions) (*app, error) {
	var cfg config.Config
	if opts.Config != nil {
		cfg = *opts.Config
	} else {
		loaded, err := config.Load()
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if opts.APIURL != "" {
		cfg.API.URL = opts.APIURL
		cfg.API.BaseURL = config.ResolveBaseURL(opts.APIURL, cfg.API.Host)
	}
	if opts.LogLevel != "" {
		cfg.Logging.Level = opts.LogLevel
	}
	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	tokens := opts.Tokens
	if tokens == nil {
		tokens = tokenstore.NewFileStore(cfg.Session.TokenFile)
	}

	// Interactive commands log to stderr only; the daemons open the
	// rotating file logger themselves.
	logger := logging.NewWriter(stderr, cfg.Logging.Level)

	timeout := cfg.Timeout()
	if opts.Timeout > 0 {
		timeout = opts.Timeout
	}
	client := apiclient.New(apiclient.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: timeout,
		Tokens:  tokens,
		OnUnauthorized: func() {
			fmt.Fprintln(stderr, warnStyle.Render(SessionExpired))
		},
		Logger: logger,
	})
	auth := resources.NewAuth(client)

	return &app{
		cfg:     cfg,
		logger:  logger,
		client:  client,
		clients: resources.New(client),
		auth:    auth,
		gate:    permission.NewGate(auth),
		stderr:  stderr,
		now:     time.Now,
	}, nil
}

func (a *app) close() {
	a.logger.Close()
}

// require loads the current role and checks it may perform action on
// resource. It runs before every mutating command.
func (a *app) require(ctx context.Context, resource, action string) error {
	if !a.auth.IsAuthenticated() {
		return apiclient.ErrNotAuthenticated
	}
	if err := a.gate.Load(ctx); err != nil {
		return err
	}
	return a.gate.Require(resource, action)
}

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}

func parseIDs(args []string) ([]int, error) {
	ids := make([]int, 0, len(args))
	for _, arg := range args {
		id, err := parseID(arg)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
