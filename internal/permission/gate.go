// Package permission decides what the signed-in user may do, based on the
// role reported by the backend.
package permission

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"sgpj-client/internal/models"
)

// Resources and actions understood by the gate.
const (
	Procesos       = "procesos"
	Audiencias     = "audiencias"
	Resoluciones   = "resoluciones"
	Directorio     = "directorio"
	Notificaciones = "notificaciones"
	Finanzas       = "finanzas"
	Bitacora       = "bitacora"
	Dashboard      = "dashboard"

	Read   = "read"
	Create = "create"
	Update = "update"
	Delete = "delete"
)

var ErrForbidden = errors.New("forbidden")

var crud = []string{Read, Create, Update, Delete}

// roles mirrors the backend authorization table. Roles missing here have
// no permissions at all.
var roles = map[string]map[string][]string{
	models.RolAdmin: {
		Procesos:       crud,
		Audiencias:     crud,
		Resoluciones:   crud,
		Directorio:     crud,
		Notificaciones: {Read},
		Finanzas:       crud,
		Bitacora:       {Read},
		Dashboard:      {Read},
	},
	models.RolPracticante: {
		Procesos:       {Read},
		Audiencias:     {Read, Create, Update},
		Resoluciones:   {Read},
		Directorio:     {Read, Create},
		Notificaciones: {Read},
		Finanzas:       {},
		Bitacora:       {},
		Dashboard:      {},
	},
}

// Allowed reports whether role may perform action on resource. An empty
// role is treated as practicante.
func Allowed(role, resource, action string) bool {
	role = strings.ToLower(strings.TrimSpace(role))
	if role == "" {
		role = models.RolPracticante
	}
	for _, a := range roles[role][resource] {
		if a == action {
			return true
		}
	}
	return false
}

type UserFetcher interface {
	Me(ctx context.Context) (models.User, error)
}

// Gate caches the current user's role. It is safe for concurrent use.
type Gate struct {
	fetch UserFetcher

	mu      sync.RWMutex
	role    string
	loading bool
}

func NewGate(fetch UserFetcher) *Gate {
	return &Gate{fetch: fetch}
}

// Load fetches the current user. On failure the gate keeps practicante
// permissions and returns the error.
func (g *Gate) Load(ctx context.Context) error {
	g.mu.Lock()
	g.loading = true
	g.mu.Unlock()

	user, err := g.fetch.Me(ctx)

	g.mu.Lock()
	defer g.mu.Unlock()
	g.loading = false
	if err != nil {
		g.role = ""
		return fmt.Errorf("failed to load current user: %w", err)
	}
	g.role = user.Rol
	return nil
}

func (g *Gate) Loading() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.loading
}

// Role returns the effective role in lower case.
func (g *Gate) Role() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.role == "" {
		return models.RolPracticante
	}
	return strings.ToLower(g.role)
}

func (g *Gate) HasPermission(resource, action string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return Allowed(g.role, resource, action)
}

func (g *Gate) Require(resource, action string) error {
	if g.HasPermission(resource, action) {
		return nil
	}
	return fmt.Errorf("%w: No tienes permiso para %s %s", ErrForbidden, action, resource)
}
