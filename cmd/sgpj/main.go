// Package main implements the sgpj CLI.
package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"sgpj-client/internal/permission"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error: "+err.Error()))
		if errors.Is(err, permission.ErrForbidden) {
			os.Exit(3)
		}
		os.Exit(1)
	}
}

var (
	flagAPIURL   string
	flagTimeout  time.Duration
	flagLogLevel string
)

// sgpj is built once per invocation by the root pre-run hook.
var sgpj *app

var rootCmd = &cobra.Command{
	Use:           "sgpj",
	Short:         "SGPJ - gestión de procesos judiciales desde la terminal",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(appOptions{
			APIURL:   flagAPIURL,
			Timeout:  flagTimeout,
			LogLevel: flagLogLevel,
			Stderr:   cmd.ErrOrStderr(),
		})
		if err != nil {
			return err
		}
		sgpj = a
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if sgpj != nil {
			sgpj.close()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagAPIURL, "api-url", "", "Backend base URL without /api/v1 (overrides SGPJ_API_URL)")
	rootCmd.PersistentFlags().DurationVar(&flagTimeout, "timeout", 0, "Per-request timeout (default 15s)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (debug, info, warn, error)")
}
