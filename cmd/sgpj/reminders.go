package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"sgpj-client/internal/db"
)

var remindersCmd = &cobra.Command{
	Use:   "reminders",
	Short: "Automatic hearing, deadline and review reminders",
}

var remindersRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Scan the backend and deliver reminders",
	Long: `Scan the backend and deliver reminders through every configured
channel (email, Telegram, SMS, Kafka).

Without --once the scan repeats every NOTIFICATION_CHECK_INTERVAL_MINUTES
until interrupted.`,
	Args: cobra.NoArgs,
	RunE: runRemindersRun,
}

var remindersOnce bool

var remindersHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "List delivered reminders from the Postgres ledger",
	Args:  cobra.NoArgs,
	RunE:  runRemindersHistory,
}

var (
	historyLimit  int
	historyOffset int
)

var remindersPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete old entries from the Postgres ledger",
	Args:  cobra.NoArgs,
	RunE:  runRemindersPrune,
}

var pruneOlderThan time.Duration

func init() {
	rootCmd.AddCommand(remindersCmd)
	remindersCmd.AddCommand(remindersRunCmd, remindersHistoryCmd, remindersPruneCmd)

	remindersRunCmd.Flags().BoolVar(&remindersOnce, "once", false, "Scan once, deliver and exit")

	remindersHistoryCmd.Flags().IntVar(&historyLimit, "limit", 50, "Maximum records")
	remindersHistoryCmd.Flags().IntVar(&historyOffset, "offset", 0, "Records to skip")

	remindersPruneCmd.Flags().DurationVar(&pruneOlderThan, "older-than", 30*24*time.Hour, "Age of the entries to delete")
}

func runRemindersRun(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	d, err := sgpj.newDaemon(ctx, nil)
	if err != nil {
		return err
	}

	if remindersOnce {
		defer d.close()
		queued, scanErr := d.service.RunOnce(ctx, d.scanner)
		delivered := d.service.Flush()
		fmt.Fprintf(cmd.OutOrStdout(), "%d recordatorios en cola, %d procesados.\n", queued, delivered)
		return scanErr
	}

	d.start(ctx)
	defer d.stop()
	d.service.Run(ctx, d.scanner, sgpj.cfg.CheckInterval())
	return nil
}

func (a *app) openLedger(ctx context.Context) (*db.DB, error) {
	if a.cfg.DB.DSN == "" {
		return nil, fmt.Errorf("DB_DSN is not set; the in-memory ledger keeps no history")
	}
	conn, err := db.New(ctx, a.cfg.DB.DSN)
	if err != nil {
		return nil, err
	}
	if err := conn.EnsureSchema(ctx); err != nil {
		conn.Close()
		return nil, err
	}
	return conn, nil
}

func runRemindersHistory(cmd *cobra.Command, args []string) error {
	conn, err := sgpj.openLedger(cmd.Context())
	if err != nil {
		return err
	}
	defer conn.Close()

	entries, total, err := conn.History(cmd.Context(), historyLimit, historyOffset)
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{e.SentAt.Local().Format("2006-01-02 15:04"), e.Kind, e.Key})
	}
	w := cmd.OutOrStdout()
	printTable(w, []string{"ENVIADO", "TIPO", "CLAVE"}, rows)
	fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("%d de %d", len(entries), total)))
	return nil
}

func runRemindersPrune(cmd *cobra.Command, args []string) error {
	conn, err := sgpj.openLedger(cmd.Context())
	if err != nil {
		return err
	}
	defer conn.Close()

	n, err := conn.Prune(cmd.Context(), sgpj.now().Add(-pruneOlderThan))
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d entradas eliminadas.\n", n)
	return nil
}
