package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sgpj-client/internal/models"
	"sgpj-client/internal/permission"
)

var notificacionesCmd = &cobra.Command{
	Use:     "notificaciones",
	Aliases: []string{"n"},
	Short:   "Backend notifications",
}

var notificacionesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List notifications",
	Args:  cobra.NoArgs,
	RunE:  runNotificacionesList,
}

var notificacionesFilters models.NotificacionFilters

var notificacionesLeerCmd = &cobra.Command{
	Use:   "leer <id>...",
	Short: "Mark notifications as read",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runNotificacionesLeer,
}

var notificacionesStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show read and unread counts",
	Args:  cobra.NoArgs,
	RunE:  runNotificacionesStats,
}

var notificacionesEnviarCmd = &cobra.Command{
	Use:   "enviar <audiencia-id>",
	Short: "Ask the backend to notify a hearing now",
	Args:  cobra.ExactArgs(1),
	RunE:  runNotificacionesEnviar,
}

var enviarReq models.EnviarNotificacionRequest

func init() {
	rootCmd.AddCommand(notificacionesCmd)
	notificacionesCmd.AddCommand(notificacionesListCmd, notificacionesLeerCmd, notificacionesStatsCmd, notificacionesEnviarCmd)

	notificacionesListCmd.Flags().BoolVar(&notificacionesFilters.SoloNoLeidas, "no-leidas", false, "Only unread notifications")
	notificacionesListCmd.Flags().StringVar(&notificacionesFilters.Estado, "estado", "", "Filter by estado")
	notificacionesListCmd.Flags().StringVar(&notificacionesFilters.Tipo, "tipo", "", "Filter by tipo")
	notificacionesListCmd.Flags().StringVar(&notificacionesFilters.Canal, "canal", "", "Filter by canal")
	notificacionesListCmd.Flags().IntVar(&notificacionesFilters.Limit, "limit", 0, "Maximum records")

	notificacionesEnviarCmd.Flags().StringSliceVar(&enviarReq.Canales, "canal", []string{models.CanalSistema}, "Channels (email, sms, sistema)")
	notificacionesEnviarCmd.Flags().StringVar(&enviarReq.EmailDestinatario, "email", "", "Recipient email")
	notificacionesEnviarCmd.Flags().StringVar(&enviarReq.TelefonoDestinatario, "telefono", "", "Recipient phone in E.164")
	notificacionesEnviarCmd.Flags().StringVar(&enviarReq.MensajePersonalizado, "mensaje", "", "Custom message")
}

func runNotificacionesList(cmd *cobra.Command, args []string) error {
	list, err := sgpj.clients.Notificaciones.List(cmd.Context(), notificacionesFilters)
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(list.Notificaciones))
	for _, n := range list.Notificaciones {
		estado := n.Estado
		if n.Estado != models.EstadoNotifLeida {
			estado = warnStyle.Render(n.Estado)
		}
		rows = append(rows, []string{fmt.Sprint(n.ID), n.Tipo, n.Canal, n.Titulo, estado, n.CreatedAt})
	}
	w := cmd.OutOrStdout()
	printTable(w, []string{"ID", "TIPO", "CANAL", "TÍTULO", "ESTADO", "CREADA"}, rows)
	fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("%d en total, %d sin leer", list.Total, list.NoLeidas)))
	return nil
}

func runNotificacionesLeer(cmd *cobra.Command, args []string) error {
	ids, err := parseIDs(args)
	if err != nil {
		return err
	}
	if err := sgpj.clients.Notificaciones.MarcarVariasLeidas(cmd.Context(), ids); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d notificaciones marcadas como leídas.\n", len(ids))
	return nil
}

func runNotificacionesStats(cmd *cobra.Command, args []string) error {
	stats, err := sgpj.clients.Notificaciones.Stats(cmd.Context())
	if err != nil {
		return err
	}
	printFields(cmd.OutOrStdout(), "Notificaciones", [][2]string{
		{"Total", fmt.Sprint(stats.TotalNotificaciones)},
		{"Sin leer", fmt.Sprint(stats.NoLeidas)},
		{"Leídas", fmt.Sprint(stats.Leidas)},
	})
	return nil
}

func runNotificacionesEnviar(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if err := sgpj.require(cmd.Context(), permission.Audiencias, permission.Update); err != nil {
		return err
	}
	req := enviarReq
	req.AudienciaID = id
	sent, err := sgpj.clients.Notificaciones.EnviarAudiencia(cmd.Context(), req)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %d notificaciones creadas.\n", successStyle.Render("Enviado:"), len(sent))
	return nil
}
