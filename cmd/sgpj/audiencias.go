package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sgpj-client/internal/alerts"
	"sgpj-client/internal/models"
	"sgpj-client/internal/resources"
)

var audienciasCmd = &cobra.Command{
	Use:     "audiencias",
	Aliases: []string{"a"},
	Short:   "Hearings and their countdowns",
}

var audienciasListCmd = &cobra.Command{
	Use:   "list",
	Short: "List hearings",
	Args:  cobra.NoArgs,
	RunE:  runAudienciasList,
}

var audienciasFilters models.AudienciaFilters

var audienciasProximasCmd = &cobra.Command{
	Use:   "proximas",
	Short: "List the next hearings",
	Args:  cobra.NoArgs,
	RunE:  runAudienciasProximas,
}

var audienciasProximasLimit int

var audienciasGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one hearing with its proceso",
	Args:  cobra.ExactArgs(1),
	RunE:  runAudienciasGet,
}

var resolucionesCmd = &cobra.Command{
	Use:     "resoluciones",
	Aliases: []string{"r"},
	Short:   "Court rulings and their deadlines",
}

var resolucionesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List resoluciones with their deadline alert",
	Args:  cobra.NoArgs,
	RunE:  runResolucionesList,
}

var (
	resolucionesSkip    int
	resolucionesLimit   int
	resolucionesProceso int
)

var resolucionesGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one resolucion",
	Args:  cobra.ExactArgs(1),
	RunE:  runResolucionesGet,
}

var diligenciasCmd = &cobra.Command{
	Use:   "diligencias",
	Short: "Scheduled field work",
}

var diligenciasListCmd = &cobra.Command{
	Use:   "list",
	Short: "List diligencias",
	Args:  cobra.NoArgs,
	RunE:  runDiligenciasList,
}

var (
	diligenciasProceso int
	diligenciasSkip    int
	diligenciasLimit   int
)

func init() {
	rootCmd.AddCommand(audienciasCmd, resolucionesCmd, diligenciasCmd)
	audienciasCmd.AddCommand(audienciasListCmd, audienciasProximasCmd, audienciasGetCmd)
	resolucionesCmd.AddCommand(resolucionesListCmd, resolucionesGetCmd)
	diligenciasCmd.AddCommand(diligenciasListCmd)

	audienciasListCmd.Flags().IntVar(&audienciasFilters.ProcesoID, "proceso", 0, "Filter by proceso id")
	audienciasListCmd.Flags().StringVar(&audienciasFilters.FechaDesde, "desde", "", "From date (YYYY-MM-DD)")
	audienciasListCmd.Flags().StringVar(&audienciasFilters.FechaHasta, "hasta", "", "To date (YYYY-MM-DD)")
	audienciasListCmd.Flags().StringVar(&audienciasFilters.Tipo, "tipo", "", "Filter by hearing type")
	audienciasListCmd.Flags().IntVar(&audienciasFilters.Limit, "limit", 0, "Maximum records")

	audienciasProximasCmd.Flags().IntVar(&audienciasProximasLimit, "limit", 10, "Maximum records")

	resolucionesListCmd.Flags().IntVar(&resolucionesSkip, "skip", 0, "Records to skip")
	resolucionesListCmd.Flags().IntVar(&resolucionesLimit, "limit", 100, "Maximum records")
	resolucionesListCmd.Flags().IntVar(&resolucionesProceso, "proceso", 0, "Filter by proceso id")

	diligenciasListCmd.Flags().IntVar(&diligenciasProceso, "proceso", 0, "Filter by proceso id")
	diligenciasListCmd.Flags().IntVar(&diligenciasSkip, "skip", 0, "Records to skip")
	diligenciasListCmd.Flags().IntVar(&diligenciasLimit, "limit", 100, "Maximum records")
}

var audienciaHeaders = []string{"ID", "PROCESO", "TIPO", "FECHA", "HORA", "SEDE", "FALTA"}

func (a *app) audienciaRows(list []models.Audiencia) [][]string {
	now := a.now()
	rows := make([][]string, 0, len(list))
	for _, au := range list {
		rows = append(rows, []string{
			fmt.Sprint(au.ID),
			fmt.Sprint(au.ProcesoID),
			au.Tipo,
			au.Fecha,
			au.Hora,
			orDash(au.Sede),
			countdownBadge(alerts.Countdown(au.Fecha, au.Hora, now)),
		})
	}
	return rows
}

func runAudienciasList(cmd *cobra.Command, args []string) error {
	list, err := sgpj.clients.Audiencias.List(cmd.Context(), audienciasFilters)
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	upcoming, past := alerts.PartitionHearings(list.Audiencias, sgpj.now())
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("Próximas (%d)", len(upcoming))))
	printTable(w, audienciaHeaders, sgpj.audienciaRows(upcoming))
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("Pasadas (%d)", len(past))))
	printTable(w, audienciaHeaders, sgpj.audienciaRows(past))
	return nil
}

func runAudienciasProximas(cmd *cobra.Command, args []string) error {
	list, err := sgpj.clients.Audiencias.Proximas(cmd.Context(), audienciasProximasLimit)
	if err != nil {
		return err
	}
	printTable(cmd.OutOrStdout(), audienciaHeaders, sgpj.audienciaRows(list))
	return nil
}

func runAudienciasGet(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	au, err := sgpj.clients.Audiencias.Get(cmd.Context(), id)
	if err != nil {
		return err
	}
	now := sgpj.now()
	expediente := "-"
	if p := resources.LookupProceso(cmd.Context(), sgpj.clients.Procesos, au.ProcesoID, sgpj.logger); p != nil {
		expediente = p.Expediente
	}
	notify := "no"
	if alerts.ShouldNotify(au.Fecha, au.Hora, now) {
		notify = warnStyle.Render("sí")
	}
	printFields(cmd.OutOrStdout(), "Audiencia "+au.Tipo, [][2]string{
		{"Expediente", expediente},
		{"Fecha", au.Fecha + " " + au.Hora},
		{"Falta", countdownBadge(alerts.Countdown(au.Fecha, au.Hora, now))},
		{"Sede", orDash(au.Sede)},
		{"Enlace", orDash(au.Link)},
		{"Notas", orDash(au.Notas)},
		{"Aviso pendiente", notify},
	})
	return nil
}

var resolucionHeaders = []string{"ID", "PROCESO", "TIPO", "ACCIÓN", "LÍMITE", "ESTADO", "PLAZO"}

func (a *app) resolucionRows(list []models.Resolucion) [][]string {
	now := a.now()
	rows := make([][]string, 0, len(list))
	for _, r := range list {
		plazo := mutedStyle.Render("-")
		if r.EstadoAccion != models.EstadoAccionCompletada {
			plazo = deadlineBadge(alerts.Deadline(r.FechaLimite, now))
		}
		proceso := fmt.Sprint(r.ProcesoID)
		if r.Expediente != nil {
			proceso = *r.Expediente
		}
		rows = append(rows, []string{
			fmt.Sprint(r.ID),
			proceso,
			r.Tipo,
			r.AccionRequerida,
			r.FechaLimite,
			r.EstadoAccion,
			plazo,
		})
	}
	return rows
}

func runResolucionesList(cmd *cobra.Command, args []string) error {
	list, err := sgpj.clients.Resoluciones.List(cmd.Context(), resolucionesSkip, resolucionesLimit, resolucionesProceso)
	if err != nil {
		return err
	}
	printTable(cmd.OutOrStdout(), resolucionHeaders, sgpj.resolucionRows(list))
	return nil
}

func runResolucionesGet(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	r, err := sgpj.clients.Resoluciones.Get(cmd.Context(), id)
	if err != nil {
		return err
	}
	expediente := orDash(r.Expediente)
	if r.Expediente == nil {
		if p := resources.LookupProceso(cmd.Context(), sgpj.clients.Procesos, r.ProcesoID, sgpj.logger); p != nil {
			expediente = p.Expediente
		}
	}
	printFields(cmd.OutOrStdout(), "Resolución "+r.Tipo, [][2]string{
		{"Expediente", expediente},
		{"Notificada", r.FechaNotificacion},
		{"Acción", r.AccionRequerida},
		{"Fecha límite", r.FechaLimite},
		{"Plazo", deadlineBadge(alerts.Deadline(r.FechaLimite, sgpj.now()))},
		{"Responsable", r.Responsable},
		{"Estado", r.EstadoAccion},
		{"Notas", orDash(r.Notas)},
	})
	return nil
}

func runDiligenciasList(cmd *cobra.Command, args []string) error {
	var (
		list []models.Diligencia
		err  error
	)
	if diligenciasProceso > 0 {
		list, err = sgpj.clients.Diligencias.ByProceso(cmd.Context(), diligenciasProceso, diligenciasSkip, diligenciasLimit)
	} else {
		list, err = sgpj.clients.Diligencias.List(cmd.Context(), diligenciasSkip, diligenciasLimit)
	}
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(list))
	for _, d := range list {
		rows = append(rows, []string{
			fmt.Sprint(d.ID),
			fmt.Sprint(d.ProcesoID),
			d.Titulo,
			d.Fecha,
			d.Hora,
			d.Estado,
		})
	}
	printTable(cmd.OutOrStdout(), []string{"ID", "PROCESO", "TÍTULO", "FECHA", "HORA", "ESTADO"}, rows)
	return nil
}
