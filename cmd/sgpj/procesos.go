package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"sgpj-client/internal/alerts"
	"sgpj-client/internal/models"
	"sgpj-client/internal/permission"
)

var procesosCmd = &cobra.Command{
	Use:     "procesos",
	Aliases: []string{"p"},
	Short:   "Manage judicial procesos",
}

var procesosListCmd = &cobra.Command{
	Use:   "list",
	Short: "List procesos with their review status",
	Args:  cobra.NoArgs,
	RunE:  runProcesosList,
}

var procesosListParams models.ProcesosParams

var procesosGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one proceso",
	Args:  cobra.ExactArgs(1),
	RunE:  runProcesosGet,
}

var procesosReviewCmd = &cobra.Command{
	Use:   "review <id>",
	Short: "Mark a proceso as reviewed today",
	Args:  cobra.ExactArgs(1),
	RunE:  runProcesosReview,
}

var procesosUnreviewCmd = &cobra.Command{
	Use:   "unreview <id>",
	Short: "Clear the last review date of a proceso",
	Args:  cobra.ExactArgs(1),
	RunE:  runProcesosUnreview,
}

var procesosSearchCmd = &cobra.Command{
	Use:   "search <text>",
	Short: "Search procesos by expediente or party",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runProcesosSearch,
}

var procesosSearchLimit int

var procesosDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a proceso",
	Args:  cobra.ExactArgs(1),
	RunE:  runProcesosDelete,
}

var procesosBitacoraCmd = &cobra.Command{
	Use:   "bitacora <id>",
	Short: "Show the change log of a proceso",
	Args:  cobra.ExactArgs(1),
	RunE:  runProcesosBitacora,
}

var procesosObservarCmd = &cobra.Command{
	Use:   "observar <id> <texto>",
	Short: "Add an observation to the change log of a proceso",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runProcesosObservar,
}

func init() {
	rootCmd.AddCommand(procesosCmd)
	procesosCmd.AddCommand(procesosListCmd, procesosGetCmd, procesosReviewCmd, procesosUnreviewCmd,
		procesosSearchCmd, procesosDeleteCmd, procesosBitacoraCmd, procesosObservarCmd)

	procesosListCmd.Flags().StringVar(&procesosListParams.Estado, "estado", "", "Filter by estado")
	procesosListCmd.Flags().IntVar(&procesosListParams.Skip, "skip", 0, "Records to skip")
	procesosListCmd.Flags().IntVar(&procesosListParams.Limit, "limit", 0, "Maximum records")

	procesosSearchCmd.Flags().IntVar(&procesosSearchLimit, "limit", 20, "Maximum results")
}

func procesoRows(procesos []models.Proceso, review func(models.Proceso) string) [][]string {
	rows := make([][]string, 0, len(procesos))
	for _, p := range procesos {
		rows = append(rows, []string{
			fmt.Sprint(p.ID),
			p.Expediente,
			p.Demandante,
			p.Demandado,
			p.Juzgado,
			p.Estado,
			review(p),
		})
	}
	return rows
}

var procesoHeaders = []string{"ID", "EXPEDIENTE", "DEMANDANTE", "DEMANDADO", "JUZGADO", "ESTADO", "REVISIÓN"}

func (a *app) reviewColumn(p models.Proceso) string {
	return reviewBadge(alerts.Review(p.FechaUltimaRevision, a.now()))
}

func runProcesosList(cmd *cobra.Command, args []string) error {
	procesos, err := sgpj.clients.Procesos.List(cmd.Context(), procesosListParams)
	if err != nil {
		return err
	}
	printTable(cmd.OutOrStdout(), procesoHeaders, procesoRows(procesos, sgpj.reviewColumn))
	return nil
}

func runProcesosGet(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	p, err := sgpj.clients.Procesos.Get(cmd.Context(), id)
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	printFields(w, "Expediente "+p.Expediente, [][2]string{
		{"Tipo", p.Tipo},
		{"Materia", p.Materia},
		{"Demandante", p.Demandante},
		{"Demandado", p.Demandado},
		{"Juzgado", p.Juzgado},
		{"Juez", p.Juez},
		{"Estado", p.Estado},
		{"Inicio", p.FechaInicio},
		{"Última revisión", orDash(p.FechaUltimaRevision)},
		{"Revisión", sgpj.reviewColumn(p)},
		{"Responsable", orDash(p.AbogadoResponsableNombre)},
	})

	resoluciones, err := sgpj.clients.Resoluciones.ByProceso(cmd.Context(), id)
	if err != nil {
		sgpj.logger.Warnf("Resoluciones for proceso %d unavailable: %v", id, err)
		return nil
	}
	fmt.Fprintln(w)
	printTable(w, resolucionHeaders, sgpj.resolucionRows(resoluciones))
	return nil
}

func runProcesosReview(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if err := sgpj.require(cmd.Context(), permission.Procesos, permission.Update); err != nil {
		return err
	}
	p, err := sgpj.clients.Procesos.MarkAsReviewed(cmd.Context(), id, sgpj.now())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Proceso %s marcado como revisado (%s).\n", p.Expediente, orDash(p.FechaUltimaRevision))
	return nil
}

func runProcesosUnreview(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if err := sgpj.require(cmd.Context(), permission.Procesos, permission.Update); err != nil {
		return err
	}
	p, err := sgpj.clients.Procesos.ClearReview(cmd.Context(), id)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Revisión de %s eliminada.\n", p.Expediente)
	return nil
}

func runProcesosSearch(cmd *cobra.Command, args []string) error {
	procesos, err := sgpj.clients.Procesos.Search(cmd.Context(), strings.Join(args, " "), procesosSearchLimit)
	if err != nil {
		return err
	}
	printTable(cmd.OutOrStdout(), procesoHeaders, procesoRows(procesos, sgpj.reviewColumn))
	return nil
}

func runProcesosDelete(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if err := sgpj.require(cmd.Context(), permission.Procesos, permission.Delete); err != nil {
		return err
	}
	res, err := sgpj.clients.Procesos.Delete(cmd.Context(), id)
	if err != nil {
		return err
	}
	msg := res.Message
	if msg == "" {
		msg = fmt.Sprintf("Proceso %d eliminado.", id)
	}
	fmt.Fprintln(cmd.OutOrStdout(), msg)
	return nil
}

func runProcesosBitacora(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if err := sgpj.require(cmd.Context(), permission.Bitacora, permission.Read); err != nil {
		return err
	}
	entries, err := sgpj.clients.Bitacora.ByProceso(cmd.Context(), id)
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{e.FechaCambio, e.Accion, orDash(e.CampoModificado), orDash(e.ValorAnterior), orDash(e.ValorNuevo), orDash(e.UsuarioNombre)})
	}
	printTable(cmd.OutOrStdout(), []string{"FECHA", "ACCIÓN", "CAMPO", "ANTES", "DESPUÉS", "USUARIO"}, rows)
	return nil
}

func runProcesosObservar(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if err := sgpj.require(cmd.Context(), permission.Procesos, permission.Update); err != nil {
		return err
	}
	entry, err := sgpj.clients.Bitacora.Create(cmd.Context(), id, models.BitacoraCreate{
		Accion:      models.AccionObservacion,
		Descripcion: strings.Join(args[1:], " "),
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Observación %d registrada.\n", entry.ID)
	return nil
}
