package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"sgpj-client/internal/models"
)

var directorioCmd = &cobra.Command{
	Use:     "directorio",
	Aliases: []string{"d"},
	Short:   "Clients, courts and court specialists",
}

var directorioListCmd = &cobra.Command{
	Use:   "list",
	Short: "List directory entries",
	Args:  cobra.NoArgs,
	RunE:  runDirectorioList,
}

var directorioParams = models.DirectorioParams{Limit: 100}

var directorioSearchCmd = &cobra.Command{
	Use:   "search <text>",
	Short: "Search the directory",
	Args:  cobra.ArbitraryArgs,
	RunE:  runDirectorioSearch,
}

var directorioSearchTipo string

var directorioStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Count entries per type",
	Args:  cobra.NoArgs,
	RunE:  runDirectorioStats,
}

func init() {
	rootCmd.AddCommand(directorioCmd)
	directorioCmd.AddCommand(directorioListCmd, directorioSearchCmd, directorioStatsCmd)

	directorioListCmd.Flags().StringVar(&directorioParams.Tipo, "tipo", "", "Entry type (cliente, juzgado, especialista)")
	directorioListCmd.Flags().BoolVar(&directorioParams.ActivosSolo, "activos", false, "Only active entries")
	directorioListCmd.Flags().IntVar(&directorioParams.Skip, "skip", 0, "Records to skip")
	directorioListCmd.Flags().IntVar(&directorioParams.Limit, "limit", 100, "Maximum records")

	directorioSearchCmd.Flags().StringVar(&directorioSearchTipo, "tipo", "", "Entry type")
}

func directorioRows(entries []models.DirectorioEntry) [][]string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		doc := "-"
		if e.DocNumero != nil {
			doc = strings.TrimSpace(orDash(e.DocTipo) + " " + *e.DocNumero)
		}
		rows = append(rows, []string{
			fmt.Sprint(e.ID),
			e.Tipo,
			e.Nombre,
			doc,
			orDash(e.Email),
			orDash(e.Telefono),
		})
	}
	return rows
}

var directorioHeaders = []string{"ID", "TIPO", "NOMBRE", "DOCUMENTO", "EMAIL", "TELÉFONO"}

func runDirectorioList(cmd *cobra.Command, args []string) error {
	entries, err := sgpj.clients.Directorio.List(cmd.Context(), directorioParams)
	if err != nil {
		return err
	}
	printTable(cmd.OutOrStdout(), directorioHeaders, directorioRows(entries))
	return nil
}

func runDirectorioSearch(cmd *cobra.Command, args []string) error {
	entries, err := sgpj.clients.Directorio.Search(cmd.Context(), strings.Join(args, " "), directorioSearchTipo)
	if err != nil {
		return err
	}
	printTable(cmd.OutOrStdout(), directorioHeaders, directorioRows(entries))
	return nil
}

func runDirectorioStats(cmd *cobra.Command, args []string) error {
	stats, err := sgpj.clients.Directorio.Estadisticas(cmd.Context())
	if err != nil {
		return err
	}
	tipos := make([]string, 0, len(stats.PorTipo))
	for tipo := range stats.PorTipo {
		tipos = append(tipos, tipo)
	}
	sort.Strings(tipos)
	rows := make([][]string, 0, len(tipos)+1)
	for _, tipo := range tipos {
		rows = append(rows, []string{tipo, fmt.Sprint(stats.PorTipo[tipo])})
	}
	rows = append(rows, []string{labelStyle.Render("total"), fmt.Sprint(stats.Total)})
	printTable(cmd.OutOrStdout(), []string{"TIPO", "CANTIDAD"}, rows)
	return nil
}
