package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sgpj-client/internal/alerts"
	"sgpj-client/internal/models"
	"sgpj-client/internal/permission"
)

var finanzasCmd = &cobra.Command{
	Use:     "finanzas",
	Aliases: []string{"f"},
	Short:   "Contracts and payments",
}

var finanzasContratosCmd = &cobra.Command{
	Use:   "contratos",
	Short: "List contracts with their balance",
	Args:  cobra.NoArgs,
	RunE:  runFinanzasContratos,
}

var (
	contratosFilters models.ContratoFilters
	contratosQuery   string
)

var finanzasStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show billing totals",
	Args:  cobra.NoArgs,
	RunE:  runFinanzasStats,
}

var finanzasPagosCmd = &cobra.Command{
	Use:   "pagos [contrato-id]",
	Short: "List payments, optionally of one contract",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runFinanzasPagos,
}

var finanzasPagarCmd = &cobra.Command{
	Use:   "pagar <contrato-id>",
	Short: "Register a payment against a contract",
	Args:  cobra.ExactArgs(1),
	RunE:  runFinanzasPagar,
}

var pagoCreate models.PagoCreate

var finanzasDeudasCmd = &cobra.Command{
	Use:   "deudas",
	Short: "Rank contracts by pending balance",
	Args:  cobra.NoArgs,
	RunE:  runFinanzasDeudas,
}

var deudasLimit int

func init() {
	rootCmd.AddCommand(finanzasCmd)
	finanzasCmd.AddCommand(finanzasContratosCmd, finanzasStatsCmd, finanzasDeudasCmd, finanzasPagosCmd, finanzasPagarCmd)

	finanzasContratosCmd.Flags().StringVar(&contratosFilters.Estado, "estado", "", "Filter by estado (activo, completado, cancelado)")
	finanzasContratosCmd.Flags().IntVar(&contratosFilters.ClienteID, "cliente", 0, "Filter by client id")
	finanzasContratosCmd.Flags().IntVar(&contratosFilters.ProcesoID, "proceso", 0, "Filter by proceso id")
	finanzasContratosCmd.Flags().StringVarP(&contratosQuery, "query", "q", "", "Free text search")

	finanzasDeudasCmd.Flags().IntVar(&deudasLimit, "limit", alerts.TopDeudasLimit, "How many debts to show (0 for all)")

	finanzasPagarCmd.Flags().Float64Var(&pagoCreate.Monto, "monto", 0, "Amount paid")
	finanzasPagarCmd.Flags().StringVar(&pagoCreate.Medio, "medio", "", "Payment method")
	finanzasPagarCmd.Flags().StringVar(&pagoCreate.Referencia, "referencia", "", "Payment reference")
	finanzasPagarCmd.Flags().StringVar(&pagoCreate.FechaPago, "fecha", "", "Payment date (YYYY-MM-DD)")
	finanzasPagarCmd.Flags().StringVar(&pagoCreate.Notas, "notas", "", "Notes")
	_ = finanzasPagarCmd.MarkFlagRequired("monto")
}

func contratoRows(list []models.Contrato) [][]string {
	rows := make([][]string, 0, len(list))
	for _, c := range list {
		rows = append(rows, []string{
			c.Codigo,
			orDash(c.ClienteNombre),
			orDash(c.ProcesoExpediente),
			money(c.MontoTotal),
			money(c.MontoPagado),
			money(c.MontoPendiente()),
			fmt.Sprintf("%d%%", c.PorcentajePagado()),
			c.Estado,
		})
	}
	return rows
}

func runFinanzasContratos(cmd *cobra.Command, args []string) error {
	if err := sgpj.require(cmd.Context(), permission.Finanzas, permission.Read); err != nil {
		return err
	}
	var (
		list []models.Contrato
		err  error
	)
	if contratosQuery != "" {
		list, err = sgpj.clients.Contratos.Search(cmd.Context(), contratosQuery)
	} else {
		list, err = sgpj.clients.Contratos.List(cmd.Context(), contratosFilters)
	}
	if err != nil {
		return err
	}
	printTable(cmd.OutOrStdout(),
		[]string{"CÓDIGO", "CLIENTE", "EXPEDIENTE", "TOTAL", "PAGADO", "PENDIENTE", "AVANCE", "ESTADO"},
		contratoRows(list))
	return nil
}

func runFinanzasDeudas(cmd *cobra.Command, args []string) error {
	if err := sgpj.require(cmd.Context(), permission.Finanzas, permission.Read); err != nil {
		return err
	}
	list, err := sgpj.clients.Contratos.List(cmd.Context(), models.ContratoFilters{})
	if err != nil {
		return err
	}
	deudas, total := alerts.TopDeudas(list, deudasLimit)
	if len(deudas) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), mutedStyle.Render("No hay deudas registradas."))
		return nil
	}
	printTable(cmd.OutOrStdout(),
		[]string{"CÓDIGO", "CLIENTE", "EXPEDIENTE", "TOTAL", "PAGADO", "PENDIENTE", "AVANCE", "ESTADO"},
		contratoRows(deudas))
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", labelStyle.Render("Total pendiente:"), money(total))
	return nil
}

func runFinanzasStats(cmd *cobra.Command, args []string) error {
	if err := sgpj.require(cmd.Context(), permission.Finanzas, permission.Read); err != nil {
		return err
	}
	stats, err := sgpj.clients.Contratos.Stats(cmd.Context())
	if err != nil {
		return err
	}
	printFields(cmd.OutOrStdout(), "Finanzas", [][2]string{
		{"Contratos", fmt.Sprint(stats.Total)},
		{"Activos", fmt.Sprint(stats.Activos)},
		{"Completados", fmt.Sprint(stats.Completados)},
		{"Monto total", money(stats.MontoTotal)},
		{"Pagado", money(stats.MontoPagado)},
		{"Pendiente", money(stats.MontoPendiente)},
	})
	return nil
}

func runFinanzasPagos(cmd *cobra.Command, args []string) error {
	if err := sgpj.require(cmd.Context(), permission.Finanzas, permission.Read); err != nil {
		return err
	}
	var (
		pagos []models.Pago
		err   error
	)
	if len(args) == 1 {
		id, perr := parseID(args[0])
		if perr != nil {
			return perr
		}
		pagos, err = sgpj.clients.Pagos.ByContrato(cmd.Context(), id)
	} else {
		pagos, err = sgpj.clients.Pagos.List(cmd.Context(), 0)
	}
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(pagos))
	for _, p := range pagos {
		rows = append(rows, []string{
			fmt.Sprint(p.ID),
			orDash(p.ContratoCodigo),
			p.FechaPago,
			money(p.Monto),
			orDash(p.Medio),
			orDash(p.Referencia),
		})
	}
	printTable(cmd.OutOrStdout(), []string{"ID", "CONTRATO", "FECHA", "MONTO", "MEDIO", "REFERENCIA"}, rows)
	return nil
}

func runFinanzasPagar(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if err := sgpj.require(cmd.Context(), permission.Finanzas, permission.Create); err != nil {
		return err
	}
	contrato, err := sgpj.clients.Contratos.Get(cmd.Context(), id)
	if err != nil {
		return err
	}
	pago, err := sgpj.clients.Pagos.Create(cmd.Context(), contrato, pagoCreate)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s a %s. Pendiente: %s\n",
		successStyle.Render("Pago registrado:"), money(pago.Monto), contrato.Codigo,
		money(contrato.MontoPendiente()-pago.Monto))
	return nil
}
