package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sgpj-client/internal/models"
	"sgpj-client/internal/permission"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and store the session token",
	Args:  cobra.NoArgs,
	RunE:  runLogin,
}

var (
	loginEmail    string
	loginPassword string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account",
	Args:  cobra.NoArgs,
	RunE:  runRegister,
}

var registerReq models.RegisterRequest

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored session token",
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged in user and their permissions",
	Args:  cobra.NoArgs,
	RunE:  runWhoami,
}

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Exchange the session token for a fresh one",
	Args:  cobra.NoArgs,
	RunE:  runRefresh,
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the backend is reachable",
	Args:  cobra.NoArgs,
	RunE:  runHealth,
}

var usuariosCmd = &cobra.Command{
	Use:   "usuarios",
	Short: "List the registered users",
	Args:  cobra.NoArgs,
	RunE:  runUsuarios,
}

func init() {
	rootCmd.AddCommand(loginCmd, registerCmd, logoutCmd, whoamiCmd, refreshCmd, healthCmd, usuariosCmd)

	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Account password")
	_ = loginCmd.MarkFlagRequired("email")
	_ = loginCmd.MarkFlagRequired("password")

	registerCmd.Flags().StringVar(&registerReq.Nombre, "nombre", "", "Full name")
	registerCmd.Flags().StringVar(&registerReq.Email, "email", "", "Account email")
	registerCmd.Flags().StringVar(&registerReq.Password, "password", "", "Password (min 6 characters)")
	registerCmd.Flags().StringVar(&registerReq.Telefono, "telefono", "", "Phone number")
	registerCmd.Flags().StringVar(&registerReq.Rol, "rol", "", "Role (admin, abogado, practicante)")
}

func runLogin(cmd *cobra.Command, args []string) error {
	res, err := sgpj.auth.Login(cmd.Context(), models.LoginRequest{Email: loginEmail, Password: loginPassword})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s)\n",
		successStyle.Render("Sesión iniciada como"), res.User.Nombre, res.User.Rol)
	return nil
}

func runRegister(cmd *cobra.Command, args []string) error {
	user, err := sgpj.auth.Register(cmd.Context(), registerReq)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s <%s>\n", successStyle.Render("Cuenta creada:"), user.Nombre, user.Email)
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	if err := sgpj.auth.Logout(); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Sesión cerrada.")
	return nil
}

var gateResources = []string{
	permission.Procesos,
	permission.Audiencias,
	permission.Resoluciones,
	permission.Directorio,
	permission.Notificaciones,
	permission.Finanzas,
	permission.Bitacora,
	permission.Dashboard,
}

func runWhoami(cmd *cobra.Command, args []string) error {
	user, err := sgpj.auth.Me(cmd.Context())
	if err != nil {
		return err
	}
	if err := sgpj.gate.Load(cmd.Context()); err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	printFields(w, user.Nombre, [][2]string{
		{"Email", user.Email},
		{"Rol", sgpj.gate.Role()},
		{"Teléfono", orDash(user.Telefono)},
	})

	rows := make([][]string, 0, len(gateResources))
	for _, res := range gateResources {
		row := []string{res}
		for _, action := range []string{permission.Read, permission.Create, permission.Update, permission.Delete} {
			mark := mutedStyle.Render("·")
			if sgpj.gate.HasPermission(res, action) {
				mark = successStyle.Render("✓")
			}
			row = append(row, mark)
		}
		rows = append(rows, row)
	}
	printTable(w, []string{"RECURSO", "LEER", "CREAR", "EDITAR", "ELIMINAR"}, rows)
	return nil
}

func runRefresh(cmd *cobra.Command, args []string) error {
	if _, err := sgpj.auth.Refresh(cmd.Context()); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Token renovado.")
	return nil
}

func runHealth(cmd *cobra.Command, args []string) error {
	status, err := sgpj.client.Health(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s)\n", successStyle.Render(status.Status), status.Service, sgpj.client.BaseURL())
	return nil
}

func runUsuarios(cmd *cobra.Command, args []string) error {
	users, err := sgpj.clients.Usuarios.List(cmd.Context())
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		activo := "sí"
		if !u.Activo {
			activo = "no"
		}
		rows = append(rows, []string{fmt.Sprint(u.ID), u.Nombre, u.Email, u.Rol, activo})
	}
	printTable(cmd.OutOrStdout(), []string{"ID", "NOMBRE", "EMAIL", "ROL", "ACTIVO"}, rows)
	return nil
}
