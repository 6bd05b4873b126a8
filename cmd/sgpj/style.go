package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"sgpj-client/internal/alerts"
	"sgpj-client/internal/models"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33"))
	labelStyle   = lipgloss.NewStyle().Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))

	redBadge    = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	orangeBadge = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	greenBadge  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
)

// levelStyle maps both alert scales onto terminal colours.
func levelStyle(level alerts.Level) lipgloss.Style {
	switch level {
	case alerts.LevelRed, alerts.LevelCritical:
		return redBadge
	case alerts.LevelOrange, alerts.LevelWarning:
		return orangeBadge
	case alerts.LevelGreen, alerts.LevelOK:
		return greenBadge
	default:
		return mutedStyle
	}
}

func badge(level alerts.Level, text string) string {
	if text == "" {
		text = "-"
	}
	return levelStyle(level).Render(text)
}

func deadlineBadge(a alerts.DeadlineAlert) string {
	return badge(a.Level, a.Text)
}

func reviewBadge(a alerts.ReviewAlert) string {
	switch a.Level {
	case alerts.LevelOK:
		return badge(a.Level, fmt.Sprintf("Revisado hace %d días", a.Days))
	case alerts.LevelUnknown:
		return badge(a.Level, "Fecha inválida")
	default:
		return badge(a.Level, a.Message)
	}
}

func countdownBadge(c alerts.CountdownResult) string {
	return badge(c.Urgency, c.Text)
}

func printTable(w io.Writer, headers []string, rows [][]string) {
	if len(rows) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("Sin resultados."))
		return
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(mutedStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers(headers...).
		Rows(rows...)
	fmt.Fprintln(w, t.Render())
}

// printFields renders label/value pairs of a detail view.
func printFields(w io.Writer, title string, fields [][2]string) {
	fmt.Fprintln(w, headerStyle.Render(title))
	for _, f := range fields {
		fmt.Fprintf(w, "  %s %s\n", labelStyle.Render(f[0]+":"), f[1])
	}
}

func orDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

func money(v float64) string {
	return models.FormatMoney(v)
}
