package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"sgpj-client/internal/alerts"
	"sgpj-client/internal/config"
	"sgpj-client/internal/logging"
	"sgpj-client/internal/models"
	"sgpj-client/internal/resources"
)

// Source supplies the backend snapshot a scan works on.
type Source interface {
	Audiencias(ctx context.Context, from, to time.Time) ([]models.Audiencia, error)
	Diligencias(ctx context.Context) ([]models.Diligencia, error)
	Procesos(ctx context.Context) ([]models.Proceso, error)
	Resoluciones(ctx context.Context) ([]models.Resolucion, error)
}

// ClientSource reads the snapshot through the resource clients.
type ClientSource struct {
	Clients *resources.Clients
	Limit   int
}

func (c ClientSource) limit() int {
	if c.Limit <= 0 {
		return 1000
	}
	return c.Limit
}

func (c ClientSource) Audiencias(ctx context.Context, from, to time.Time) ([]models.Audiencia, error) {
	list, err := c.Clients.Audiencias.List(ctx, models.AudienciaFilters{
		FechaDesde: from.Format("2006-01-02"),
		FechaHasta: to.Format("2006-01-02"),
		Limit:      c.limit(),
	})
	if err != nil {
		return nil, err
	}
	return list.Audiencias, nil
}

func (c ClientSource) Diligencias(ctx context.Context) ([]models.Diligencia, error) {
	return c.Clients.Diligencias.List(ctx, 0, c.limit())
}

func (c ClientSource) Procesos(ctx context.Context) ([]models.Proceso, error) {
	return c.Clients.Procesos.List(ctx, models.ProcesosParams{Limit: c.limit()})
}

func (c ClientSource) Resoluciones(ctx context.Context) ([]models.Resolucion, error) {
	return c.Clients.Resoluciones.List(ctx, 0, c.limit(), 0)
}

type ScanConfig struct {
	HearingHours    []int
	HearingWindow   time.Duration
	DiligenciaHours int
	ReviewDays      int
}

func ScanConfigFrom(cfg config.Config) ScanConfig {
	return ScanConfig{
		HearingHours:    cfg.Reminders.HearingHours,
		HearingWindow:   cfg.HearingWindow(),
		DiligenciaHours: cfg.Reminders.DiligenciaHours,
		ReviewDays:      cfg.Reminders.ReviewDays,
	}
}

// Scanner turns a backend snapshot into reminder Tasks. It keeps no
// state between scans; repeats are filtered by the Service ledger.
type Scanner struct {
	source Source
	cfg    ScanConfig
	logger *logging.Logger
}

func NewScanner(source Source, cfg ScanConfig, logger *logging.Logger) *Scanner {
	return &Scanner{source: source, cfg: cfg, logger: logger}
}

func (s *Scanner) Scan(ctx context.Context, now time.Time) ([]models.Task, error) {
	var tasks []models.Task
	var errs []error

	maxHours := 0
	for _, h := range s.cfg.HearingHours {
		if h > maxHours {
			maxHours = h
		}
	}
	to := now.Add(time.Duration(maxHours)*time.Hour + s.cfg.HearingWindow)
	if audiencias, err := s.source.Audiencias(ctx, now, to); err != nil {
		errs = append(errs, fmt.Errorf("audiencias: %w", err))
	} else {
		tasks = append(tasks, s.hearingReminders(audiencias, now)...)
	}

	if diligencias, err := s.source.Diligencias(ctx); err != nil {
		errs = append(errs, fmt.Errorf("diligencias: %w", err))
	} else {
		tasks = append(tasks, s.diligenciaReminders(diligencias, now)...)
	}

	if procesos, err := s.source.Procesos(ctx); err != nil {
		errs = append(errs, fmt.Errorf("procesos: %w", err))
	} else {
		tasks = append(tasks, s.reviewReminders(procesos, now)...)
	}

	if resoluciones, err := s.source.Resoluciones(ctx); err != nil {
		errs = append(errs, fmt.Errorf("resoluciones: %w", err))
	} else {
		tasks = append(tasks, s.deadlineReminders(resoluciones, now)...)
	}

	s.logger.Debugf("Scan at %s produced %d reminders", now.Format(time.RFC3339), len(tasks))
	return tasks, errors.Join(errs...)
}

// hearingReminders fires once per configured hour H for audiencias whose
// instant falls within window of now+H.
func (s *Scanner) hearingReminders(audiencias []models.Audiencia, now time.Time) []models.Task {
	var tasks []models.Task
	for _, a := range audiencias {
		if !a.Notificar {
			continue
		}
		at, err := alerts.CombineFechaHora(a.Fecha, a.Hora, now.Location())
		if err != nil {
			s.logger.Warnf("Skipping audiencia %d: %v", a.ID, err)
			continue
		}
		for _, h := range s.cfg.HearingHours {
			target := now.Add(time.Duration(h) * time.Hour)
			if at.Before(target.Add(-s.cfg.HearingWindow)) || at.After(target.Add(s.cfg.HearingWindow)) {
				continue
			}
			body := fmt.Sprintf("Audiencia %s el %s a las %s.", a.Tipo, at.Format("02/01/2006"), at.Format("15:04"))
			if a.Sede != nil && *a.Sede != "" {
				body += " Sede: " + *a.Sede + "."
			}
			if a.Link != nil && *a.Link != "" {
				body += " Enlace: " + *a.Link
			}
			tasks = append(tasks, newTask(now, models.Task{
				Kind:      models.ReminderAudiencia,
				Key:       fmt.Sprintf("audiencia:%d:%d", a.ID, h),
				Subject:   fmt.Sprintf("Recordatorio: audiencia en %d horas", h),
				Body:      body,
				ProcesoID: a.ProcesoID,
				EntityID:  a.ID,
				Due:       at,
			}))
		}
	}
	return tasks
}

func (s *Scanner) diligenciaReminders(diligencias []models.Diligencia, now time.Time) []models.Task {
	day := now.Add(time.Duration(s.cfg.DiligenciaHours) * time.Hour).Format("2006-01-02")
	var tasks []models.Task
	for _, d := range diligencias {
		if !d.Notificar || d.NotificacionEnviada {
			continue
		}
		if d.Estado != models.EstadoDiligenciaPendiente && d.Estado != models.EstadoDiligenciaEnProgreso {
			continue
		}
		fecha, err := alerts.ParseFecha(d.Fecha, now.Location())
		if err != nil || fecha.Format("2006-01-02") != day {
			continue
		}
		due, err := alerts.CombineFechaHora(d.Fecha, d.Hora, now.Location())
		if err != nil {
			due = fecha
		}
		tasks = append(tasks, newTask(now, models.Task{
			Kind:      models.ReminderDiligencia,
			Key:       fmt.Sprintf("diligencia:%d", d.ID),
			Subject:   "Recordatorio de diligencia: " + d.Titulo,
			Body:      fmt.Sprintf("%s el %s a las %s. Motivo: %s", d.Titulo, due.Format("02/01/2006"), due.Format("15:04"), d.Motivo),
			ProcesoID: d.ProcesoID,
			EntityID:  d.ID,
			Due:       due,
		}))
	}
	return tasks
}

var reviewEstados = map[string]bool{
	models.EstadoProcesoEnTramite: true,
	models.EstadoProcesoActivo:    true,
}

// reviewReminders flags open procesos with no update for ReviewDays.
func (s *Scanner) reviewReminders(procesos []models.Proceso, now time.Time) []models.Task {
	var tasks []models.Task
	for _, p := range procesos {
		if !reviewEstados[strings.TrimSpace(p.Estado)] {
			continue
		}
		ref := p.CreatedAt
		if p.UpdatedAt != nil && *p.UpdatedAt != "" {
			ref = *p.UpdatedAt
		}
		last, err := alerts.ParseFecha(ref, now.Location())
		if err != nil {
			continue
		}
		days := alerts.DaysSince(last, now)
		if days < s.cfg.ReviewDays {
			continue
		}
		tasks = append(tasks, newTask(now, models.Task{
			Kind:      models.ReminderRevision,
			Key:       fmt.Sprintf("revision:%d", p.ID),
			Subject:   "Proceso sin movimiento: " + p.Expediente,
			Body:      fmt.Sprintf("El proceso %s (%s) no registra cambios hace %d días.", p.Expediente, p.Materia, days),
			Level:     string(alerts.Review(p.FechaUltimaRevision, now).Level),
			ProcesoID: p.ID,
			EntityID:  p.ID,
			Due:       last,
		}))
	}
	return tasks
}

// deadlineReminders covers open resoluciones at red level, overdue ones
// included.
func (s *Scanner) deadlineReminders(resoluciones []models.Resolucion, now time.Time) []models.Task {
	var tasks []models.Task
	for _, r := range resoluciones {
		if r.EstadoAccion == models.EstadoAccionCompletada {
			continue
		}
		alert := alerts.Deadline(r.FechaLimite, now)
		if !alert.Valid || alert.Level != alerts.LevelRed {
			continue
		}
		due, _ := alerts.ParseFecha(r.FechaLimite, now.Location())
		expediente := fmt.Sprintf("proceso %d", r.ProcesoID)
		if r.Expediente != nil && *r.Expediente != "" {
			expediente = *r.Expediente
		}
		tasks = append(tasks, newTask(now, models.Task{
			Kind:      models.ReminderPlazo,
			Key:       fmt.Sprintf("plazo:%d", r.ID),
			Subject:   fmt.Sprintf("Plazo para %s: %s", r.AccionRequerida, alert.Text),
			Body:      fmt.Sprintf("%s. Responsable: %s. Fecha límite: %s.", expediente, r.Responsable, due.Format("02/01/2006")),
			Level:     string(alert.Level),
			ProcesoID: r.ProcesoID,
			EntityID:  r.ID,
			Due:       due,
		}))
	}
	sort.SliceStable(tasks, func(i, j int) bool { return tasks[i].Due.Before(tasks[j].Due) })
	return tasks
}

func newTask(now time.Time, t models.Task) models.Task {
	t.RequestID = uuid.New()
	t.Timestamp = now
	t.Source = models.SourceScanner
	return t
}
