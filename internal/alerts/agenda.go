package alerts

import (
	"sort"
	"time"

	"sgpj-client/internal/models"
)

// Dashboard windows.
const (
	PlazosWindow = 14 * day
	PlazosLimit  = 5
	AgendaWindow = 30 * day
)

type DeadlineItem struct {
	Resolucion models.Resolucion `json:"resolucion"`
	Alert      DeadlineAlert     `json:"alert"`
}

// UpcomingDeadlines returns the open resoluciones whose fecha_limite is
// after now and within window, soonest first, at most limit items.
// A limit of 0 or less returns all of them.
func UpcomingDeadlines(resoluciones []models.Resolucion, now time.Time, window time.Duration, limit int) []DeadlineItem {
	type dated struct {
		item DeadlineItem
		at   time.Time
	}
	end := now.Add(window)
	var found []dated
	for _, r := range resoluciones {
		if r.EstadoAccion == models.EstadoAccionCompletada {
			continue
		}
		limite, err := ParseFecha(r.FechaLimite, now.Location())
		if err != nil {
			continue
		}
		if !limite.After(now) || limite.After(end) {
			continue
		}
		found = append(found, dated{item: DeadlineItem{Resolucion: r, Alert: Deadline(r.FechaLimite, now)}, at: limite})
	}
	sort.SliceStable(found, func(i, j int) bool { return found[i].at.Before(found[j].at) })
	if limit > 0 && len(found) > limit {
		found = found[:limit]
	}
	out := make([]DeadlineItem, 0, len(found))
	for _, f := range found {
		out = append(out, f.item)
	}
	return out
}

type HearingItem struct {
	Audiencia    models.Audiencia `json:"audiencia"`
	At           time.Time        `json:"at"`
	ShouldNotify bool             `json:"should_notify"`
	Countdown    CountdownResult  `json:"countdown"`
}

// UpcomingHearings returns the audiencias happening between now and
// now+window, soonest first.
func UpcomingHearings(audiencias []models.Audiencia, now time.Time, window time.Duration) []HearingItem {
	end := now.Add(window)
	var out []HearingItem
	for _, a := range audiencias {
		at, err := CombineFechaHora(a.Fecha, a.Hora, now.Location())
		if err != nil || at.Before(now) || at.After(end) {
			continue
		}
		out = append(out, HearingItem{
			Audiencia:    a,
			At:           at,
			ShouldNotify: ShouldNotify(a.Fecha, a.Hora, now),
			Countdown:    Countdown(a.Fecha, a.Hora, now),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].At.Before(out[j].At) })
	return out
}

// PartitionHearings splits audiencias into upcoming (soonest first) and
// past (most recent first). Unparseable entries count as past.
func PartitionHearings(audiencias []models.Audiencia, now time.Time) (upcoming, past []models.Audiencia) {
	at := make(map[int]time.Time, len(audiencias))
	for _, a := range audiencias {
		instant, err := CombineFechaHora(a.Fecha, a.Hora, now.Location())
		if err == nil && !instant.Before(now) {
			upcoming = append(upcoming, a)
		} else {
			past = append(past, a)
		}
		at[a.ID] = instant
	}
	sort.SliceStable(upcoming, func(i, j int) bool { return at[upcoming[i].ID].Before(at[upcoming[j].ID]) })
	sort.SliceStable(past, func(i, j int) bool { return at[past[i].ID].After(at[past[j].ID]) })
	return upcoming, past
}

// UpcomingDiligencias returns the open diligencias scheduled between now
// and now+window, soonest first.
func UpcomingDiligencias(diligencias []models.Diligencia, now time.Time, window time.Duration) []models.Diligencia {
	type dated struct {
		d  models.Diligencia
		at time.Time
	}
	end := now.Add(window)
	var found []dated
	for _, d := range diligencias {
		if d.Estado == models.EstadoDiligenciaCompletada || d.Estado == models.EstadoDiligenciaCancelada {
			continue
		}
		at, err := CombineFechaHora(d.Fecha, d.Hora, now.Location())
		if err != nil || at.Before(now) || at.After(end) {
			continue
		}
		found = append(found, dated{d: d, at: at})
	}
	sort.SliceStable(found, func(i, j int) bool { return found[i].at.Before(found[j].at) })
	out := make([]models.Diligencia, 0, len(found))
	for _, f := range found {
		out = append(out, f.d)
	}
	return out
}

type ReviewItem struct {
	Proceso models.Proceso `json:"proceso"`
	Alert   ReviewAlert    `json:"alert"`
}

// ProcesosNeedingReview returns the procesos whose review alert is
// warning or critical, most stale first. Never-reviewed procesos lead.
func ProcesosNeedingReview(procesos []models.Proceso, now time.Time) []ReviewItem {
	var out []ReviewItem
	for _, p := range procesos {
		alert := Review(p.FechaUltimaRevision, now)
		if alert.Level != LevelCritical && alert.Level != LevelWarning {
			continue
		}
		out = append(out, ReviewItem{Proceso: p, Alert: alert})
	}
	sort.SliceStable(out, func(i, j int) bool {
		ni := out[i].Alert.Message == TextSinRevision
		nj := out[j].Alert.Message == TextSinRevision
		if ni != nj {
			return ni
		}
		return out[i].Alert.Days > out[j].Alert.Days
	})
	return out
}
