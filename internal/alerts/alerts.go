package alerts

import (
	"fmt"
	"strings"
	"time"
)

type Level string

// Deadline levels.
const (
	LevelRed    Level = "red"
	LevelOrange Level = "orange"
	LevelGreen  Level = "green"
	LevelNone   Level = "none"
)

// Review levels.
const (
	LevelCritical Level = "critical"
	LevelWarning  Level = "warning"
	LevelOK       Level = "ok"
	LevelUnknown  Level = "unknown"
)

const (
	TextVencido     = "Vencido"
	TextSinRevision = "Sin revisión"
)

// Review staleness thresholds in days.
const (
	reviewCriticalDays = 30
	reviewWarningDays  = 25
)

// DeadlineAlert classifies a fecha_limite. When Valid is false the input
// could not be parsed and Text holds it unchanged.
type DeadlineAlert struct {
	Level Level  `json:"level"`
	Text  string `json:"text"`
	Days  int    `json:"days"`
	Valid bool   `json:"valid"`
}

// Deadline classifies fechaLimite relative to now: red up to 3 days
// (including overdue), orange up to 7, green beyond.
func Deadline(fechaLimite string, now time.Time) DeadlineAlert {
	limite, err := ParseFecha(fechaLimite, now.Location())
	if err != nil {
		return DeadlineAlert{Level: LevelNone, Text: fechaLimite}
	}
	days := DaysUntil(limite, now)
	alert := DeadlineAlert{Days: days, Valid: true}
	switch {
	case days <= 3:
		alert.Level = LevelRed
	case days <= 7:
		alert.Level = LevelOrange
	default:
		alert.Level = LevelGreen
	}
	if days <= 0 {
		alert.Text = TextVencido
	} else {
		alert.Text = fmt.Sprintf("%d días", days)
	}
	return alert
}

type ReviewAlert struct {
	Level   Level  `json:"level"`
	Message string `json:"message,omitempty"`
	Days    int    `json:"days"`
}

// Review classifies how long a proceso has gone without review. A nil or
// empty date means it was never reviewed.
func Review(fechaUltimaRevision *string, now time.Time) ReviewAlert {
	if fechaUltimaRevision == nil || strings.TrimSpace(*fechaUltimaRevision) == "" {
		return ReviewAlert{Level: LevelCritical, Message: TextSinRevision}
	}
	revisado, err := ParseFecha(*fechaUltimaRevision, now.Location())
	if err != nil {
		return ReviewAlert{Level: LevelUnknown}
	}
	days := DaysSince(revisado, now)
	switch {
	case days >= reviewCriticalDays:
		return ReviewAlert{Level: LevelCritical, Message: fmt.Sprintf("%d días sin revisión", days), Days: days}
	case days >= reviewWarningDays:
		return ReviewAlert{Level: LevelWarning, Message: fmt.Sprintf("%d días sin revisión", days), Days: days}
	default:
		return ReviewAlert{Level: LevelOK, Days: days}
	}
}

// ShouldNotify reports whether a hearing at fecha+hora is within the
// next three days. Hearings already past are never notification-worthy.
func ShouldNotify(fecha, hora string, now time.Time) bool {
	instant, err := CombineFechaHora(fecha, hora, now.Location())
	if err != nil {
		return false
	}
	if instant.Before(now) {
		return false
	}
	days := DaysUntil(instant, now)
	return days >= 0 && days <= 3
}
