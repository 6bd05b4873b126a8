package models

import (
	"time"

	"github.com/google/uuid"
)

// Reminder kinds produced by the scanner.
const (
	ReminderAudiencia  = "audiencia"
	ReminderDiligencia = "diligencia"
	ReminderRevision   = "revision"
	ReminderPlazo      = "plazo"

	SourceScanner = "scanner"
	SourceKafka   = "kafka"
)

// Task is one reminder to deliver. Key identifies the reminder for
// deduplication and stays stable across scans.
type Task struct {
	RequestID uuid.UUID `json:"request_id"`
	Kind      string    `json:"kind"`
	Key       string    `json:"key"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	Level     string    `json:"level,omitempty"`
	ProcesoID int       `json:"proceso_id,omitempty"`
	EntityID  int       `json:"entity_id"`
	Due       time.Time `json:"due"`
	Timestamp time.Time `json:"timestamp"`
	// Source is where the task entered this process. It is not sent on
	// the wire.
	Source string `json:"-"`
}
