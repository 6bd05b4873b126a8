package models

// Notification kinds, channels and states used by the backend.
const (
	TipoAudienciaProgramada   = "audiencia_programada"
	TipoAudienciaRecordatorio = "audiencia_recordatorio"
	TipoProcesoActualizado    = "proceso_actualizado"
	TipoVencimientoPlazo      = "vencimiento_plazo"
	TipoSistema               = "sistema"

	CanalEmail   = "email"
	CanalSMS     = "sms"
	CanalSistema = "sistema"

	EstadoNotifPendiente = "pendiente"
	EstadoNotifEnviada   = "enviada"
	EstadoNotifError     = "error"
	EstadoNotifLeida     = "leida"
)

type Notificacion struct {
	ID                   int     `json:"id"`
	AudienciaID          *int    `json:"audiencia_id,omitempty"`
	ProcesoID            *int    `json:"proceso_id,omitempty"`
	Tipo                 string  `json:"tipo"`
	Canal                string  `json:"canal"`
	Titulo               string  `json:"titulo"`
	Mensaje              string  `json:"mensaje"`
	EmailDestinatario    *string `json:"email_destinatario,omitempty"`
	TelefonoDestinatario *string `json:"telefono_destinatario,omitempty"`
	Estado               string  `json:"estado"`
	FechaProgramada      *string `json:"fecha_programada,omitempty"`
	FechaEnviada         *string `json:"fecha_enviada,omitempty"`
	FechaLeida           *string `json:"fecha_leida,omitempty"`
	MetadataExtra        *string `json:"metadata_extra,omitempty"`
	ErrorMensaje         *string `json:"error_mensaje,omitempty"`
	CreatedAt            string  `json:"created_at"`
	UpdatedAt            string  `json:"updated_at"`
}

type NotificacionList struct {
	Notificaciones []Notificacion `json:"notificaciones"`
	Total          int            `json:"total"`
	NoLeidas       int            `json:"no_leidas"`
	Page           int            `json:"page"`
	PerPage        int            `json:"per_page"`
}

type NotificacionFilters struct {
	Estado       string
	Tipo         string
	Canal        string
	SoloNoLeidas bool
	Skip         int
	Limit        int
}

type EnviarNotificacionRequest struct {
	AudienciaID          int      `json:"audiencia_id" validate:"required,gt=0"`
	Canales              []string `json:"canales" validate:"required,min=1,dive,oneof=email sms sistema"`
	EmailDestinatario    string   `json:"email_destinatario,omitempty" validate:"omitempty,email"`
	TelefonoDestinatario string   `json:"telefono_destinatario,omitempty" validate:"omitempty,e164"`
	MensajePersonalizado string   `json:"mensaje_personalizado,omitempty"`
}

type NotificacionStats struct {
	TotalNotificaciones int `json:"total_notificaciones"`
	NoLeidas            int `json:"no_leidas"`
	Leidas              int `json:"leidas"`
}
