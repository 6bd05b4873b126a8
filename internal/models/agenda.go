package models

// Audiencia is a scheduled hearing. Fecha is YYYY-MM-DD and Hora HH:MM.
type Audiencia struct {
	ID        int     `json:"id"`
	ProcesoID int     `json:"proceso_id"`
	Tipo      string  `json:"tipo"`
	Fecha     string  `json:"fecha"`
	Hora      string  `json:"hora"`
	Sede      *string `json:"sede,omitempty"`
	Link      *string `json:"link,omitempty"`
	Notas     *string `json:"notas,omitempty"`
	Notificar bool    `json:"notificar"`
	FechaHora *string `json:"fecha_hora,omitempty"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

type AudienciaCreate struct {
	ProcesoID int    `json:"proceso_id" validate:"required,gt=0"`
	Tipo      string `json:"tipo" validate:"required"`
	Fecha     string `json:"fecha" validate:"required,datetime=2006-01-02"`
	Hora      string `json:"hora" validate:"required,datetime=15:04"`
	Sede      string `json:"sede,omitempty"`
	Link      string `json:"link,omitempty" validate:"omitempty,url"`
	Notas     string `json:"notas,omitempty"`
	Notificar *bool  `json:"notificar,omitempty"`
}

type AudienciaUpdate struct {
	ProcesoID *int    `json:"proceso_id,omitempty" validate:"omitempty,gt=0"`
	Tipo      *string `json:"tipo,omitempty"`
	Fecha     *string `json:"fecha,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Hora      *string `json:"hora,omitempty" validate:"omitempty,datetime=15:04"`
	Sede      *string `json:"sede,omitempty"`
	Link      *string `json:"link,omitempty" validate:"omitempty,url"`
	Notas     *string `json:"notas,omitempty"`
	Notificar *bool   `json:"notificar,omitempty"`
}

type AudienciaList struct {
	Audiencias []Audiencia `json:"audiencias"`
	Total      int         `json:"total"`
	Page       int         `json:"page"`
	PerPage    int         `json:"per_page"`
}

type AudienciaFilters struct {
	ProcesoID  int
	FechaDesde string
	FechaHasta string
	Tipo       string
	Skip       int
	Limit      int
}

// Estados de una diligencia.
const (
	EstadoDiligenciaPendiente  = "pendiente"
	EstadoDiligenciaEnProgreso = "en_progreso"
	EstadoDiligenciaCompletada = "completada"
	EstadoDiligenciaCancelada  = "cancelada"
)

type Diligencia struct {
	ID                  int     `json:"id"`
	ProcesoID           int     `json:"proceso_id"`
	Titulo              string  `json:"titulo"`
	Motivo              string  `json:"motivo"`
	Fecha               string  `json:"fecha"`
	Hora                string  `json:"hora"`
	Descripcion         *string `json:"descripcion,omitempty"`
	Estado              string  `json:"estado"`
	Notificar           bool    `json:"notificar"`
	NotificacionEnviada bool    `json:"notificacion_enviada"`
	CreatedAt           string  `json:"created_at"`
	UpdatedAt           string  `json:"updated_at"`
}

type DiligenciaCreate struct {
	ProcesoID   int    `json:"proceso_id" validate:"required,gt=0"`
	Titulo      string `json:"titulo" validate:"required"`
	Motivo      string `json:"motivo" validate:"required"`
	Fecha       string `json:"fecha" validate:"required,datetime=2006-01-02"`
	Hora        string `json:"hora" validate:"required,datetime=15:04"`
	Descripcion string `json:"descripcion,omitempty"`
	Estado      string `json:"estado,omitempty" validate:"omitempty,oneof=pendiente en_progreso completada cancelada"`
	Notificar   *bool  `json:"notificar,omitempty"`
}

type DiligenciaUpdate struct {
	Titulo      *string `json:"titulo,omitempty"`
	Motivo      *string `json:"motivo,omitempty"`
	Fecha       *string `json:"fecha,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Hora        *string `json:"hora,omitempty" validate:"omitempty,datetime=15:04"`
	Descripcion *string `json:"descripcion,omitempty"`
	Estado      *string `json:"estado,omitempty" validate:"omitempty,oneof=pendiente en_progreso completada cancelada"`
	Notificar   *bool   `json:"notificar,omitempty"`
}

// Resolution outcomes and the action they require.
const (
	AccionApelar   = "apelar"
	AccionSubsanar = "subsanar"

	EstadoAccionPendiente  = "pendiente"
	EstadoAccionEnTramite  = "en_tramite"
	EstadoAccionCompletada = "completada"
)

// Resolucion is a court ruling with a deadline-bound required action.
type Resolucion struct {
	ID                int     `json:"id"`
	ProcesoID         int     `json:"proceso_id"`
	Tipo              string  `json:"tipo"`
	FechaNotificacion string  `json:"fecha_notificacion"`
	AccionRequerida   string  `json:"accion_requerida"`
	FechaLimite       string  `json:"fecha_limite"`
	Responsable       string  `json:"responsable"`
	EstadoAccion      string  `json:"estado_accion"`
	Notas             *string `json:"notas,omitempty"`
	CreatedAt         string  `json:"created_at"`
	UpdatedAt         string  `json:"updated_at"`
	Expediente        *string `json:"expediente,omitempty"`
}

type ResolucionCreate struct {
	ProcesoID         int    `json:"proceso_id" validate:"required,gt=0"`
	Tipo              string `json:"tipo" validate:"required,oneof=improcedente infundada fundada_en_parte rechazo_medios_probatorios no_ha_lugar"`
	FechaNotificacion string `json:"fecha_notificacion" validate:"required,datetime=2006-01-02"`
	AccionRequerida   string `json:"accion_requerida" validate:"required,oneof=apelar subsanar"`
	FechaLimite       string `json:"fecha_limite" validate:"required,datetime=2006-01-02"`
	Responsable       string `json:"responsable" validate:"required"`
	EstadoAccion      string `json:"estado_accion,omitempty" validate:"omitempty,oneof=pendiente en_tramite completada"`
	Notas             string `json:"notas,omitempty"`
}

type ResolucionUpdate struct {
	Tipo              *string `json:"tipo,omitempty" validate:"omitempty,oneof=improcedente infundada fundada_en_parte rechazo_medios_probatorios no_ha_lugar"`
	FechaNotificacion *string `json:"fecha_notificacion,omitempty" validate:"omitempty,datetime=2006-01-02"`
	AccionRequerida   *string `json:"accion_requerida,omitempty" validate:"omitempty,oneof=apelar subsanar"`
	FechaLimite       *string `json:"fecha_limite,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Responsable       *string `json:"responsable,omitempty"`
	EstadoAccion      *string `json:"estado_accion,omitempty" validate:"omitempty,oneof=pendiente en_tramite completada"`
	Notas             *string `json:"notas,omitempty"`
}
