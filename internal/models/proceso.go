package models

// Estados de un proceso.
const (
	EstadoProcesoActivo     = "Activo"
	EstadoProcesoEnTramite  = "En trámite"
	EstadoProcesoSuspendido = "Suspendido"
	EstadoProcesoArchivado  = "Archivado"
	EstadoProcesoFinalizado = "Finalizado"
)

// Proceso is a judicial case as returned by the backend. The last four
// fields are display fields filled in by the resource client.
type Proceso struct {
	ID                       int      `json:"id"`
	Expediente               string   `json:"expediente"`
	Tipo                     string   `json:"tipo"`
	Materia                  string   `json:"materia"`
	Demandantes              []string `json:"demandantes"`
	Demandados               []string `json:"demandados"`
	JuzgadoNombre            string   `json:"juzgado_nombre"`
	JuezNombre               *string  `json:"juez_nombre,omitempty"`
	Estado                   string   `json:"estado,omitempty"`
	EstadoJuridico           string   `json:"estado_juridico,omitempty"`
	MontoPretension          *float64 `json:"monto_pretension,omitempty"`
	FechaInicio              string   `json:"fecha_inicio"`
	FechaNotificacion        *string  `json:"fecha_notificacion,omitempty"`
	FechaUltimaRevision      *string  `json:"fecha_ultima_revision,omitempty"`
	Observaciones            *string  `json:"observaciones,omitempty"`
	AbogadoResponsableID     int      `json:"abogado_responsable_id"`
	AbogadoResponsableNombre *string  `json:"abogado_responsable_nombre,omitempty"`
	CreatedAt                string   `json:"created_at"`
	UpdatedAt                *string  `json:"updated_at,omitempty"`

	Demandante string `json:"demandante,omitempty"`
	Demandado  string `json:"demandado,omitempty"`
	Juzgado    string `json:"juzgado,omitempty"`
	Juez       string `json:"juez,omitempty"`
}

type ProcesoCreate struct {
	Expediente          string   `json:"expediente" validate:"required"`
	Tipo                string   `json:"tipo" validate:"required,oneof=Civil Penal Laboral Administrativo Familia Comercial"`
	Materia             string   `json:"materia" validate:"required"`
	Demandante          string   `json:"demandante" validate:"required"`
	Demandado           string   `json:"demandado" validate:"required"`
	ClienteID           *int     `json:"cliente_id,omitempty"`
	Juzgado             string   `json:"juzgado" validate:"required"`
	Juez                string   `json:"juez,omitempty"`
	Estado              string   `json:"estado,omitempty"`
	MontoPretension     *float64 `json:"monto_pretension,omitempty" validate:"omitempty,gte=0"`
	FechaInicio         string   `json:"fecha_inicio" validate:"required,datetime=2006-01-02"`
	FechaNotificacion   string   `json:"fecha_notificacion,omitempty" validate:"omitempty,datetime=2006-01-02"`
	FechaUltimaRevision string   `json:"fecha_ultima_revision,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Observaciones       string   `json:"observaciones,omitempty"`
}

type ProcesoUpdate struct {
	Tipo                *string  `json:"tipo,omitempty" validate:"omitempty,oneof=Civil Penal Laboral Administrativo Familia Comercial"`
	Materia             *string  `json:"materia,omitempty"`
	Demandante          *string  `json:"demandante,omitempty"`
	Demandado           *string  `json:"demandado,omitempty"`
	Juzgado             *string  `json:"juzgado,omitempty"`
	Juez                *string  `json:"juez,omitempty"`
	Estado              *string  `json:"estado,omitempty"`
	EstadoJuridico      *string  `json:"estado_juridico,omitempty" validate:"omitempty,oneof=pendiente_impulsar pendiente_sentencia resolucion audiencia_programada"`
	MontoPretension     *float64 `json:"monto_pretension,omitempty" validate:"omitempty,gte=0"`
	FechaInicio         *string  `json:"fecha_inicio,omitempty" validate:"omitempty,datetime=2006-01-02"`
	FechaNotificacion   *string  `json:"fecha_notificacion,omitempty" validate:"omitempty,datetime=2006-01-02"`
	FechaUltimaRevision *string  `json:"fecha_ultima_revision,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Observaciones       *string  `json:"observaciones,omitempty"`
}

type ProcesosParams struct {
	Skip   int
	Limit  int
	Estado string
}

// Bitacora actions.
const (
	AccionCreacion      = "creacion"
	AccionActualizacion = "actualizacion"
	AccionEliminacion   = "eliminacion"
	AccionAudiencia     = "audiencia"
	AccionEstado        = "estado"
	AccionObservacion   = "observacion"
)

type BitacoraEntry struct {
	ID              int     `json:"id"`
	ProcesoID       int     `json:"proceso_id"`
	UsuarioID       *int    `json:"usuario_id,omitempty"`
	Accion          string  `json:"accion"`
	CampoModificado *string `json:"campo_modificado,omitempty"`
	ValorAnterior   *string `json:"valor_anterior,omitempty"`
	ValorNuevo      *string `json:"valor_nuevo,omitempty"`
	Descripcion     *string `json:"descripcion,omitempty"`
	FechaCambio     string  `json:"fecha_cambio"`
	UsuarioNombre   *string `json:"usuario_nombre,omitempty"`
}

type BitacoraCreate struct {
	Accion          string `json:"accion" validate:"required,oneof=creacion actualizacion eliminacion audiencia estado observacion"`
	CampoModificado string `json:"campo_modificado,omitempty"`
	ValorAnterior   string `json:"valor_anterior,omitempty"`
	ValorNuevo      string `json:"valor_nuevo,omitempty"`
	Descripcion     string `json:"descripcion,omitempty"`
}
