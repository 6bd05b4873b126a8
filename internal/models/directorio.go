package models

// Directory entry kinds.
const (
	TipoCliente      = "cliente"
	TipoJuzgado      = "juzgado"
	TipoEspecialista = "especialista"
)

// DirectorioEntry is a contact: a client, a court or a court specialist.
// Which optional fields are set depends on Tipo.
type DirectorioEntry struct {
	ID               int     `json:"id"`
	Tipo             string  `json:"tipo"`
	Nombre           string  `json:"nombre"`
	Email            *string `json:"email,omitempty"`
	Telefono         *string `json:"telefono,omitempty"`
	Direccion        *string `json:"direccion,omitempty"`
	TipoPersona      *string `json:"tipo_persona,omitempty"`
	Nombres          *string `json:"nombres,omitempty"`
	Apellidos        *string `json:"apellidos,omitempty"`
	RazonSocial      *string `json:"razon_social,omitempty"`
	DocTipo          *string `json:"doc_tipo,omitempty"`
	DocNumero        *string `json:"doc_numero,omitempty"`
	DistritoJudicial *string `json:"distrito_judicial,omitempty"`
	Especialidad     *string `json:"especialidad,omitempty"`
	NumeroColegiado  *string `json:"numero_colegiado,omitempty"`
	JuzgadoID        *int    `json:"juzgado_id,omitempty"`
	Activo           bool    `json:"activo"`
	CreatedAt        string  `json:"created_at"`
	UpdatedAt        string  `json:"updated_at"`
}

type DirectorioCreate struct {
	Tipo             string `json:"tipo" validate:"required,oneof=cliente juzgado especialista"`
	Nombre           string `json:"nombre" validate:"required"`
	Email            string `json:"email,omitempty" validate:"omitempty,email"`
	Telefono         string `json:"telefono,omitempty"`
	Direccion        string `json:"direccion,omitempty"`
	TipoPersona      string `json:"tipo_persona,omitempty" validate:"omitempty,oneof=natural juridica"`
	Nombres          string `json:"nombres,omitempty"`
	Apellidos        string `json:"apellidos,omitempty"`
	RazonSocial      string `json:"razon_social,omitempty"`
	DocTipo          string `json:"doc_tipo,omitempty" validate:"omitempty,oneof=DNI RUC CE PAS"`
	DocNumero        string `json:"doc_numero,omitempty" validate:"required_with=DocTipo"`
	DistritoJudicial string `json:"distrito_judicial,omitempty"`
	Especialidad     string `json:"especialidad,omitempty"`
	NumeroColegiado  string `json:"numero_colegiado,omitempty"`
	JuzgadoID        *int   `json:"juzgado_id,omitempty"`
	Activo           *bool  `json:"activo,omitempty"`
}

type DirectorioUpdate struct {
	Nombre           *string `json:"nombre,omitempty"`
	Email            *string `json:"email,omitempty" validate:"omitempty,email"`
	Telefono         *string `json:"telefono,omitempty"`
	Direccion        *string `json:"direccion,omitempty"`
	TipoPersona      *string `json:"tipo_persona,omitempty" validate:"omitempty,oneof=natural juridica"`
	Nombres          *string `json:"nombres,omitempty"`
	Apellidos        *string `json:"apellidos,omitempty"`
	RazonSocial      *string `json:"razon_social,omitempty"`
	DocTipo          *string `json:"doc_tipo,omitempty" validate:"omitempty,oneof=DNI RUC CE PAS"`
	DocNumero        *string `json:"doc_numero,omitempty"`
	DistritoJudicial *string `json:"distrito_judicial,omitempty"`
	Especialidad     *string `json:"especialidad,omitempty"`
	NumeroColegiado  *string `json:"numero_colegiado,omitempty"`
	JuzgadoID        *int    `json:"juzgado_id,omitempty"`
	Activo           *bool   `json:"activo,omitempty"`
}

type EstadisticasDirectorio struct {
	PorTipo map[string]int `json:"por_tipo"`
	Total   int            `json:"total"`
}

type DirectorioParams struct {
	Skip        int
	Limit       int
	Tipo        string
	ActivosSolo bool
}
