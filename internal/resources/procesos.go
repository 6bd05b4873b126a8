package resources

import (
	"context"
	"fmt"
	"time"

	"sgpj-client/internal/models"
	"sgpj-client/internal/validation"
)

// Fallbacks shown when a proceso has no party or court on record.
const (
	SinDemandante = "Sin demandante"
	SinDemandado  = "Sin demandado"
	SinJuzgado    = "Sin juzgado"
)

// TransformProceso fills the flat display fields from the normalized
// backend record.
func TransformProceso(p models.Proceso) models.Proceso {
	p.Demandante = SinDemandante
	if len(p.Demandantes) > 0 && p.Demandantes[0] != "" {
		p.Demandante = p.Demandantes[0]
	}
	p.Demandado = SinDemandado
	if len(p.Demandados) > 0 && p.Demandados[0] != "" {
		p.Demandado = p.Demandados[0]
	}
	p.Juzgado = SinJuzgado
	if p.JuzgadoNombre != "" {
		p.Juzgado = p.JuzgadoNombre
	}
	p.Juez = ""
	if p.JuezNombre != nil {
		p.Juez = *p.JuezNombre
	}
	return p
}

func transformAll(list []models.Proceso) []models.Proceso {
	out := make([]models.Proceso, len(list))
	for i, p := range list {
		out[i] = TransformProceso(p)
	}
	return out
}

type Procesos struct {
	r Requester
}

func (c *Procesos) List(ctx context.Context, params models.ProcesosParams) ([]models.Proceso, error) {
	endpoint := newQuery().
		num("skip", params.Skip).
		num("limit", params.Limit).
		str("estado", params.Estado).
		path("/procesos")
	var list []models.Proceso
	if err := c.r.Get(ctx, endpoint, &list); err != nil {
		return nil, err
	}
	return transformAll(list), nil
}

func (c *Procesos) Get(ctx context.Context, id int) (models.Proceso, error) {
	var p models.Proceso
	if err := c.r.Get(ctx, fmt.Sprintf("/procesos/%d", id), &p); err != nil {
		return models.Proceso{}, err
	}
	return TransformProceso(p), nil
}

func (c *Procesos) Create(ctx context.Context, in models.ProcesoCreate) (models.Proceso, error) {
	if err := validation.ValidateStruct(in); err != nil {
		return models.Proceso{}, err
	}
	var p models.Proceso
	if err := c.r.Post(ctx, "/procesos", in, &p); err != nil {
		return models.Proceso{}, err
	}
	return TransformProceso(p), nil
}

func (c *Procesos) Update(ctx context.Context, id int, in models.ProcesoUpdate) (models.Proceso, error) {
	if err := validation.ValidateStruct(in); err != nil {
		return models.Proceso{}, err
	}
	return c.put(ctx, id, in)
}

func (c *Procesos) put(ctx context.Context, id int, body any) (models.Proceso, error) {
	var p models.Proceso
	if err := c.r.Put(ctx, fmt.Sprintf("/procesos/%d", id), body, &p); err != nil {
		return models.Proceso{}, err
	}
	return TransformProceso(p), nil
}

func (c *Procesos) Delete(ctx context.Context, id int) (MessageResponse, error) {
	var res MessageResponse
	err := c.r.Delete(ctx, fmt.Sprintf("/procesos/%d", id), &res)
	return res, err
}

// MarkAsReviewed sets fecha_ultima_revision to now's calendar date.
func (c *Procesos) MarkAsReviewed(ctx context.Context, id int, now time.Time) (models.Proceso, error) {
	today := now.Format("2006-01-02")
	return c.Update(ctx, id, models.ProcesoUpdate{FechaUltimaRevision: &today})
}

// ClearReview sends an explicit null so the backend forgets the last
// review date.
func (c *Procesos) ClearReview(ctx context.Context, id int) (models.Proceso, error) {
	return c.put(ctx, id, map[string]any{"fecha_ultima_revision": nil})
}

// Search backs the proceso selector. limit defaults to 20.
func (c *Procesos) Search(ctx context.Context, q string, limit int) ([]models.Proceso, error) {
	if limit <= 0 {
		limit = 20
	}
	endpoint := newQuery().str("search", q).always("limit", limit).path("/procesos")
	var list []models.Proceso
	if err := c.r.Get(ctx, endpoint, &list); err != nil {
		return nil, err
	}
	return transformAll(list), nil
}
