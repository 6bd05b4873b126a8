package resources

import (
	"context"
	"fmt"

	"sgpj-client/internal/models"
	"sgpj-client/internal/validation"
)

type Audiencias struct {
	r Requester
}

func (c *Audiencias) List(ctx context.Context, f models.AudienciaFilters) (models.AudienciaList, error) {
	endpoint := newQuery().
		num("proceso_id", f.ProcesoID).
		str("fecha_desde", f.FechaDesde).
		str("fecha_hasta", f.FechaHasta).
		str("tipo", f.Tipo).
		num("skip", f.Skip).
		num("limit", f.Limit).
		path("/audiencias/")
	var list models.AudienciaList
	if err := c.r.Get(ctx, endpoint, &list); err != nil {
		return models.AudienciaList{}, err
	}
	if list.Audiencias == nil {
		list.Audiencias = []models.Audiencia{}
	}
	return list, nil
}

func (c *Audiencias) Get(ctx context.Context, id int) (models.Audiencia, error) {
	var a models.Audiencia
	err := c.r.Get(ctx, fmt.Sprintf("/audiencias/%d", id), &a)
	return a, err
}

func (c *Audiencias) Create(ctx context.Context, in models.AudienciaCreate) (models.Audiencia, error) {
	if err := validation.ValidateStruct(in); err != nil {
		return models.Audiencia{}, err
	}
	var a models.Audiencia
	err := c.r.Post(ctx, "/audiencias/", in, &a)
	return a, err
}

func (c *Audiencias) Update(ctx context.Context, id int, in models.AudienciaUpdate) (models.Audiencia, error) {
	if err := validation.ValidateStruct(in); err != nil {
		return models.Audiencia{}, err
	}
	var a models.Audiencia
	err := c.r.Put(ctx, fmt.Sprintf("/audiencias/%d", id), in, &a)
	return a, err
}

func (c *Audiencias) Delete(ctx context.Context, id int) (MessageResponse, error) {
	var res MessageResponse
	err := c.r.Delete(ctx, fmt.Sprintf("/audiencias/%d", id), &res)
	return res, err
}

func (c *Audiencias) ByProceso(ctx context.Context, procesoID int) ([]models.Audiencia, error) {
	var list []models.Audiencia
	if err := c.r.Get(ctx, fmt.Sprintf("/audiencias/proceso/%d", procesoID), &list); err != nil {
		return nil, err
	}
	return list, nil
}

// Proximas lists the next hearings the backend knows of. limit defaults
// to 10.
func (c *Audiencias) Proximas(ctx context.Context, limit int) ([]models.Audiencia, error) {
	if limit <= 0 {
		limit = 10
	}
	var list []models.Audiencia
	if err := c.r.Get(ctx, newQuery().always("limit", limit).path("/audiencias/proximas/list"), &list); err != nil {
		return nil, err
	}
	return list, nil
}
