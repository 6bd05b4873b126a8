package resources

import (
	"context"
	"fmt"

	"sgpj-client/internal/models"
	"sgpj-client/internal/validation"
)

type Resoluciones struct {
	r Requester
}

// List always sends skip and limit. limit defaults to 100.
func (c *Resoluciones) List(ctx context.Context, skip, limit, procesoID int) ([]models.Resolucion, error) {
	if limit <= 0 {
		limit = 100
	}
	endpoint := newQuery().
		always("skip", skip).
		always("limit", limit).
		num("proceso_id", procesoID).
		path("/resoluciones/")
	var list []models.Resolucion
	if err := c.r.Get(ctx, endpoint, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *Resoluciones) Get(ctx context.Context, id int) (models.Resolucion, error) {
	var res models.Resolucion
	err := c.r.Get(ctx, fmt.Sprintf("/resoluciones/%d", id), &res)
	return res, err
}

func (c *Resoluciones) Create(ctx context.Context, in models.ResolucionCreate) (models.Resolucion, error) {
	if err := validation.ValidateStruct(in); err != nil {
		return models.Resolucion{}, err
	}
	var res models.Resolucion
	err := c.r.Post(ctx, "/resoluciones/", in, &res)
	return res, err
}

func (c *Resoluciones) Update(ctx context.Context, id int, in models.ResolucionUpdate) (models.Resolucion, error) {
	if err := validation.ValidateStruct(in); err != nil {
		return models.Resolucion{}, err
	}
	var res models.Resolucion
	err := c.r.Put(ctx, fmt.Sprintf("/resoluciones/%d", id), in, &res)
	return res, err
}

func (c *Resoluciones) Delete(ctx context.Context, id int) (MessageResponse, error) {
	var res MessageResponse
	err := c.r.Delete(ctx, fmt.Sprintf("/resoluciones/%d", id), &res)
	return res, err
}

func (c *Resoluciones) ByProceso(ctx context.Context, procesoID int) ([]models.Resolucion, error) {
	var list []models.Resolucion
	if err := c.r.Get(ctx, fmt.Sprintf("/resoluciones/proceso/%d", procesoID), &list); err != nil {
		return nil, err
	}
	return list, nil
}
