package resources

import (
	"context"
	"fmt"

	"sgpj-client/internal/models"
	"sgpj-client/internal/validation"
)

// Diligencias go through the authenticated requester like every other
// resource.
type Diligencias struct {
	r Requester
}

func pageQuery(skip, limit int) *query {
	if limit <= 0 {
		limit = 100
	}
	return newQuery().always("skip", skip).always("limit", limit)
}

func (c *Diligencias) List(ctx context.Context, skip, limit int) ([]models.Diligencia, error) {
	var list []models.Diligencia
	if err := c.r.Get(ctx, pageQuery(skip, limit).path("/diligencias"), &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *Diligencias) ByProceso(ctx context.Context, procesoID, skip, limit int) ([]models.Diligencia, error) {
	endpoint := pageQuery(skip, limit).path(fmt.Sprintf("/diligencias/proceso/%d", procesoID))
	var list []models.Diligencia
	if err := c.r.Get(ctx, endpoint, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *Diligencias) Get(ctx context.Context, id int) (models.Diligencia, error) {
	var d models.Diligencia
	err := c.r.Get(ctx, fmt.Sprintf("/diligencias/%d", id), &d)
	return d, err
}

func (c *Diligencias) Create(ctx context.Context, in models.DiligenciaCreate) (models.Diligencia, error) {
	if err := validation.ValidateStruct(in); err != nil {
		return models.Diligencia{}, err
	}
	var d models.Diligencia
	err := c.r.Post(ctx, "/diligencias", in, &d)
	return d, err
}

func (c *Diligencias) Update(ctx context.Context, id int, in models.DiligenciaUpdate) (models.Diligencia, error) {
	if err := validation.ValidateStruct(in); err != nil {
		return models.Diligencia{}, err
	}
	var d models.Diligencia
	err := c.r.Put(ctx, fmt.Sprintf("/diligencias/%d", id), in, &d)
	return d, err
}

func (c *Diligencias) Delete(ctx context.Context, id int) error {
	return c.r.Delete(ctx, fmt.Sprintf("/diligencias/%d", id), nil)
}
