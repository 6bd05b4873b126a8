package resources

import (
	"context"
	"fmt"

	"sgpj-client/internal/models"
	"sgpj-client/internal/validation"
)

type Directorio struct {
	r Requester
}

// List always sends skip and limit. limit defaults to 100.
func (c *Directorio) List(ctx context.Context, p models.DirectorioParams) ([]models.DirectorioEntry, error) {
	if p.Limit <= 0 {
		p.Limit = 100
	}
	endpoint := newQuery().
		always("skip", p.Skip).
		always("limit", p.Limit).
		str("tipo", p.Tipo).
		flag("activos_solo", p.ActivosSolo).
		path("/directorio")
	return c.list(ctx, endpoint)
}

func (c *Directorio) list(ctx context.Context, endpoint string) ([]models.DirectorioEntry, error) {
	var list []models.DirectorioEntry
	if err := c.r.Get(ctx, endpoint, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *Directorio) Get(ctx context.Context, id int) (models.DirectorioEntry, error) {
	var e models.DirectorioEntry
	err := c.r.Get(ctx, fmt.Sprintf("/directorio/%d", id), &e)
	return e, err
}

func (c *Directorio) Clientes(ctx context.Context) ([]models.DirectorioEntry, error) {
	return c.list(ctx, "/directorio/clientes")
}

func (c *Directorio) Juzgados(ctx context.Context) ([]models.DirectorioEntry, error) {
	return c.list(ctx, "/directorio/juzgados")
}

func (c *Directorio) Especialistas(ctx context.Context) ([]models.DirectorioEntry, error) {
	return c.list(ctx, "/directorio/especialistas")
}

func (c *Directorio) EspecialistasByJuzgado(ctx context.Context, juzgadoID int) ([]models.DirectorioEntry, error) {
	return c.list(ctx, fmt.Sprintf("/directorio/juzgados/%d/especialistas", juzgadoID))
}

// Search always sends q, even when empty.
func (c *Directorio) Search(ctx context.Context, q, tipo string) ([]models.DirectorioEntry, error) {
	query := newQuery().str("tipo", tipo)
	query.values.Set("q", q)
	return c.list(ctx, query.path("/directorio/buscar"))
}

func (c *Directorio) Create(ctx context.Context, in models.DirectorioCreate) (models.DirectorioEntry, error) {
	if err := validation.ValidateStruct(in); err != nil {
		return models.DirectorioEntry{}, err
	}
	var e models.DirectorioEntry
	err := c.r.Post(ctx, "/directorio", in, &e)
	return e, err
}

func (c *Directorio) Update(ctx context.Context, id int, in models.DirectorioUpdate) (models.DirectorioEntry, error) {
	if err := validation.ValidateStruct(in); err != nil {
		return models.DirectorioEntry{}, err
	}
	var e models.DirectorioEntry
	err := c.r.Put(ctx, fmt.Sprintf("/directorio/%d", id), in, &e)
	return e, err
}

func (c *Directorio) Delete(ctx context.Context, id int) error {
	return c.r.Delete(ctx, fmt.Sprintf("/directorio/%d", id), nil)
}

func (c *Directorio) Estadisticas(ctx context.Context) (models.EstadisticasDirectorio, error) {
	var stats models.EstadisticasDirectorio
	err := c.r.Get(ctx, "/directorio/estadisticas", &stats)
	return stats, err
}
