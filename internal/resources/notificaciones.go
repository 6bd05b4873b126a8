package resources

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"sgpj-client/internal/models"
	"sgpj-client/internal/validation"
)

type Notificaciones struct {
	r Requester
}

func (c *Notificaciones) List(ctx context.Context, f models.NotificacionFilters) (models.NotificacionList, error) {
	endpoint := newQuery().
		str("estado", f.Estado).
		str("tipo", f.Tipo).
		str("canal", f.Canal).
		flag("solo_no_leidas", f.SoloNoLeidas).
		num("skip", f.Skip).
		num("limit", f.Limit).
		path("/notificaciones/")
	var list models.NotificacionList
	if err := c.r.Get(ctx, endpoint, &list); err != nil {
		return models.NotificacionList{}, err
	}
	if list.Notificaciones == nil {
		list.Notificaciones = []models.Notificacion{}
	}
	return list, nil
}

func (c *Notificaciones) NoLeidas(ctx context.Context) (models.NotificacionList, error) {
	return c.List(ctx, models.NotificacionFilters{SoloNoLeidas: true})
}

func (c *Notificaciones) Get(ctx context.Context, id int) (models.Notificacion, error) {
	var n models.Notificacion
	err := c.r.Get(ctx, fmt.Sprintf("/notificaciones/%d", id), &n)
	return n, err
}

func (c *Notificaciones) MarcarLeida(ctx context.Context, id int) (models.Notificacion, error) {
	var n models.Notificacion
	err := c.r.Put(ctx, fmt.Sprintf("/notificaciones/%d/marcar-leida", id), struct{}{}, &n)
	return n, err
}

// MarcarVariasLeidas marks every id concurrently and returns the first
// failure.
func (c *Notificaciones) MarcarVariasLeidas(ctx context.Context, ids []int) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, id := range ids {
		id := id
		g.Go(func() error {
			_, err := c.MarcarLeida(ctx, id)
			return err
		})
	}
	return g.Wait()
}

func (c *Notificaciones) EnviarAudiencia(ctx context.Context, req models.EnviarNotificacionRequest) ([]models.Notificacion, error) {
	if err := validation.ValidateStruct(req); err != nil {
		return nil, err
	}
	var sent []models.Notificacion
	if err := c.r.Post(ctx, "/notificaciones/enviar-audiencia", req, &sent); err != nil {
		return nil, err
	}
	return sent, nil
}

func (c *Notificaciones) Stats(ctx context.Context) (models.NotificacionStats, error) {
	var stats models.NotificacionStats
	err := c.r.Get(ctx, "/notificaciones/stats/resumen", &stats)
	return stats, err
}

func (c *Notificaciones) Delete(ctx context.Context, id int) error {
	return c.r.Delete(ctx, fmt.Sprintf("/notificaciones/%d", id), nil)
}
