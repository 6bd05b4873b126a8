package resources

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"sgpj-client/internal/models"
	"sgpj-client/internal/validation"
)

type Contratos struct {
	r Requester
}

// List accepts either a bare array or {"contratos": [...]}.
func (c *Contratos) List(ctx context.Context, f models.ContratoFilters) ([]models.Contrato, error) {
	endpoint := newQuery().
		num("cliente_id", f.ClienteID).
		num("proceso_id", f.ProcesoID).
		str("estado", f.Estado).
		str("fecha_desde", f.FechaDesde).
		str("fecha_hasta", f.FechaHasta).
		path("/finanzas")
	var raw json.RawMessage
	if err := c.r.Get(ctx, endpoint, &raw); err != nil {
		return nil, err
	}
	return decodeList[models.Contrato](raw, "contratos")
}

func (c *Contratos) Get(ctx context.Context, id int) (models.Contrato, error) {
	var contrato models.Contrato
	err := c.r.Get(ctx, fmt.Sprintf("/finanzas/contratos/%d", id), &contrato)
	return contrato, err
}

func (c *Contratos) Create(ctx context.Context, in models.ContratoCreate) (models.Contrato, error) {
	if err := validation.ValidateStruct(in); err != nil {
		return models.Contrato{}, err
	}
	var contrato models.Contrato
	err := c.r.Post(ctx, "/finanzas/contratos", in, &contrato)
	return contrato, err
}

func (c *Contratos) Update(ctx context.Context, id int, in models.ContratoUpdate) (models.Contrato, error) {
	if err := validation.ValidateStruct(in); err != nil {
		return models.Contrato{}, err
	}
	var contrato models.Contrato
	err := c.r.Put(ctx, fmt.Sprintf("/finanzas/contratos/%d", id), in, &contrato)
	return contrato, err
}

func (c *Contratos) Delete(ctx context.Context, id int) (MessageResponse, error) {
	var res MessageResponse
	err := c.r.Delete(ctx, fmt.Sprintf("/finanzas/contratos/%d", id), &res)
	return res, err
}

func (c *Contratos) Stats(ctx context.Context) (models.ContratoStats, error) {
	var stats models.ContratoStats
	err := c.r.Get(ctx, "/finanzas/contratos/stats", &stats)
	return stats, err
}

func (c *Contratos) Search(ctx context.Context, q string) ([]models.Contrato, error) {
	var raw json.RawMessage
	if err := c.r.Get(ctx, newQuery().str("q", q).path("/finanzas/contratos/search"), &raw); err != nil {
		return nil, err
	}
	return decodeList[models.Contrato](raw, "contratos")
}

// GenerateContratoCode builds the provisional code shown before the
// backend assigns one: CTR-YYYYMMDD-NNNN, NNNN being the last four
// digits of the millisecond clock.
func GenerateContratoCode(now time.Time) string {
	return fmt.Sprintf("CTR-%s-%04d", now.Format("20060102"), now.UnixMilli()%10000)
}

type Pagos struct {
	r Requester
}

func (c *Pagos) ByContrato(ctx context.Context, contratoID int) ([]models.Pago, error) {
	var raw json.RawMessage
	if err := c.r.Get(ctx, fmt.Sprintf("/finanzas/contratos/%d/pagos", contratoID), &raw); err != nil {
		return nil, err
	}
	return decodeList[models.Pago](raw, "pagos")
}

// Create checks the payment against the contract balance before sending
// it. A payment larger than MontoPendiente never reaches the backend.
func (c *Pagos) Create(ctx context.Context, contrato models.Contrato, pago models.PagoCreate) (models.Pago, error) {
	if err := validation.ValidatePago(pago, contrato); err != nil {
		return models.Pago{}, err
	}
	pago.ContratoID = contrato.ID
	var out models.Pago
	err := c.r.Post(ctx, fmt.Sprintf("/finanzas/contratos/%d/pagos", contrato.ID), pago, &out)
	return out, err
}

// List returns every payment, or only those of contratoID when it is set.
func (c *Pagos) List(ctx context.Context, contratoID int) ([]models.Pago, error) {
	var raw json.RawMessage
	if err := c.r.Get(ctx, newQuery().num("contrato_id", contratoID).path("/finanzas/pagos"), &raw); err != nil {
		return nil, err
	}
	return decodeList[models.Pago](raw, "pagos")
}
