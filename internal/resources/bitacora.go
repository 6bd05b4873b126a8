package resources

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"sgpj-client/internal/models"
	"sgpj-client/internal/validation"
)

type Bitacora struct {
	r Requester
}

// ByProceso accepts a bare array or {"data": [...]}.
func (c *Bitacora) ByProceso(ctx context.Context, procesoID int) ([]models.BitacoraEntry, error) {
	var raw json.RawMessage
	if err := c.r.Get(ctx, fmt.Sprintf("/procesos/%d/bitacora", procesoID), &raw); err != nil {
		return nil, err
	}
	return decodeList[models.BitacoraEntry](raw, "data")
}

func (c *Bitacora) Create(ctx context.Context, procesoID int, in models.BitacoraCreate) (models.BitacoraEntry, error) {
	if err := validation.ValidateStruct(in); err != nil {
		return models.BitacoraEntry{}, err
	}
	var raw json.RawMessage
	if err := c.r.Post(ctx, fmt.Sprintf("/procesos/%d/bitacora", procesoID), in, &raw); err != nil {
		return models.BitacoraEntry{}, err
	}
	return decodeEntry(raw)
}

func decodeEntry(raw json.RawMessage) (models.BitacoraEntry, error) {
	var entry models.BitacoraEntry
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return entry, nil
	}
	var wrapped struct {
		Data *models.BitacoraEntry `json:"data"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.Data != nil {
		return *wrapped.Data, nil
	}
	if err := json.Unmarshal(raw, &entry); err != nil {
		return models.BitacoraEntry{}, fmt.Errorf("failed to decode bitacora entry: %w", err)
	}
	return entry, nil
}
