// Package resources holds one typed client per backend entity. The
// clients build endpoints and query strings and let every error from the
// underlying requester propagate unchanged.
package resources

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"sgpj-client/internal/logging"
	"sgpj-client/internal/models"
)

// Requester is the HTTP surface the resource clients need.
// *apiclient.Client implements it.
type Requester interface {
	Get(ctx context.Context, endpoint string, out any) error
	Post(ctx context.Context, endpoint string, body, out any) error
	Put(ctx context.Context, endpoint string, body, out any) error
	Delete(ctx context.Context, endpoint string, out any) error
}

type MessageResponse struct {
	Message string `json:"message"`
}

// Clients bundles every resource client over one requester.
type Clients struct {
	Procesos       *Procesos
	Audiencias     *Audiencias
	Resoluciones   *Resoluciones
	Contratos      *Contratos
	Pagos          *Pagos
	Directorio     *Directorio
	Diligencias    *Diligencias
	Notificaciones *Notificaciones
	Usuarios       *Usuarios
	Bitacora       *Bitacora
}

func New(r Requester) *Clients {
	return &Clients{
		Procesos:       &Procesos{r: r},
		Audiencias:     &Audiencias{r: r},
		Resoluciones:   &Resoluciones{r: r},
		Contratos:      &Contratos{r: r},
		Pagos:          &Pagos{r: r},
		Directorio:     &Directorio{r: r},
		Diligencias:    &Diligencias{r: r},
		Notificaciones: &Notificaciones{r: r},
		Usuarios:       &Usuarios{r: r},
		Bitacora:       &Bitacora{r: r},
	}
}

// LookupProceso fetches a related proceso for a detail view. Failures
// are logged and reported as nil so the primary view still renders.
func LookupProceso(ctx context.Context, procesos *Procesos, id int, logger *logging.Logger) *models.Proceso {
	if id == 0 {
		return nil
	}
	p, err := procesos.Get(ctx, id)
	if err != nil {
		logger.Warnf("Related proceso %d unavailable: %v", id, err)
		return nil
	}
	return &p
}

// query skips zero values, so unset optional filters never reach the
// backend.
type query struct {
	values url.Values
}

func newQuery() *query {
	return &query{values: url.Values{}}
}

func (q *query) str(key, v string) *query {
	if v != "" {
		q.values.Set(key, v)
	}
	return q
}

func (q *query) num(key string, v int) *query {
	if v != 0 {
		q.values.Set(key, strconv.Itoa(v))
	}
	return q
}

// always sets key even when v is zero.
func (q *query) always(key string, v int) *query {
	q.values.Set(key, strconv.Itoa(v))
	return q
}

func (q *query) flag(key string, v bool) *query {
	if v {
		q.values.Set(key, "true")
	}
	return q
}

func (q *query) path(base string) string {
	if len(q.values) == 0 {
		return base
	}
	return base + "?" + q.values.Encode()
}

// decodeList accepts a bare JSON array or an object wrapping the array
// under key. Anything else decodes to an empty list.
func decodeList[T any](raw json.RawMessage, key string) ([]T, error) {
	var list []T
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return []T{}, nil
	}
	if raw[0] == '[' {
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil, fmt.Errorf("failed to decode list: %w", err)
		}
		return list, nil
	}
	if raw[0] == '{' {
		var wrapped map[string]json.RawMessage
		if err := json.Unmarshal(raw, &wrapped); err != nil {
			return nil, fmt.Errorf("failed to decode wrapped list: %w", err)
		}
		inner, ok := wrapped[key]
		if ok && len(inner) > 0 && inner[0] == '[' {
			if err := json.Unmarshal(inner, &list); err != nil {
				return nil, fmt.Errorf("failed to decode %s: %w", key, err)
			}
			return list, nil
		}
	}
	return []T{}, nil
}
