package models

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Estados de un contrato.
const (
	EstadoContratoActivo     = "activo"
	EstadoContratoCompletado = "completado"
	EstadoContratoCancelado  = "cancelado"
)

// Contrato is a billing engagement. MontoPagado accumulates the payments
// registered against it.
type Contrato struct {
	ID                 int     `json:"id"`
	Codigo             string  `json:"codigo"`
	ClienteID          int     `json:"cliente_id"`
	ProcesoID          int     `json:"proceso_id"`
	MontoTotal         float64 `json:"monto_total"`
	MontoPagado        float64 `json:"monto_pagado"`
	Estado             string  `json:"estado"`
	FechaCreacion      string  `json:"fecha_creacion"`
	FechaActualizacion *string `json:"fecha_actualizacion,omitempty"`
	Notas              *string `json:"notas,omitempty"`
	ClienteNombre      *string `json:"cliente_nombre,omitempty"`
	ClienteDocumento   *string `json:"cliente_documento,omitempty"`
	ProcesoExpediente  *string `json:"proceso_expediente,omitempty"`
	ProcesoDemandante  *string `json:"proceso_demandante,omitempty"`
	ProcesoDemandado   *string `json:"proceso_demandado,omitempty"`
}

type ContratoCreate struct {
	ClienteID   int      `json:"cliente_id" validate:"required,gt=0"`
	ProcesoID   int      `json:"proceso_id" validate:"required,gt=0"`
	MontoTotal  float64  `json:"monto_total" validate:"required,gt=0"`
	MontoPagado *float64 `json:"monto_pagado,omitempty" validate:"omitempty,gte=0,ltefield=MontoTotal"`
	Estado      string   `json:"estado,omitempty" validate:"omitempty,oneof=activo completado cancelado"`
	Notas       string   `json:"notas,omitempty"`
}

type ContratoUpdate struct {
	MontoTotal  *float64 `json:"monto_total,omitempty" validate:"omitempty,gt=0"`
	MontoPagado *float64 `json:"monto_pagado,omitempty" validate:"omitempty,gte=0"`
	Estado      *string  `json:"estado,omitempty" validate:"omitempty,oneof=activo completado cancelado"`
	Notas       *string  `json:"notas,omitempty"`
}

type ContratoFilters struct {
	ClienteID  int
	ProcesoID  int
	Estado     string
	FechaDesde string
	FechaHasta string
}

type ContratoStats struct {
	Total          int     `json:"total"`
	Activos        int     `json:"activos"`
	Completados    int     `json:"completados"`
	MontoTotal     float64 `json:"monto_total"`
	MontoPagado    float64 `json:"monto_pagado"`
	MontoPendiente float64 `json:"monto_pendiente"`
}

type Pago struct {
	ID             int     `json:"id"`
	ContratoID     int     `json:"contrato_id"`
	Monto          float64 `json:"monto"`
	Medio          *string `json:"medio,omitempty"`
	Referencia     *string `json:"referencia,omitempty"`
	Notas          *string `json:"notas,omitempty"`
	FechaPago      string  `json:"fecha_pago"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
	ContratoCodigo *string `json:"contrato_codigo,omitempty"`
	ClienteNombre  *string `json:"cliente_nombre,omitempty"`
}

type PagoCreate struct {
	ContratoID int     `json:"contrato_id"`
	Monto      float64 `json:"monto" validate:"required,gt=0"`
	Medio      string  `json:"medio,omitempty"`
	Referencia string  `json:"referencia,omitempty"`
	Notas      string  `json:"notas,omitempty"`
	FechaPago  string  `json:"fecha_pago,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// MontoPendiente is the balance still due.
func (c Contrato) MontoPendiente() float64 {
	return c.MontoTotal - c.MontoPagado
}

// PorcentajePagado is the paid share rounded to a whole percent, 0 when
// the contract has no total.
func (c Contrato) PorcentajePagado() int {
	if c.MontoTotal == 0 {
		return 0
	}
	return int(math.Round(c.MontoPagado / c.MontoTotal * 100))
}

// FormatMoney renders amount in soles with two decimals and comma
// thousands separators, e.g. "S/ 1,234.50".
func FormatMoney(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	cents := int64(math.Round(amount * 100))
	whole := strconv.FormatInt(cents/100, 10)
	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return fmt.Sprintf("%sS/ %s.%02d", sign, b.String(), cents%100)
}
