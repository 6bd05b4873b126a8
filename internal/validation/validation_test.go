package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sgpj-client/internal/models"
)

func TestValidatePago(t *testing.T) {
	contrato := models.Contrato{ID: 7, MontoTotal: 5000, MontoPagado: 3500}

	tests := []struct {
		name    string
		monto   float64
		wantErr string
	}{
		{name: "partial payment", monto: 1000},
		{name: "exact balance", monto: 1500},
		{name: "above balance", monto: 1500.01, wantErr: MsgMontoMayorSaldo},
		{name: "zero", monto: 0, wantErr: MsgMontoPositivo},
		{name: "negative", monto: -10, wantErr: MsgMontoPositivo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePago(models.PagoCreate{Monto: tt.monto}, contrato)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, IsValidation(err))
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}

func TestValidatePagoSettlesFractionalBalance(t *testing.T) {
	tests := []struct {
		name     string
		contrato models.Contrato
		monto    float64
		wantErr  string
	}{
		{name: "balance with float residue", contrato: models.Contrato{MontoTotal: 150.7, MontoPagado: 100.4}, monto: 50.3},
		{name: "small remaining balance", contrato: models.Contrato{MontoTotal: 1000.3, MontoPagado: 1000.1}, monto: 0.2},
		{name: "one céntimo over", contrato: models.Contrato{MontoTotal: 150.7, MontoPagado: 100.4}, monto: 50.31, wantErr: MsgMontoMayorSaldo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePago(models.PagoCreate{Monto: tt.monto}, tt.contrato)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, IsValidation(err))
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}

func TestValidateStructUsesJSONNames(t *testing.T) {
	err := ValidateStruct(models.ResolucionCreate{
		ProcesoID:         1,
		Tipo:              "desconocida",
		FechaNotificacion: "2025-03-01",
		AccionRequerida:   models.AccionApelar,
		FechaLimite:       "01/03/2025",
	})
	require.Error(t, err)

	vErr, ok := err.(*Error)
	require.True(t, ok)
	assert.Contains(t, vErr.Fields, "tipo")
	assert.Contains(t, vErr.Fields, "fecha_limite")
	assert.Contains(t, vErr.Fields, "responsable")
	assert.Equal(t, "Este campo es obligatorio", vErr.Fields["responsable"])
	assert.Contains(t, err.Error(), "fecha_limite: Formato inválido")
}

func TestValidateStructValid(t *testing.T) {
	notificar := true
	assert.NoError(t, ValidateStruct(models.AudienciaCreate{
		ProcesoID: 3,
		Tipo:      "Audiencia única",
		Fecha:     "2025-06-10",
		Hora:      "09:30",
		Link:      "https://meet.example.pe/sala-3",
		Notificar: &notificar,
	}))

	assert.NoError(t, ValidateStruct(models.LoginRequest{Email: "ana@estudio.pe", Password: "secreto"}))
}

func TestValidateEnviarNotificacion(t *testing.T) {
	err := ValidateStruct(models.EnviarNotificacionRequest{
		AudienciaID: 4,
		Canales:     []string{"email", "fax"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Valor no permitido")
}
