package alerts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sgpj-client/internal/models"
)

func TestUpcomingDeadlines(t *testing.T) {
	resoluciones := []models.Resolucion{
		{ID: 1, FechaLimite: fecha(0), EstadoAccion: models.EstadoAccionPendiente},
		{ID: 2, FechaLimite: fecha(9), EstadoAccion: models.EstadoAccionPendiente},
		{ID: 3, FechaLimite: fecha(2), EstadoAccion: models.EstadoAccionEnTramite},
		{ID: 4, FechaLimite: fecha(3), EstadoAccion: models.EstadoAccionCompletada},
		{ID: 5, FechaLimite: fecha(14), EstadoAccion: models.EstadoAccionPendiente},
		{ID: 6, FechaLimite: fecha(15), EstadoAccion: models.EstadoAccionPendiente},
		{ID: 7, FechaLimite: "no es fecha", EstadoAccion: models.EstadoAccionPendiente},
		{ID: 8, FechaLimite: fecha(6), EstadoAccion: models.EstadoAccionPendiente},
		{ID: 9, FechaLimite: fecha(1), EstadoAccion: models.EstadoAccionPendiente},
		{ID: 10, FechaLimite: fecha(12), EstadoAccion: models.EstadoAccionPendiente},
	}

	got := UpcomingDeadlines(resoluciones, now, PlazosWindow, PlazosLimit)
	require.Len(t, got, 5)

	ids := make([]int, 0, len(got))
	for _, item := range got {
		ids = append(ids, item.Resolucion.ID)
	}
	assert.Equal(t, []int{9, 3, 8, 2, 10}, ids)
	assert.Equal(t, LevelRed, got[0].Alert.Level)
	assert.Equal(t, LevelOrange, got[2].Alert.Level)
	assert.Equal(t, LevelGreen, got[3].Alert.Level)

	all := UpcomingDeadlines(resoluciones, now, PlazosWindow, 0)
	assert.Len(t, all, 6, "window end is inclusive, today and completed are excluded")
}

func TestUpcomingHearingsAndPartition(t *testing.T) {
	audiencias := []models.Audiencia{
		{ID: 1, Fecha: fecha(-1), Hora: "09:00"},
		{ID: 2, Fecha: fecha(20), Hora: "09:00"},
		{ID: 3, Fecha: fecha(2), Hora: "10:00"},
		{ID: 4, Fecha: fecha(40), Hora: "09:00"},
		{ID: 5, Fecha: fecha(0), Hora: "08:00"},
		{ID: 6, Fecha: "pronto", Hora: "08:00"},
	}

	upcoming := UpcomingHearings(audiencias, now, AgendaWindow)
	require.Len(t, upcoming, 2)
	assert.Equal(t, 3, upcoming[0].Audiencia.ID)
	assert.True(t, upcoming[0].ShouldNotify)
	assert.Equal(t, "2d 0h 0m", upcoming[0].Countdown.Text)
	assert.Equal(t, 2, upcoming[1].Audiencia.ID)
	assert.False(t, upcoming[1].ShouldNotify)

	next, past := PartitionHearings(audiencias, now)
	nextIDs := []int{}
	for _, a := range next {
		nextIDs = append(nextIDs, a.ID)
	}
	assert.Equal(t, []int{3, 2, 4}, nextIDs)
	require.Len(t, past, 3)
	assert.Equal(t, 5, past[0].ID, "most recent first")
	assert.Equal(t, 1, past[1].ID)
}

func TestTopDeudas(t *testing.T) {
	contratos := []models.Contrato{
		{ID: 1, MontoTotal: 5000, MontoPagado: 5000},
		{ID: 2, MontoTotal: 3000, MontoPagado: 1000},
		{ID: 3, MontoTotal: 8000, MontoPagado: 2000},
		{ID: 4, MontoTotal: 150.7, MontoPagado: 150.7},
		{ID: 5, MontoTotal: 1200, MontoPagado: 200},
	}

	tests := []struct {
		name      string
		limit     int
		wantIDs   []int
		wantTotal float64
	}{
		{name: "all owing, largest first", limit: 0, wantIDs: []int{3, 2, 5}, wantTotal: 9000},
		{name: "limited", limit: 2, wantIDs: []int{3, 2}, wantTotal: 8000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, total := TopDeudas(contratos, tt.limit)
			ids := []int{}
			for _, c := range got {
				ids = append(ids, c.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
			assert.InDelta(t, tt.wantTotal, total, 0.001)
		})
	}
}

func TestUpcomingDiligencias(t *testing.T) {
	diligencias := []models.Diligencia{
		{ID: 1, Fecha: fecha(5), Hora: "09:00", Estado: models.EstadoDiligenciaPendiente},
		{ID: 2, Fecha: fecha(1), Hora: "09:00", Estado: models.EstadoDiligenciaEnProgreso},
		{ID: 3, Fecha: fecha(2), Hora: "09:00", Estado: models.EstadoDiligenciaCancelada},
		{ID: 4, Fecha: fecha(45), Hora: "09:00", Estado: models.EstadoDiligenciaPendiente},
	}

	got := UpcomingDiligencias(diligencias, now, AgendaWindow)
	require.Len(t, got, 2)
	assert.Equal(t, 2, got[0].ID)
	assert.Equal(t, 1, got[1].ID)
}

func TestProcesosNeedingReview(t *testing.T) {
	procesos := []models.Proceso{
		{ID: 1, FechaUltimaRevision: strPtr(fecha(-3))},
		{ID: 2, FechaUltimaRevision: strPtr(fecha(-26))},
		{ID: 3},
		{ID: 4, FechaUltimaRevision: strPtr(fecha(-40))},
	}

	got := ProcesosNeedingReview(procesos, now)
	require.Len(t, got, 3)
	assert.Equal(t, 3, got[0].Proceso.ID)
	assert.Equal(t, 4, got[1].Proceso.ID)
	assert.Equal(t, 2, got[2].Proceso.ID)
	assert.Equal(t, LevelWarning, got[2].Alert.Level)
}
