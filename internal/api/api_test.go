package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sgpj-client/internal/logging"
	"sgpj-client/internal/models"
	"sgpj-client/internal/services"
)

var now = time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)

func fecha(days int) string {
	return now.AddDate(0, 0, days).Format("2006-01-02")
}

type fakeSource struct {
	mu             sync.Mutex
	audienciaCalls int
	audiencias     []models.Audiencia
	diligencias    []models.Diligencia
	procesos       []models.Proceso
	resoluciones   []models.Resolucion
	err            error
}

func (f *fakeSource) Audiencias(ctx context.Context, from, to time.Time) ([]models.Audiencia, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.audienciaCalls++
	return f.audiencias, f.err
}

func (f *fakeSource) Diligencias(ctx context.Context) ([]models.Diligencia, error) {
	return f.diligencias, f.err
}

func (f *fakeSource) Procesos(ctx context.Context) ([]models.Proceso, error) {
	return f.procesos, f.err
}

func (f *fakeSource) Resoluciones(ctx context.Context) ([]models.Resolucion, error) {
	return f.resoluciones, f.err
}

func (f *fakeSource) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.audienciaCalls
}

func setup(t *testing.T, src *fakeSource) (*gin.Engine, *Handler, *services.Hub) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := logging.NewNop()
	hub := services.NewHub(logger)
	h := NewHandler(src, hub, logger)
	h.clock = func() time.Time { return now }
	return NewRouter(h, logger, "/api/v0"), h, hub
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	r, _, _ := setup(t, &fakeSource{})
	w := get(r, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestAgendaAudienciasUsesCache(t *testing.T) {
	src := &fakeSource{audiencias: []models.Audiencia{
		{ID: 1, Fecha: fecha(2), Hora: "10:00"},
		{ID: 2, Fecha: fecha(20), Hora: "09:00"},
		{ID: 3, Fecha: fecha(-1), Hora: "09:00"},
	}}
	r, _, _ := setup(t, src)

	w := get(r, "/api/v0/agenda/audiencias")
	require.Equal(t, http.StatusOK, w.Code)

	var items []struct {
		Audiencia    models.Audiencia `json:"audiencia"`
		ShouldNotify bool             `json:"should_notify"`
		Countdown    struct {
			Text string `json:"text"`
		} `json:"countdown"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	require.Len(t, items, 2)
	assert.Equal(t, 1, items[0].Audiencia.ID)
	assert.True(t, items[0].ShouldNotify)
	assert.Equal(t, "2d 0h 0m", items[0].Countdown.Text)
	assert.False(t, items[1].ShouldNotify)

	w = get(r, "/api/v0/agenda/audiencias?dias=7")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	assert.Len(t, items, 1)
	assert.Equal(t, 1, src.calls(), "second request is served from cache")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v0/agenda/refresh", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)

	get(r, "/api/v0/agenda/audiencias")
	assert.Equal(t, 2, src.calls())
}

func TestAgendaAudienciasBeyondDefaultWindow(t *testing.T) {
	src := &fakeSource{audiencias: []models.Audiencia{
		{ID: 1, Fecha: fecha(9), Hora: "10:00"},
		{ID: 2, Fecha: fecha(50), Hora: "10:00"},
	}}
	r, _, _ := setup(t, src)

	var items []struct {
		Audiencia models.Audiencia `json:"audiencia"`
	}
	w := get(r, "/api/v0/agenda/audiencias?dias=60")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	require.Len(t, items, 2)
	assert.Equal(t, 1, items[0].Audiencia.ID)
	assert.Equal(t, 2, items[1].Audiencia.ID)

	w = get(r, "/api/v0/agenda/audiencias")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Audiencia.ID)
	assert.Equal(t, 2, src.calls(), "wider windows are cached separately")
}

func TestAgendaInvalidWindow(t *testing.T) {
	r, _, _ := setup(t, &fakeSource{})
	for _, path := range []string{"/api/v0/agenda/audiencias?dias=x", "/api/v0/agenda/diligencias?dias=-3"} {
		w := get(r, path)
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
	}
}

func TestAgendaBackendFailure(t *testing.T) {
	r, _, _ := setup(t, &fakeSource{err: errors.New("backend caído")})
	for _, path := range []string{
		"/api/v0/agenda/audiencias",
		"/api/v0/agenda/diligencias",
		"/api/v0/agenda/plazos",
		"/api/v0/agenda/revision",
	} {
		w := get(r, path)
		assert.Equal(t, http.StatusBadGateway, w.Code, path)
		assert.JSONEq(t, `{"error":"backend caído"}`, w.Body.String(), path)
	}
}

func TestAgendaPlazosAndRevision(t *testing.T) {
	revisado := fecha(-2)
	src := &fakeSource{
		resoluciones: []models.Resolucion{
			{ID: 1, FechaLimite: fecha(1), EstadoAccion: models.EstadoAccionPendiente},
			{ID: 2, FechaLimite: fecha(3), EstadoAccion: models.EstadoAccionCompletada},
		},
		procesos: []models.Proceso{
			{ID: 10},
			{ID: 11, FechaUltimaRevision: &revisado},
		},
		diligencias: []models.Diligencia{
			{ID: 5, Fecha: fecha(1), Hora: "09:00", Estado: models.EstadoDiligenciaPendiente},
		},
	}
	r, _, _ := setup(t, src)

	var plazos []struct {
		Resolucion models.Resolucion `json:"resolucion"`
	}
	w := get(r, "/api/v0/agenda/plazos")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &plazos))
	require.Len(t, plazos, 1)
	assert.Equal(t, 1, plazos[0].Resolucion.ID)

	var revision []struct {
		Proceso models.Proceso `json:"proceso"`
	}
	w = get(r, "/api/v0/agenda/revision")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &revision))
	require.Len(t, revision, 1)
	assert.Equal(t, 10, revision[0].Proceso.ID)

	var diligencias []models.Diligencia
	w = get(r, "/api/v0/agenda/diligencias")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &diligencias))
	require.Len(t, diligencias, 1)
}

func TestServeWSSendsCountdownSnapshot(t *testing.T) {
	src := &fakeSource{audiencias: []models.Audiencia{{ID: 4, Fecha: fecha(1), Hora: "10:00"}}}
	r, _, hub := setup(t, src)
	srv := httptest.NewServer(r)
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws?user_id=3", nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var event struct {
		Type    string `json:"type"`
		Payload []struct {
			Audiencia models.Audiencia `json:"audiencia"`
		} `json:"payload"`
	}
	require.NoError(t, conn.ReadJSON(&event))
	assert.Equal(t, services.EventCountdown, event.Type)
	require.Len(t, event.Payload, 1)
	assert.Equal(t, 4, event.Payload[0].Audiencia.ID)
	assert.Equal(t, 1, hub.Count())

	conn.Close()
	require.Eventually(t, func() bool { return hub.Count() == 0 }, time.Second, 5*time.Millisecond)
}

func TestServeWSRejectsBadUser(t *testing.T) {
	r, _, _ := setup(t, &fakeSource{})
	w := get(r, "/ws?user_id=abc")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPushCountdowns(t *testing.T) {
	src := &fakeSource{audiencias: []models.Audiencia{{ID: 4, Fecha: fecha(1), Hora: "10:00"}}}
	r, h, hub := setup(t, src)
	srv := httptest.NewServer(r)
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	defer conn.Close()
	require.Eventually(t, func() bool { return hub.Count() == 1 }, time.Second, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go h.PushCountdowns(ctx, 10*time.Millisecond)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	for i := 0; i < 2; i++ {
		var event services.Event
		require.NoError(t, conn.ReadJSON(&event))
		assert.Equal(t, services.EventCountdown, event.Type)
	}
}

func TestRequestIDIsEchoed(t *testing.T) {
	r, _, _ := setup(t, &fakeSource{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))

	w = get(r, "/health")
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}
