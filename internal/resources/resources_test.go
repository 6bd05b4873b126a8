package resources

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sgpj-client/internal/apiclient"
	"sgpj-client/internal/logging"
	"sgpj-client/internal/models"
	"sgpj-client/internal/tokenstore"
	"sgpj-client/internal/validation"
)

type recorded struct {
	Method string
	Path   string
	Query  map[string][]string
	Auth   string
	Body   string
}

type backend struct {
	mu       sync.Mutex
	requests []recorded
	status   int
	reply    string
}

func (b *backend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	b.mu.Lock()
	b.requests = append(b.requests, recorded{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.Query(),
		Auth:   r.Header.Get("Authorization"),
		Body:   string(body),
	})
	status, reply := b.status, b.reply
	b.mu.Unlock()
	if status == 0 {
		status = http.StatusOK
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(reply))
}

func (b *backend) last(t *testing.T) recorded {
	t.Helper()
	b.mu.Lock()
	defer b.mu.Unlock()
	require.NotEmpty(t, b.requests)
	return b.requests[len(b.requests)-1]
}

func (b *backend) respond(status int, reply string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.status, b.reply = status, reply
}

func (b *backend) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.requests)
}

func setup(t *testing.T, token, reply string) (*Clients, *backend, *apiclient.Client) {
	t.Helper()
	b := &backend{reply: reply}
	srv := httptest.NewServer(b)
	t.Cleanup(srv.Close)
	api := apiclient.New(apiclient.Config{
		BaseURL: srv.URL + "/api/v1",
		Tokens:  tokenstore.NewMemoryStore(token),
	})
	return New(api), b, api
}

func TestTransformProceso(t *testing.T) {
	juez := "Dr. Quispe"
	full := TransformProceso(models.Proceso{
		Demandantes:   []string{"Ana Torres", "Luis Paz"},
		Demandados:    []string{"Minera SAC"},
		JuzgadoNombre: "1er Juzgado Civil",
		JuezNombre:    &juez,
	})
	assert.Equal(t, "Ana Torres", full.Demandante)
	assert.Equal(t, "Minera SAC", full.Demandado)
	assert.Equal(t, "1er Juzgado Civil", full.Juzgado)
	assert.Equal(t, "Dr. Quispe", full.Juez)

	empty := TransformProceso(models.Proceso{})
	assert.Equal(t, "Sin demandante", empty.Demandante)
	assert.Equal(t, "Sin demandado", empty.Demandado)
	assert.Equal(t, "Sin juzgado", empty.Juzgado)
	assert.Empty(t, empty.Juez)

	blank := TransformProceso(models.Proceso{Demandantes: []string{""}, Demandados: []string{}})
	assert.Equal(t, SinDemandante, blank.Demandante)
	assert.Equal(t, SinDemandado, blank.Demandado)
}

func TestProcesosListSendsBearerAndFilters(t *testing.T) {
	clients, b, _ := setup(t, "tok-1", `[{"id":7,"demandantes":["Ana"],"demandados":[],"juzgado_nombre":""}]`)

	list, err := clients.Procesos.List(context.Background(), models.ProcesosParams{Limit: 50, Estado: "Activo"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Ana", list[0].Demandante)
	assert.Equal(t, "Sin demandado", list[0].Demandado)
	assert.Equal(t, "Sin juzgado", list[0].Juzgado)

	req := b.last(t)
	assert.Equal(t, "Bearer tok-1", req.Auth)
	assert.Equal(t, "/api/v1/procesos", req.Path)
	assert.Equal(t, []string{"50"}, req.Query["limit"])
	assert.Equal(t, []string{"Activo"}, req.Query["estado"])
	_, hasSkip := req.Query["skip"]
	assert.False(t, hasSkip, "zero skip is omitted")
}

func TestProcesosWithoutTokenSendsNoAuthorization(t *testing.T) {
	clients, b, _ := setup(t, "", `[]`)
	_, err := clients.Procesos.List(context.Background(), models.ProcesosParams{})
	require.NoError(t, err)
	assert.Empty(t, b.last(t).Auth)
	assert.Empty(t, b.last(t).Query)
}

func TestProcesosReview(t *testing.T) {
	clients, b, _ := setup(t, "tok", `{"id":3,"fecha_ultima_revision":"2025-03-10"}`)
	now := time.Date(2025, time.March, 10, 23, 30, 0, 0, time.FixedZone("Lima", -5*60*60))

	p, err := clients.Procesos.MarkAsReviewed(context.Background(), 3, now)
	require.NoError(t, err)
	require.NotNil(t, p.FechaUltimaRevision)
	req := b.last(t)
	assert.Equal(t, http.MethodPut, req.Method)
	assert.Equal(t, "/api/v1/procesos/3", req.Path)
	assert.JSONEq(t, `{"fecha_ultima_revision":"2025-03-10"}`, req.Body)

	_, err = clients.Procesos.ClearReview(context.Background(), 3)
	require.NoError(t, err)
	assert.JSONEq(t, `{"fecha_ultima_revision":null}`, b.last(t).Body)
}

func TestProcesosSearchDefaultsLimit(t *testing.T) {
	clients, b, _ := setup(t, "tok", `[]`)
	_, err := clients.Procesos.Search(context.Background(), "00123-2024", 0)
	require.NoError(t, err)
	req := b.last(t)
	assert.Equal(t, []string{"00123-2024"}, req.Query["search"])
	assert.Equal(t, []string{"20"}, req.Query["limit"])
}

func TestCreateRejectsInvalidPayloadWithoutRequest(t *testing.T) {
	clients, b, _ := setup(t, "tok", `{}`)

	_, err := clients.Procesos.Create(context.Background(), models.ProcesoCreate{Expediente: "X"})
	require.Error(t, err)
	assert.True(t, validation.IsValidation(err))

	_, err = clients.Audiencias.Create(context.Background(), models.AudienciaCreate{ProcesoID: 1, Tipo: "Inicial", Fecha: "10/03/2025", Hora: "09:00"})
	require.Error(t, err)
	assert.True(t, validation.IsValidation(err))

	assert.Equal(t, 0, b.count())
}

func TestAudienciasEndpoints(t *testing.T) {
	clients, b, _ := setup(t, "tok", `{"audiencias":[{"id":1,"fecha":"2025-03-12","hora":"09:00"}],"total":1,"page":1,"per_page":10}`)

	list, err := clients.Audiencias.List(context.Background(), models.AudienciaFilters{ProcesoID: 4, FechaDesde: "2025-03-01"})
	require.NoError(t, err)
	assert.Equal(t, 1, list.Total)
	require.Len(t, list.Audiencias, 1)
	req := b.last(t)
	assert.Equal(t, "/api/v1/audiencias/", req.Path)
	assert.Equal(t, []string{"4"}, req.Query["proceso_id"])
	assert.Equal(t, []string{"2025-03-01"}, req.Query["fecha_desde"])

	b.respond(0, `[]`)
	_, err = clients.Audiencias.Proximas(context.Background(), 0)
	require.NoError(t, err)
	req = b.last(t)
	assert.Equal(t, "/api/v1/audiencias/proximas/list", req.Path)
	assert.Equal(t, []string{"10"}, req.Query["limit"])

	_, err = clients.Audiencias.ByProceso(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/audiencias/proceso/9", b.last(t).Path)
}

func TestResolucionesListAlwaysPaginates(t *testing.T) {
	clients, b, _ := setup(t, "tok", `[]`)
	_, err := clients.Resoluciones.List(context.Background(), 0, 0, 0)
	require.NoError(t, err)
	req := b.last(t)
	assert.Equal(t, "/api/v1/resoluciones/", req.Path)
	assert.Equal(t, []string{"0"}, req.Query["skip"])
	assert.Equal(t, []string{"100"}, req.Query["limit"])
	_, hasProceso := req.Query["proceso_id"]
	assert.False(t, hasProceso)
}

func TestContratosListAcceptsBothShapes(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  int
	}{
		{name: "bare array", reply: `[{"id":1},{"id":2}]`, want: 2},
		{name: "wrapped", reply: `{"contratos":[{"id":1}],"total":1}`, want: 1},
		{name: "unexpected object", reply: `{"items":[{"id":1}]}`, want: 0},
		{name: "empty body", reply: ``, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clients, _, _ := setup(t, "tok", tt.reply)
			list, err := clients.Contratos.List(context.Background(), models.ContratoFilters{})
			require.NoError(t, err)
			assert.NotNil(t, list)
			assert.Len(t, list, tt.want)
		})
	}
}

func TestPagosCreateChecksBalance(t *testing.T) {
	clients, b, _ := setup(t, "tok", `{"id":11,"contrato_id":5,"monto":300}`)
	contrato := models.Contrato{ID: 5, MontoTotal: 1000, MontoPagado: 700}

	_, err := clients.Pagos.Create(context.Background(), contrato, models.PagoCreate{Monto: 300.01})
	require.Error(t, err)
	assert.Equal(t, validation.MsgMontoMayorSaldo, err.Error())
	assert.Equal(t, 0, b.count())

	pago, err := clients.Pagos.Create(context.Background(), contrato, models.PagoCreate{Monto: 300})
	require.NoError(t, err)
	assert.Equal(t, 11, pago.ID)
	req := b.last(t)
	assert.Equal(t, "/api/v1/finanzas/contratos/5/pagos", req.Path)

	var sent map[string]any
	require.NoError(t, json.Unmarshal([]byte(req.Body), &sent))
	assert.EqualValues(t, 5, sent["contrato_id"])
}

func TestGenerateContratoCode(t *testing.T) {
	at := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC).Add(1234 * time.Millisecond)
	code := GenerateContratoCode(at)
	assert.True(t, strings.HasPrefix(code, "CTR-20250310-"))
	assert.Len(t, code, len("CTR-20250310-0000"))
}

func TestDirectorioQueries(t *testing.T) {
	clients, b, _ := setup(t, "tok", `[]`)

	_, err := clients.Directorio.List(context.Background(), models.DirectorioParams{Tipo: models.TipoJuzgado, ActivosSolo: true})
	require.NoError(t, err)
	req := b.last(t)
	assert.Equal(t, []string{"0"}, req.Query["skip"])
	assert.Equal(t, []string{"100"}, req.Query["limit"])
	assert.Equal(t, []string{"juzgado"}, req.Query["tipo"])
	assert.Equal(t, []string{"true"}, req.Query["activos_solo"])

	_, err = clients.Directorio.Search(context.Background(), "quispe", "")
	require.NoError(t, err)
	req = b.last(t)
	assert.Equal(t, "/api/v1/directorio/buscar", req.Path)
	assert.Equal(t, []string{"quispe"}, req.Query["q"])

	_, err = clients.Directorio.EspecialistasByJuzgado(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/directorio/juzgados/3/especialistas", b.last(t).Path)
}

func TestDiligenciasUseBearerToken(t *testing.T) {
	clients, b, _ := setup(t, "tok-d", `[]`)
	_, err := clients.Diligencias.ByProceso(context.Background(), 2, 0, 0)
	require.NoError(t, err)
	req := b.last(t)
	assert.Equal(t, "Bearer tok-d", req.Auth)
	assert.Equal(t, "/api/v1/diligencias/proceso/2", req.Path)
	assert.Equal(t, []string{"100"}, req.Query["limit"])
}

func TestNotificacionesMarcarVariasLeidas(t *testing.T) {
	clients, b, _ := setup(t, "tok", `{"id":1,"estado":"leida"}`)
	require.NoError(t, clients.Notificaciones.MarcarVariasLeidas(context.Background(), []int{1, 2, 3}))
	assert.Equal(t, 3, b.count())
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, req := range b.requests {
		assert.Equal(t, http.MethodPut, req.Method)
		assert.True(t, strings.HasSuffix(req.Path, "/marcar-leida"))
		assert.JSONEq(t, `{}`, req.Body)
	}
}

func TestNotificacionesNoLeidas(t *testing.T) {
	clients, b, _ := setup(t, "tok", `{"notificaciones":null,"total":0,"no_leidas":0}`)
	list, err := clients.Notificaciones.NoLeidas(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list.Notificaciones)
	assert.Equal(t, []string{"true"}, b.last(t).Query["solo_no_leidas"])
}

func TestAuthLoginStoresToken(t *testing.T) {
	_, b, api := setup(t, "", `{"access_token":"fresh","token_type":"bearer","user":{"id":1,"rol":"admin"}}`)
	auth := NewAuth(api)

	res, err := auth.Login(context.Background(), models.LoginRequest{Email: "ana@estudio.pe", Password: "secreta"})
	require.NoError(t, err)
	assert.Equal(t, "admin", res.User.Rol)
	assert.True(t, auth.IsAuthenticated())
	assert.Equal(t, "fresh", api.Token())
	assert.Empty(t, b.last(t).Auth)

	b.respond(0, `{"access_token":"rotated","token_type":"bearer"}`)
	_, err = auth.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer fresh", b.last(t).Auth)
	assert.Equal(t, "rotated", api.Token())

	require.NoError(t, auth.Logout())
	assert.False(t, auth.IsAuthenticated())
}

func TestBitacoraAcceptsWrappedData(t *testing.T) {
	clients, _, _ := setup(t, "tok", `{"data":[{"id":1,"accion":"creacion"},{"id":2,"accion":"estado"}]}`)
	entries, err := clients.Bitacora.ByProceso(context.Background(), 4)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	clients, _, _ = setup(t, "tok", `{"data":{"id":9,"accion":"observacion"}}`)
	entry, err := clients.Bitacora.Create(context.Background(), 4, models.BitacoraCreate{Accion: models.AccionObservacion})
	require.NoError(t, err)
	assert.Equal(t, 9, entry.ID)
}

func TestErrorsPropagate(t *testing.T) {
	clients, b, _ := setup(t, "tok", `{"detail":"boom"}`)
	b.respond(http.StatusInternalServerError, `{"detail":"boom"}`)

	_, err := clients.Resoluciones.Get(context.Background(), 1)
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, apiclient.StatusCode(err))
}

func TestLookupProcesoSwallowsErrors(t *testing.T) {
	clients, b, _ := setup(t, "tok", `{"detail":"not found"}`)
	b.respond(http.StatusNotFound, `{"detail":"not found"}`)

	var logs bytes.Buffer
	logger := logging.NewWriter(&logs, "info")
	assert.Nil(t, LookupProceso(context.Background(), clients.Procesos, 12, logger))
	assert.Contains(t, logs.String(), "Related proceso 12 unavailable")

	assert.Nil(t, LookupProceso(context.Background(), clients.Procesos, 0, logger))
	assert.Equal(t, 1, b.count())
}
