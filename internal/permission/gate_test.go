package permission

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sgpj-client/internal/models"
)

type fakeFetcher struct {
	user    models.User
	err     error
	started chan struct{}
	release chan struct{}
}

func (f *fakeFetcher) Me(ctx context.Context) (models.User, error) {
	if f.started != nil {
		close(f.started)
		<-f.release
	}
	return f.user, f.err
}

func TestAllowed(t *testing.T) {
	tests := []struct {
		role     string
		resource string
		action   string
		want     bool
	}{
		{role: "admin", resource: Finanzas, action: Delete, want: true},
		{role: "ADMIN", resource: Procesos, action: Create, want: true},
		{role: "admin", resource: Notificaciones, action: Update, want: false},
		{role: "admin", resource: Bitacora, action: Read, want: true},
		{role: "practicante", resource: Audiencias, action: Update, want: true},
		{role: "practicante", resource: Audiencias, action: Delete, want: false},
		{role: "practicante", resource: Directorio, action: Create, want: true},
		{role: "practicante", resource: Finanzas, action: Read, want: false},
		{role: "", resource: Procesos, action: Read, want: true},
		{role: "", resource: Procesos, action: Delete, want: false},
		{role: "abogado", resource: Procesos, action: Read, want: false},
		{role: "cliente", resource: Dashboard, action: Read, want: false},
		{role: "admin", resource: "diligencias", action: Read, want: false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Allowed(tt.role, tt.resource, tt.action), "%s %s %s", tt.role, tt.action, tt.resource)
	}
}

func TestGateLoad(t *testing.T) {
	g := NewGate(&fakeFetcher{user: models.User{Rol: "Admin"}})
	assert.Equal(t, models.RolPracticante, g.Role())
	assert.False(t, g.HasPermission(Finanzas, Read))

	require.NoError(t, g.Load(context.Background()))
	assert.Equal(t, "admin", g.Role())
	assert.True(t, g.HasPermission(Finanzas, Read))
	assert.NoError(t, g.Require(Procesos, Delete))
}

func TestGateLoadFailureFallsBackToPracticante(t *testing.T) {
	fetchErr := errors.New("Not authenticated")
	g := NewGate(&fakeFetcher{err: fetchErr})
	err := g.Load(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, fetchErr)
	assert.Equal(t, models.RolPracticante, g.Role())
	assert.True(t, g.HasPermission(Procesos, Read))
	assert.False(t, g.Loading())
}

func TestGateLoading(t *testing.T) {
	f := &fakeFetcher{user: models.User{Rol: "admin"}, started: make(chan struct{}), release: make(chan struct{})}
	g := NewGate(f)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = g.Load(context.Background())
	}()

	<-f.started
	assert.True(t, g.Loading())
	close(f.release)
	wg.Wait()
	assert.False(t, g.Loading())
}

func TestRequireMessage(t *testing.T) {
	g := NewGate(&fakeFetcher{})
	err := g.Require(Finanzas, Create)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrForbidden))
	assert.Contains(t, err.Error(), "No tienes permiso para create finanzas")
}
