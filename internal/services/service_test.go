package services

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

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sgpj-client/internal/config"
	"sgpj-client/internal/logging"
	"sgpj-client/internal/models"
)

func testConfig() config.Config {
	var cfg config.Config
	cfg.Notification.QueueSize = 10
	cfg.Notification.MaxWorkers = 2
	cfg.Reminders.DedupWindowMinutes = 120
	return cfg
}

func newTestService(t *testing.T, cfg config.Config, hub *Hub) *Service {
	t.Helper()
	svc, err := New(NewMemoryLedger(), logging.NewNop(), cfg, hub)
	require.NoError(t, err)
	svc.clock = func() time.Time { return now }
	svc.retryDelay = time.Millisecond
	t.Cleanup(svc.Stop)
	return svc
}

type recorder struct {
	mu    sync.Mutex
	tasks []models.Task
	fails int
}

func (r *recorder) send(ctx context.Context, task models.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fails > 0 {
		r.fails--
		return errors.New("provider unavailable")
	}
	r.tasks = append(r.tasks, task)
	return nil
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tasks)
}

func TestNewRegistersConfiguredChannels(t *testing.T) {
	cfg := testConfig()
	cfg.SMS.AccountSID = "AC1"
	cfg.SMS.AuthToken = "tok"
	cfg.SMS.FromNumber = "+1555"
	cfg.SMS.Recipients = []string{"+51999"}
	cfg.Telegram.BotToken = "123:abc"
	cfg.Telegram.ChatIDs = []int64{42}

	svc := newTestService(t, cfg, NewHub(logging.NewNop()))
	assert.Equal(t, []string{ChannelTelegram, ChannelSMS, ChannelWebSocket}, svc.Channels())

	svc.RegisterProvider(ChannelKafka, (&recorder{}).send)
	assert.Equal(t, []string{ChannelTelegram, ChannelSMS, ChannelWebSocket, ChannelKafka}, svc.Channels())
}

func TestEnqueueDeduplicates(t *testing.T) {
	svc := newTestService(t, testConfig(), nil)
	ctx := context.Background()

	hearing := models.Task{Kind: models.ReminderAudiencia, Key: "audiencia:1:24"}
	assert.True(t, svc.Enqueue(ctx, hearing))
	assert.False(t, svc.Enqueue(ctx, hearing), "same key within the window")

	svc.clock = func() time.Time { return now.Add(121 * time.Minute) }
	assert.True(t, svc.Enqueue(ctx, hearing), "window elapsed")

	daily := models.Task{Kind: models.ReminderRevision, Key: "revision:4"}
	svc.clock = func() time.Time { return now }
	assert.True(t, svc.Enqueue(ctx, daily))
	svc.clock = func() time.Time { return now.Add(13 * time.Hour) }
	assert.False(t, svc.Enqueue(ctx, daily), "still the same day")
	svc.clock = func() time.Time { return now.Add(15 * time.Hour) }
	assert.True(t, svc.Enqueue(ctx, daily), "next day")
}

func TestQueueFullDropsTask(t *testing.T) {
	cfg := testConfig()
	cfg.Notification.QueueSize = 1
	svc := newTestService(t, cfg, nil)

	assert.True(t, svc.QueueTask(models.Task{Key: "a"}))
	assert.False(t, svc.QueueTask(models.Task{Key: "b"}))
	assert.False(t, svc.Enqueue(context.Background(), models.Task{Key: "c"}))

	seen, err := svc.ledger.Seen(context.Background(), "c", now.Add(-time.Hour))
	require.NoError(t, err)
	assert.False(t, seen, "dropped tasks are not recorded")
}

func TestHandleTaskRetriesAndReportsFailures(t *testing.T) {
	svc := newTestService(t, testConfig(), nil)
	flaky := &recorder{fails: 2}
	broken := &recorder{fails: 10}
	svc.RegisterProvider(ChannelEmail, flaky.send)
	svc.RegisterProvider(ChannelSMS, broken.send)

	failed := svc.handleTask(models.Task{Key: "plazo:1"})
	assert.Equal(t, []string{ChannelSMS}, failed)
	assert.Equal(t, 1, flaky.count())
	assert.Equal(t, 0, broken.count())
}

func TestKafkaTasksAreNotRepublished(t *testing.T) {
	svc := newTestService(t, testConfig(), nil)
	mail := &recorder{}
	publish := &recorder{}
	svc.RegisterProvider(ChannelEmail, mail.send)
	svc.RegisterProvider(ChannelKafka, publish.send)

	svc.handleTask(models.Task{Key: "plazo:1", Source: models.SourceKafka})
	svc.handleTask(models.Task{Key: "plazo:2", Source: models.SourceScanner})

	assert.Equal(t, 2, mail.count())
	assert.Equal(t, 1, publish.count())
}

func TestWorkersDeliverQueuedTasks(t *testing.T) {
	svc := newTestService(t, testConfig(), nil)
	mail := &recorder{}
	svc.RegisterProvider(ChannelEmail, mail.send)

	var wg sync.WaitGroup
	svc.Start(&wg)
	for _, key := range []string{"plazo:1", "plazo:2", "plazo:3"} {
		require.True(t, svc.Enqueue(context.Background(), models.Task{Kind: models.ReminderPlazo, Key: key}))
	}
	require.Eventually(t, func() bool { return mail.count() == 3 }, time.Second, 5*time.Millisecond)

	svc.Stop()
	wg.Wait()
}

func TestRunOnceAndFlush(t *testing.T) {
	svc := newTestService(t, testConfig(), nil)
	mail := &recorder{}
	svc.RegisterProvider(ChannelEmail, mail.send)
	src := &fakeSource{resoluciones: []models.Resolucion{
		{ID: 1, FechaLimite: fecha(1), EstadoAccion: models.EstadoAccionPendiente},
		{ID: 2, FechaLimite: fecha(2), EstadoAccion: models.EstadoAccionPendiente},
	}}
	scanner := NewScanner(src, scanConfig(), logging.NewNop())

	queued, err := svc.RunOnce(context.Background(), scanner)
	require.NoError(t, err)
	assert.Equal(t, 2, queued)
	assert.Equal(t, 2, svc.Flush())
	assert.Equal(t, 2, mail.count())

	queued, err = svc.RunOnce(context.Background(), scanner)
	require.NoError(t, err)
	assert.Equal(t, 0, queued, "second scan the same day is deduplicated")
}

func TestWebSocketChannelBroadcasts(t *testing.T) {
	hub := NewHub(logging.NewNop())
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := (&websocket.Upgrader{}).Upgrade(w, r, nil)
		if !assert.NoError(t, err) {
			return
		}
		hub.AddConnection(7, conn)
	}))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	defer conn.Close()
	require.Eventually(t, func() bool { return hub.Count() == 1 }, time.Second, 5*time.Millisecond)

	svc := newTestService(t, testConfig(), hub)
	failed := svc.handleTask(models.Task{Key: "audiencia:1:24", Subject: "Recordatorio"})
	assert.Empty(t, failed)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	var event Event
	require.NoError(t, json.Unmarshal(data, &event))
	assert.Equal(t, EventReminder, event.Type)
	require.NotNil(t, event.Reminder)
	assert.Equal(t, "audiencia:1:24", event.Reminder.Key)
}

func TestHubClosesConnectionsThatFailToWrite(t *testing.T) {
	hub := NewHub(logging.NewNop())
	hub.writeWait = -time.Second
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := (&websocket.Upgrader{}).Upgrade(w, r, nil)
		if !assert.NoError(t, err) {
			return
		}
		hub.AddConnection(3, conn)
	}))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	defer conn.Close()
	require.Eventually(t, func() bool { return hub.Count() == 1 }, time.Second, 5*time.Millisecond)

	assert.Equal(t, 0, hub.Broadcast(Event{Type: EventCountdown}))
	assert.Equal(t, 0, hub.Count())

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err = conn.ReadMessage()
	require.Error(t, err)
	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) {
		assert.False(t, netErr.Timeout(), "server side should have closed the socket")
	}
}

func TestHubCapsConnectionsPerUser(t *testing.T) {
	hub := NewHub(logging.NewNop())
	for i := 0; i < MaxConnectionsPerUser; i++ {
		assert.True(t, hub.AddConnection(1, &websocket.Conn{}))
	}
	assert.False(t, hub.AddConnection(1, &websocket.Conn{}))
	assert.True(t, hub.AddConnection(2, &websocket.Conn{}))
	assert.Equal(t, MaxConnectionsPerUser+1, hub.Count())
}
