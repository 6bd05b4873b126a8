package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"sgpj-client/internal/alerts"
	"sgpj-client/internal/logging"
	"sgpj-client/internal/models"
	"sgpj-client/internal/querycache"
	"sgpj-client/internal/services"
)

// SnapshotTTL bounds how stale an agenda response may be.
const SnapshotTTL = 30 * time.Second

const snapshotKey = "all"

type Handler struct {
	source services.Source
	hub    *services.Hub
	logger *logging.Logger
	clock  func() time.Time

	audiencias   *querycache.Cache[[]models.Audiencia]
	diligencias  *querycache.Cache[[]models.Diligencia]
	procesos     *querycache.Cache[[]models.Proceso]
	resoluciones *querycache.Cache[[]models.Resolucion]

	upgrader websocket.Upgrader
}

func NewHandler(source services.Source, hub *services.Hub, logger *logging.Logger) *Handler {
	return &Handler{
		source:       source,
		hub:          hub,
		logger:       logger,
		clock:        time.Now,
		audiencias:   querycache.New[[]models.Audiencia](SnapshotTTL),
		diligencias:  querycache.New[[]models.Diligencia](SnapshotTTL),
		procesos:     querycache.New[[]models.Proceso](SnapshotTTL),
		resoluciones: querycache.New[[]models.Resolucion](SnapshotTTL),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// hearings loads the hearings within window of now. Windows shorter than
// the agenda window share the default snapshot; longer ones get their own.
func (h *Handler) hearings(ctx context.Context, now time.Time, window time.Duration) ([]alerts.HearingItem, error) {
	span := max(window, alerts.AgendaWindow)
	key := snapshotKey
	if span > alerts.AgendaWindow {
		key = strconv.Itoa(int(span / (24 * time.Hour)))
	}
	list, err := h.audiencias.Get(ctx, key, func(ctx context.Context) ([]models.Audiencia, error) {
		return h.source.Audiencias(ctx, now, now.Add(span))
	})
	if err != nil {
		return nil, err
	}
	return alerts.UpcomingHearings(list, now, span), nil
}

// windowParam reads ?dias= as a window in days, falling back to def.
func windowParam(c *gin.Context, def time.Duration) (time.Duration, bool) {
	raw := c.Query("dias")
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, false
	}
	return time.Duration(n) * 24 * time.Hour, true
}

func (h *Handler) GetAudiencias(c *gin.Context) {
	window, ok := windowParam(c, alerts.AgendaWindow)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid dias"})
		return
	}
	now := h.clock()
	items, err := h.hearings(c.Request.Context(), now, window)
	if err != nil {
		h.logger.Errorf("Failed to load audiencias: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	end := now.Add(window)
	filtered := make([]alerts.HearingItem, 0, len(items))
	for _, item := range items {
		if !item.At.After(end) {
			filtered = append(filtered, item)
		}
	}
	c.JSON(http.StatusOK, filtered)
}

func (h *Handler) GetDiligencias(c *gin.Context) {
	window, ok := windowParam(c, alerts.AgendaWindow)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid dias"})
		return
	}
	list, err := h.diligencias.Get(c.Request.Context(), snapshotKey, h.source.Diligencias)
	if err != nil {
		h.logger.Errorf("Failed to load diligencias: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, alerts.UpcomingDiligencias(list, h.clock(), window))
}

func (h *Handler) GetPlazos(c *gin.Context) {
	list, err := h.resoluciones.Get(c.Request.Context(), snapshotKey, h.source.Resoluciones)
	if err != nil {
		h.logger.Errorf("Failed to load resoluciones: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, alerts.UpcomingDeadlines(list, h.clock(), alerts.PlazosWindow, alerts.PlazosLimit))
}

func (h *Handler) GetRevision(c *gin.Context) {
	list, err := h.procesos.Get(c.Request.Context(), snapshotKey, h.source.Procesos)
	if err != nil {
		h.logger.Errorf("Failed to load procesos: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, alerts.ProcesosNeedingReview(list, h.clock()))
}

// Refresh drops every cached snapshot.
func (h *Handler) Refresh(c *gin.Context) {
	h.audiencias.Purge()
	h.diligencias.Purge()
	h.procesos.Purge()
	h.resoluciones.Purge()
	h.logger.Infof("Agenda snapshots purged")
	c.Status(http.StatusNoContent)
}

// ServeWS registers the socket with the hub and sends the current
// countdowns. Later countdowns and reminders arrive by broadcast.
func (h *Handler) ServeWS(c *gin.Context) {
	userID := 0
	if raw := c.Query("user_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user_id"})
			return
		}
		userID = id
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Errorf("WebSocket upgrade failed: %v", err)
		return
	}
	if !h.hub.AddConnection(userID, conn) {
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "too many connections"))
		conn.Close()
		return
	}
	defer func() {
		h.hub.RemoveConnection(userID, conn)
		conn.Close()
	}()

	if event, err := h.countdownEvent(c.Request.Context()); err != nil {
		h.logger.Warnf("Initial countdown unavailable: %v", err)
	} else if err := h.hub.Send(conn, event); err != nil {
		h.logger.Errorf("Failed to send initial countdown: %v", err)
		return
	}

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Handler) countdownEvent(ctx context.Context) (services.Event, error) {
	now := h.clock()
	items, err := h.hearings(ctx, now, alerts.AgendaWindow)
	if err != nil {
		return services.Event{}, err
	}
	return services.Event{Type: services.EventCountdown, At: now, Payload: items}, nil
}

// PushCountdowns broadcasts fresh countdowns every interval while at
// least one socket is connected.
func (h *Handler) PushCountdowns(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if h.hub.Count() == 0 {
				continue
			}
			event, err := h.countdownEvent(ctx)
			if err != nil {
				h.logger.Errorf("Countdown refresh failed: %v", err)
				continue
			}
			h.hub.Broadcast(event)
		}
	}
}
