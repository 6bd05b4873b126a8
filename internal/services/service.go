package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"sgpj-client/internal/config"
	"sgpj-client/internal/logging"
	"sgpj-client/internal/models"
	"sgpj-client/internal/providers"
	"sgpj-client/internal/utils"
)

// Delivery channels.
const (
	ChannelEmail     = "email"
	ChannelTelegram  = "telegram"
	ChannelSMS       = "sms"
	ChannelWebSocket = "websocket"
	ChannelKafka     = "kafka"
)

const sendAttempts = 3

type ProviderFunc func(ctx context.Context, task models.Task) error

// Service deduplicates reminder Tasks and delivers them through every
// enabled channel from a pool of workers.
type Service struct {
	ledger        Ledger
	logger        *logging.Logger
	config        config.Config
	tasks         chan models.Task
	ctx           context.Context
	cancel        context.CancelFunc
	wg            *sync.WaitGroup
	providerFuncs map[string]ProviderFunc
	channels      []string
	hub           *Hub
	clock         func() time.Time
	retryDelay    time.Duration
}

// New builds the providers the configuration enables. hub may be nil.
// The kafka channel is added by RegisterProvider once a publisher exists.
func New(ledger Ledger, logger *logging.Logger, cfg config.Config, hub *Hub) (*Service, error) {
	if ledger == nil {
		ledger = NewMemoryLedger()
	}
	ctx, cancel := context.WithCancel(context.Background())
	svc := &Service{
		ledger:        ledger,
		logger:        logger,
		config:        cfg,
		tasks:         make(chan models.Task, cfg.Notification.QueueSize),
		ctx:           ctx,
		cancel:        cancel,
		providerFuncs: make(map[string]ProviderFunc),
		hub:           hub,
		clock:         time.Now,
		retryDelay:    time.Second,
	}

	for _, channel := range cfg.Channels() {
		switch channel {
		case ChannelEmail:
			svc.RegisterProvider(ChannelEmail, func(ctx context.Context, task models.Task) error {
				return providers.SendEmail(ctx, task, svc.config)
			})
		case ChannelTelegram:
			tg, err := providers.NewTelegram(cfg)
			if err != nil {
				cancel()
				return nil, err
			}
			svc.RegisterProvider(ChannelTelegram, tg.Send)
		case ChannelSMS:
			svc.RegisterProvider(ChannelSMS, providers.NewSMS(cfg).Send)
		}
	}
	if hub != nil {
		svc.RegisterProvider(ChannelWebSocket, func(ctx context.Context, task models.Task) error {
			t := task
			hub.Broadcast(Event{Type: EventReminder, At: svc.clock(), Reminder: &t})
			return nil
		})
	}
	return svc, nil
}

// Logger exposes the Service's logger
func (s *Service) Logger() *logging.Logger {
	return s.logger
}

// RegisterProvider enables channel with fn, replacing any previous one.
func (s *Service) RegisterProvider(channel string, fn ProviderFunc) {
	if _, exists := s.providerFuncs[channel]; !exists {
		s.channels = append(s.channels, channel)
	}
	s.providerFuncs[channel] = fn
}

// Channels lists the enabled delivery channels in registration order.
func (s *Service) Channels() []string {
	return append([]string(nil), s.channels...)
}

// Start launches the worker pool
func (s *Service) Start(wg *sync.WaitGroup) {
	s.wg = wg
	for i := 0; i < s.config.Notification.MaxWorkers; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}
}

// Stop cancels the workers and any retries in flight.
func (s *Service) Stop() {
	s.cancel()
}

// Enqueue queues task unless the ledger saw its key recently. It
// reports whether the task was queued.
func (s *Service) Enqueue(ctx context.Context, task models.Task) bool {
	now := s.clock()
	since := s.dedupSince(task, now)
	seen, err := s.ledger.Seen(ctx, task.Key, since)
	if err != nil {
		s.logger.Errorf("Ledger lookup failed for %s: %v", task.Key, err)
	}
	if seen {
		s.logger.Debugf("Reminder %s already sent since %s, skipping", task.Key, since.Format(time.RFC3339))
		return false
	}
	if !s.QueueTask(task) {
		return false
	}
	if err := s.ledger.Record(ctx, task.Key, now); err != nil {
		s.logger.Errorf("Ledger record failed for %s: %v", task.Key, err)
	}
	return true
}

// dedupSince is the start of the window in which a repeated key is
// dropped. Hearing reminders use the configured window. Daily reminders
// go out at most once per calendar day.
func (s *Service) dedupSince(task models.Task, now time.Time) time.Time {
	if task.Kind == models.ReminderAudiencia {
		return now.Add(-s.config.DedupWindow())
	}
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, now.Location())
}

// QueueTask enqueues a Task for processing
func (s *Service) QueueTask(task models.Task) bool {
	select {
	case s.tasks <- task:
		s.logger.Infof("Queued task: request_id=%s key=%s", task.RequestID, task.Key)
		return true
	default:
		s.logger.Errorf("Queue full, dropping task: request_id=%s key=%s", task.RequestID, task.Key)
		return false
	}
}

// Flush delivers every queued task on the calling goroutine and returns
// how many it handled.
func (s *Service) Flush() int {
	n := 0
	for {
		select {
		case task := <-s.tasks:
			s.handleTask(task)
			n++
		default:
			return n
		}
	}
}

// worker processes Tasks until context is cancelled
func (s *Service) worker(id int) {
	defer s.wg.Done()
	for {
		select {
		case <-s.ctx.Done():
			s.logger.Infof("Worker %d stopped", id)
			return
		case task := <-s.tasks:
			s.handleTask(task)
		}
	}
}

// handleTask delivers task through every channel and returns the
// channels that failed.
func (s *Service) handleTask(task models.Task) []string {
	var failed []string
	for _, channel := range s.channels {
		if channel == ChannelKafka && task.Source == models.SourceKafka {
			continue
		}
		provider := s.providerFuncs[channel]
		err := utils.Retry(s.ctx, s.logger, sendAttempts, s.retryDelay, func() error {
			return provider(s.ctx, task)
		})
		if err != nil {
			failed = append(failed, channel)
			s.logger.Errorf("Dispatch error via %s for %s: %v", channel, task.Key, err)
			continue
		}
		s.logger.Infof("Reminder %s dispatched via %s", task.Key, channel)
	}
	return failed
}

// Run scans once immediately and then on every interval tick until ctx
// is done.
func (s *Service) Run(ctx context.Context, scanner *Scanner, interval time.Duration) {
	s.logger.Infof("Reminder scheduler started, checking every %s", interval)
	s.RunOnce(ctx, scanner)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			s.logger.Infof("Reminder scheduler stopped")
			return
		case <-ticker.C:
			s.RunOnce(ctx, scanner)
		}
	}
}

// RunOnce scans and queues the resulting reminders. Source failures are
// logged and the reminders from the other sources still go out.
func (s *Service) RunOnce(ctx context.Context, scanner *Scanner) (int, error) {
	tasks, err := scanner.Scan(ctx, s.clock())
	if err != nil {
		s.logger.Errorf("Reminder scan incomplete: %v", err)
	}
	queued := 0
	for _, task := range tasks {
		if s.Enqueue(ctx, task) {
			queued++
		}
	}
	s.logger.Infof("Reminder scan found %d, queued %d", len(tasks), queued)
	if err != nil {
		return queued, fmt.Errorf("reminder scan: %w", err)
	}
	return queued, nil
}
