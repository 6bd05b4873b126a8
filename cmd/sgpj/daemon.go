package main

import (
	"context"
	"fmt"
	"sync"

	"sgpj-client/internal/db"
	"sgpj-client/internal/kafka"
	"sgpj-client/internal/logging"
	"sgpj-client/internal/services"
)

// daemon is the reminder pipeline shared by `reminders run` and
// `agenda serve`.
type daemon struct {
	logger   *logging.Logger
	db       *db.DB
	service  *services.Service
	scanner  *services.Scanner
	source   services.ClientSource
	hub      *services.Hub
	consumer *kafka.Consumer
	closers  []func()
	wg       sync.WaitGroup
}

func (a *app) newDaemon(ctx context.Context, hub *services.Hub) (*daemon, error) {
	if err := a.cfg.ValidateReminders(); err != nil {
		return nil, err
	}
	logger, err := logging.New(a.cfg.Logging.Dir, a.cfg.Logging.Level)
	if err != nil {
		return nil, err
	}
	d := &daemon{logger: logger, hub: hub}
	d.closers = append(d.closers, logger.Close)

	var ledger services.Ledger = services.NewMemoryLedger()
	if a.cfg.DB.DSN != "" {
		conn, err := db.New(ctx, a.cfg.DB.DSN)
		if err != nil {
			d.close()
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		d.closers = append(d.closers, conn.Close)
		if err := conn.EnsureSchema(ctx); err != nil {
			d.close()
			return nil, err
		}
		d.db = conn
		ledger = conn
		logger.Infof("Reminder ledger stored in Postgres")
	} else {
		logger.Warnf("DB_DSN not set, reminder ledger kept in memory")
	}

	svc, err := services.New(ledger, logger, a.cfg, hub)
	if err != nil {
		d.close()
		return nil, err
	}
	d.service = svc

	if a.cfg.Kafka.Broker != "" {
		kcfg := kafka.Config{Broker: a.cfg.Kafka.Broker, Topic: a.cfg.Kafka.Topic, GroupID: a.cfg.Kafka.GroupID}
		publisher := kafka.NewPublisher(kcfg, logger)
		svc.RegisterProvider(services.ChannelKafka, publisher.Publish)
		d.closers = append(d.closers, func() { _ = publisher.Close() })
		if kcfg.GroupID != "" {
			d.consumer = kafka.NewConsumer(kcfg, svc, logger)
		}
		logger.Infof("Kafka enabled on topic %s", kcfg.Topic)
	}

	d.source = services.ClientSource{Clients: a.clients}
	d.scanner = services.NewScanner(d.source, services.ScanConfigFrom(a.cfg), logger)
	logger.Infof("Reminder channels: %v", svc.Channels())
	return d, nil
}

// start launches the worker pool and the kafka consumer.
func (d *daemon) start(ctx context.Context) {
	d.service.Start(&d.wg)
	if d.consumer != nil {
		d.consumer.Start(ctx, &d.wg)
	}
}

// stop cancels the workers, waits for them and releases every resource.
func (d *daemon) stop() {
	d.service.Stop()
	if d.consumer != nil {
		if err := d.consumer.Close(); err != nil {
			d.logger.Errorf("Failed to close kafka consumer: %v", err)
		}
	}
	d.wg.Wait()
	d.close()
}

func (d *daemon) close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		d.closers[i]()
	}
	d.closers = nil
}
