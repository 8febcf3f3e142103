package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	domrepo "SignalDesk/internal/domain/repository"
	"SignalDesk/internal/usecase"
	pkgch "SignalDesk/pkg/clickhouse"
	"SignalDesk/pkg/config"
	xhttp "SignalDesk/pkg/http"
	pkgkafka "SignalDesk/pkg/kafka"
	applogger "SignalDesk/pkg/logger"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	handler    xhttp.Handler
	automation *usecase.AutomationUseCase
	stream     domrepo.QuoteStream
	store      domrepo.DecisionStore
	ledger     domrepo.TradeLedger
	producer   *pkgkafka.Producer
	chClient   *pkgch.Client
	httpServer *xhttp.Server
	l          *applogger.Logger
}

// New creates a new App instance with all dependencies. Nil infrastructure
// (stream, ledger, producer, chClient) disables the corresponding feature.
func New(
	cfg *config.Config,
	handler xhttp.Handler,
	automation *usecase.AutomationUseCase,
	stream domrepo.QuoteStream,
	store domrepo.DecisionStore,
	ledger domrepo.TradeLedger,
	producer *pkgkafka.Producer,
	chClient *pkgch.Client,
	l *applogger.Logger,
) *App {
	return &App{
		cfg:        cfg,
		handler:    handler,
		automation: automation,
		stream:     stream,
		store:      store,
		ledger:     ledger,
		producer:   producer,
		chClient:   chClient,
		l:          l,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	l := a.l
	if l == nil {
		l, _ = applogger.New(&applogger.Config{Level: "info", Format: "console", Output: "stdout"})
		a.l = l
	}

	// Ensure the trade ledger schema exists before serving backtests.
	if a.ledger != nil {
		initCtx, initCancel := context.WithTimeout(ctx, 10*time.Second)
		if err := a.ledger.Init(initCtx); err != nil {
			l.Warn("trade ledger init failed, backtest persistence degraded", applogger.Error(err))
		}
		initCancel()
	}

	a.httpServer = xhttp.NewServer(a.handler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
	)

	// Live quote feed: log-only consumer keeps the connection warm so
	// handlers can report stream health.
	if a.stream != nil {
		go a.runStream(ctx, l)
	}

	// Kick off the scan loop when an automation period is configured.
	if a.automation != nil && a.cfg.Scanner.AutomationPeriod > 0 {
		minutes := int(a.cfg.Scanner.AutomationPeriod.Minutes())
		if err := a.automation.Start(ctx, minutes); err != nil {
			l.Warn("automation start error", applogger.Error(err))
		} else {
			l.Info("automation started",
				applogger.Int("interval_minutes", minutes),
				applogger.Strings("watchlist", a.cfg.Scanner.Symbols))
		}
	}

	if err := a.httpServer.Start(); err != nil {
		l.Error("http server start error", applogger.Error(err))
		return err
	}

	// Wait for interrupt
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	l.Info("shutdown signal received")
	return a.shutdown(ctx)
}

// runStream connects the quote stream and drains it until ctx is done,
// reconnecting after transient failures.
func (a *App) runStream(ctx context.Context, l *applogger.Logger) {
	delay := a.cfg.Stream.ReconnectDelay
	if delay <= 0 {
		delay = 5 * time.Second
	}
	for {
		if err := a.stream.Connect(ctx); err != nil {
			l.Warn("quote stream connect error", applogger.Error(err))
		} else if err := a.stream.Subscribe(ctx, a.cfg.Scanner.Symbols); err != nil {
			l.Warn("quote stream subscribe error", applogger.Error(err))
		} else {
			l.Info("quote stream connected", applogger.Strings("symbols", a.cfg.Scanner.Symbols))
			quotes, errs := a.stream.Read(ctx)
		drain:
			for {
				select {
				case <-ctx.Done():
					return
				case q, ok := <-quotes:
					if !ok {
						break drain
					}
					l.Debug("quote",
						applogger.String("symbol", q.Symbol),
						applogger.Float64("price", q.Price))
				case err, ok := <-errs:
					if ok && err != nil {
						l.Warn("quote stream error", applogger.Error(err))
					}
					break drain
				}
			}
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}
	}
}

// shutdown gracefully stops all services.
func (a *App) shutdown(ctx context.Context) error {
	l := a.l
	l.Info("shutting down...")

	if a.automation != nil {
		a.automation.Stop()
	}

	if a.stream != nil {
		if err := a.stream.Close(); err != nil {
			l.Warn("quote stream close error", applogger.Error(err))
		}
	}

	// Shutdown HTTP server
	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		l.Error("http shutdown error", applogger.Error(err))
	}

	// Close infrastructure clients
	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			l.Warn("kafka producer close error", applogger.Error(err))
		}
	}
	if a.ledger != nil {
		if err := a.ledger.Close(); err != nil {
			l.Warn("trade ledger close error", applogger.Error(err))
		}
	}
	if a.chClient != nil {
		if err := a.chClient.Close(); err != nil {
			l.Warn("clickhouse close error", applogger.Error(err))
		}
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			l.Warn("decision store close error", applogger.Error(err))
		}
	}

	l.Info("shutdown complete")
	return nil
}
