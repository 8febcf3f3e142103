package di

import (
	"context"
	"fmt"
	"net"
	"strconv"

	"SignalDesk/internal/backtest"
	"SignalDesk/internal/domain/repository"
	"SignalDesk/internal/handler/api"
	internalrepo "SignalDesk/internal/repository"
	"SignalDesk/internal/service/marketdata"
	"SignalDesk/internal/strategy"
	"SignalDesk/internal/usecase"
	"SignalDesk/pkg/cache"
	pkgch "SignalDesk/pkg/clickhouse"
	"SignalDesk/pkg/config"
	xhttp "SignalDesk/pkg/http"
	pkgkafka "SignalDesk/pkg/kafka"
	applogger "SignalDesk/pkg/logger"
	"SignalDesk/pkg/metrics"
	"SignalDesk/pkg/server"
)

// ProvideLogger creates the shared application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	level := "info"
	if cfg.Environment == "development" {
		level = "debug"
	}
	return applogger.New(&applogger.Config{Level: level, Format: "console", Output: "stdout"})
}

// ProvideCache creates the market data cache. With Redis reachable it is a
// two-level cache (memory over Redis); otherwise memory only.
func ProvideCache(cfg *config.Config, l *applogger.Logger) cache.Service {
	host, portStr, err := net.SplitHostPort(cfg.Redis.Addr)
	if err != nil {
		return cache.NewMemoryCache()
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return cache.NewMemoryCache()
	}

	redisCache, err := cache.NewRedisCache(
		cache.WithRedisHost(host),
		cache.WithRedisPort(port),
		cache.WithRedisPassword(cfg.Redis.Password),
		cache.WithRedisDB(cfg.Redis.DB),
		cache.WithRedisPrefix("marketdata"),
	)
	if err != nil {
		l.Warn("redis cache unavailable, using memory cache", applogger.Error(err))
		return cache.NewMemoryCache()
	}
	return cache.NewLayeredCache(redisCache)
}

// ProvideMarketData creates the chart API client.
func ProvideMarketData(cfg *config.Config, cacheSvc cache.Service, l *applogger.Logger) repository.MarketData {
	return marketdata.New(marketdata.Config{
		BaseURL:    cfg.MarketData.BaseURL,
		VIXSymbol:  cfg.MarketData.VIXSymbol,
		GEXURL:     cfg.MarketData.GEXURL,
		Timeout:    cfg.MarketData.Timeout,
		HistoryTTL: cfg.MarketData.HistoryTTL,
		ContextTTL: cfg.MarketData.ContextTTL,
		RateCap:    float64(cfg.MarketData.RateCap),
		RatePerSec: float64(cfg.MarketData.RatePerSec),
	}, cacheSvc, l)
}

// ProvideQuoteStream creates the live WebSocket quote feed, or nil when
// streaming is disabled.
func ProvideQuoteStream(cfg *config.Config, l *applogger.Logger) repository.QuoteStream {
	if !cfg.Stream.Enabled {
		return nil
	}
	return marketdata.NewStream(marketdata.StreamConfig{
		URL:            cfg.Stream.URL,
		APIKey:         cfg.Stream.APIKey,
		ReconnectDelay: cfg.Stream.ReconnectDelay,
		PingInterval:   cfg.Stream.PingInterval,
	}, l)
}

// ProvideDecisionStore creates the Redis-backed decision store.
func ProvideDecisionStore(cfg *config.Config, l *applogger.Logger) (repository.DecisionStore, error) {
	store, err := internalrepo.NewRedisDecisionStore(internalrepo.RedisConfig{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		TTL:      cfg.Redis.TTL,
	}, l)
	if err != nil {
		return nil, fmt.Errorf("decision store: %w", err)
	}
	return store, nil
}

// ProvideClickHouseClient creates a ClickHouse client, or nil when the
// trade ledger is disabled.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	if !cfg.ClickHouse.Enabled {
		return nil, nil
	}
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitForAsync),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}
	return client, nil
}

// ProvideTradeLedger creates the ClickHouse trade ledger, or nil when
// ClickHouse is disabled.
func ProvideTradeLedger(chClient *pkgch.Client, l *applogger.Logger) repository.TradeLedger {
	if chClient == nil {
		return nil
	}
	return internalrepo.NewCHTradeLedger(chClient, l)
}

// ProvideKafkaProducer creates a Kafka producer, or nil when alerting over
// Kafka is disabled.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.Producer.BatchBytes),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideAlertPublisher creates the Kafka alert publisher, or nil when no
// producer is configured.
func ProvideAlertPublisher(producer *pkgkafka.Producer, cfg *config.Config) repository.AlertPublisher {
	if producer == nil {
		return nil
	}
	return internalrepo.NewKafkaAlertPublisher(producer, cfg.Kafka.Topic)
}

// ProvideMetrics creates the Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideSelector creates the strategy selector.
func ProvideSelector(l *applogger.Logger) *strategy.Selector {
	return strategy.NewSelector(l.Zerolog())
}

// ProvideEngine creates the backtest engine.
func ProvideEngine(l *applogger.Logger) *backtest.Engine {
	return backtest.NewEngine(l.Zerolog())
}

// ProvideScannerUseCase creates the scan use case.
func ProvideScannerUseCase(
	data repository.MarketData,
	store repository.DecisionStore,
	alerts repository.AlertPublisher,
	metrics repository.Metrics,
	selector *strategy.Selector,
	cfg *config.Config,
	l *applogger.Logger,
) *usecase.ScannerUseCase {
	return usecase.NewScannerUseCase(data, store, alerts, metrics, selector, cfg.Scanner.AlertMinScore, l)
}

// ProvideBacktestUseCase creates the backtest use case.
func ProvideBacktestUseCase(
	data repository.MarketData,
	ledger repository.TradeLedger,
	metrics repository.Metrics,
	engine *backtest.Engine,
	l *applogger.Logger,
) *usecase.BacktestUseCase {
	return usecase.NewBacktestUseCase(data, ledger, metrics, engine, l)
}

// ProvideAutomationUseCase creates the scheduled scan loop.
func ProvideAutomationUseCase(scanner *usecase.ScannerUseCase, cfg *config.Config, l *applogger.Logger) *usecase.AutomationUseCase {
	return usecase.NewAutomationUseCase(scanner, usecase.SystemClock(), cfg.Scanner.Symbols, l)
}

// ProvideRouter bundles all API handlers.
func ProvideRouter(
	scanner *usecase.ScannerUseCase,
	bt *usecase.BacktestUseCase,
	automation *usecase.AutomationUseCase,
	l *applogger.Logger,
) xhttp.Handler {
	return api.NewRouter(
		api.NewScanHandler(l, scanner),
		api.NewBacktestHandler(l, bt),
		api.NewAutomationHandler(l, automation, context.Background()),
	)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	handler xhttp.Handler,
	automation *usecase.AutomationUseCase,
	stream repository.QuoteStream,
	store repository.DecisionStore,
	ledger repository.TradeLedger,
	producer *pkgkafka.Producer,
	chClient *pkgch.Client,
	l *applogger.Logger,
) *server.App {
	return server.New(cfg, handler, automation, stream, store, ledger, producer, chClient, l)
}
