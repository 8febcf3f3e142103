package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"SignalDesk/internal/domain/models"
	domrepo "SignalDesk/internal/domain/repository"
	applogger "SignalDesk/pkg/logger"
)

// ErrDecisionNotFound is returned when no live decision exists for a symbol.
var ErrDecisionNotFound = errors.New("decision not found")

// RedisDecisionStore keeps the latest Decision per symbol in Redis.
// Save overwrites; decisions expire after TTL so a dead scanner does not
// leave stale calls behind.
type RedisDecisionStore struct {
	cli *redis.Client
	ttl time.Duration
	l   *applogger.Logger
}

// RedisConfig configures the decision store connection.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

func NewRedisDecisionStore(cfg RedisConfig, l *applogger.Logger) (domrepo.DecisionStore, error) {
	cli := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := cli.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	ttl := cfg.TTL
	if ttl == 0 {
		ttl = 24 * time.Hour
	}
	return &RedisDecisionStore{cli: cli, ttl: ttl, l: l}, nil
}

func decisionKey(symbol string) string {
	return "decision:" + symbol
}

func (s *RedisDecisionStore) Save(ctx context.Context, d *models.Decision) error {
	b, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("marshal decision: %w", err)
	}
	if err := s.cli.Set(ctx, decisionKey(d.Symbol), b, s.ttl).Err(); err != nil {
		s.l.Error("redis save decision failed",
			applogger.String("symbol", d.Symbol),
			applogger.Error(err),
		)
		return fmt.Errorf("save decision %s: %w", d.Symbol, err)
	}
	return nil
}

func (s *RedisDecisionStore) Get(ctx context.Context, symbol string) (*models.Decision, error) {
	b, err := s.cli.Get(ctx, decisionKey(symbol)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: %s", ErrDecisionNotFound, symbol)
	}
	if err != nil {
		return nil, fmt.Errorf("get decision %s: %w", symbol, err)
	}
	var d models.Decision
	if err := json.Unmarshal(b, &d); err != nil {
		return nil, fmt.Errorf("unmarshal decision %s: %w", symbol, err)
	}
	return &d, nil
}

func (s *RedisDecisionStore) Close() error {
	return s.cli.Close()
}
