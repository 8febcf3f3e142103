package repository

import (
	"context"

	"SignalDesk/internal/domain/models"
	domrepo "SignalDesk/internal/domain/repository"
	pkgkafka "SignalDesk/pkg/kafka"
)

// KafkaAlertPublisher pushes actionable decisions onto an alerts topic
// for downstream notifiers.
type KafkaAlertPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

func NewKafkaAlertPublisher(producer *pkgkafka.Producer, topic string) domrepo.AlertPublisher {
	return &KafkaAlertPublisher{producer: producer, topic: topic}
}

func (p *KafkaAlertPublisher) Publish(ctx context.Context, d *models.Decision) error {
	return p.producer.Publish(ctx, p.topic, []byte(d.Symbol), map[string]interface{}{
		"symbol":       d.Symbol,
		"finalSignal":  d.FinalSignal,
		"finalScore":   d.FinalScore,
		"entryPrice":   d.EntryPrice,
		"stopLoss":     d.StopLoss,
		"targetPrice":  d.TargetPrice,
		"bestStrategy": d.BestStrategy.Name,
		"timestamp":    d.Timestamp,
	})
}

func (p *KafkaAlertPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
