// Package kafka adapts Kafka topics to the ingestion core: a Source feeds
// raw framed bytes into the service.
package kafka

import (
	"context"
	"errors"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Pusher is the slice of the ingest service a source needs.
type Pusher interface {
	Push(raw []byte) error
}

// Source consumes raw frame bytes from a Kafka topic and pushes them into
// the ingestor. Message values are treated as opaque stream chunks; frame
// boundaries come from the wire headers, not from Kafka message
// boundaries.
type Source struct {
	reader *kafka.Reader
	log    *zap.Logger
}

// NewSource creates a source reading from the given brokers and topic.
func NewSource(brokers []string, topic string, log *zap.Logger) *Source {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     brokers,
		Topic:       topic,
		Partition:   0,
		MinBytes:    1,
		MaxBytes:    10e6,
		StartOffset: kafka.LastOffset,
	})
	return &Source{reader: reader, log: log}
}

// Run reads until ctx is cancelled, pushing every message's bytes into
// sink. Push errors are logged and counted, never fatal: the stream must
// keep flowing past bad frames.
func (s *Source) Run(ctx context.Context, sink Pusher) error {
	s.log.Info("kafka source started")

	for {
		msg, err := s.reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			s.log.Error("kafka read failed", zap.Error(err))
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(time.Second):
			}
			continue
		}

		if err := sink.Push(msg.Value); err != nil {
			s.log.Warn("push rejected",
				zap.Error(err),
				zap.Int64("offset", msg.Offset),
			)
		}
	}
}

// Close shuts the underlying reader down.
func (s *Source) Close() error {
	return s.reader.Close()
}
