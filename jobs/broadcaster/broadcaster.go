// Package broadcaster drains the ingest queue, validates each message and
// republishes the clean frames downstream.
package broadcaster

import (
	"context"
	"sync/atomic"

	"github.com/IBM/sarama"
	"go.uber.org/zap"

	"synapse/infra/arena"
	"synapse/validate"
	"synapse/wire"
)

// Broadcaster owns one validation context and a Kafka producer. Running it
// on a single goroutine is what satisfies the validators' external
// exclusion requirement.
type Broadcaster struct {
	in        <-chan *arena.Buffer
	validator *validate.Validator
	producer  sarama.SyncProducer
	topic     string
	log       *zap.Logger

	published atomic.Uint64
	rejected  atomic.Uint64
}

// New connects a broadcaster to the delivery queue and the given brokers.
func New(
	in <-chan *arena.Buffer,
	validator *validate.Validator,
	brokers []string,
	topic string,
	log *zap.Logger,
) (*Broadcaster, error) {

	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 5

	producer, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, err
	}

	return &Broadcaster{
		in:        in,
		validator: validator,
		producer:  producer,
		topic:     topic,
		log:       log,
	}, nil
}

// Start launches the drain loop. It exits when ctx is cancelled or the
// delivery queue closes.
func (b *Broadcaster) Start(ctx context.Context) {
	b.log.Info("broadcaster started", zap.String("topic", b.topic))

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case buf, ok := <-b.in:
				if !ok {
					return
				}
				b.handle(buf)
			}
		}
	}()
}

// handle validates one framed message and publishes it when clean. The
// buffer is released either way; published frames are copied onto the
// producer path, so arena memory never escapes the process.
func (b *Broadcaster) handle(buf *arena.Buffer) {
	defer buf.Close()

	frame := buf.Bytes()
	header, err := wire.DecodeHeader(frame)
	if err != nil {
		b.rejected.Add(1)
		b.log.Warn("undersized frame in queue", zap.Uint64("seq", buf.Seq))
		return
	}
	payload := frame[wire.HeaderSize:]

	if err := b.validator.ValidateMessage(header, payload); err != nil {
		b.rejected.Add(1)
		b.log.Warn("message rejected",
			zap.Uint64("seq", buf.Seq),
			zap.Uint8("msg_type", header.MsgType),
			zap.Error(err),
		)
		return
	}

	msg := &sarama.ProducerMessage{
		Topic: b.topic,
		Value: sarama.ByteEncoder(append([]byte(nil), frame...)),
	}
	// Trade and quote payloads both lead with the 8-byte symbol; keying on
	// it keeps per-symbol ordering within a partition.
	if (header.MsgType == wire.MsgTrade || header.MsgType == wire.MsgQuote) && len(payload) >= 8 {
		msg.Key = sarama.ByteEncoder(payload[:8])
	}
	if _, _, err := b.producer.SendMessage(msg); err != nil {
		b.log.Error("publish failed",
			zap.Uint64("seq", buf.Seq),
			zap.Error(err),
		)
		return
	}
	b.published.Add(1)
}

// Published returns the number of frames sent downstream.
func (b *Broadcaster) Published() uint64 { return b.published.Load() }

// Rejected returns the number of frames dropped by validation.
func (b *Broadcaster) Rejected() uint64 { return b.rejected.Load() }

// Close shuts the producer down.
func (b *Broadcaster) Close() error {
	return b.producer.Close()
}
