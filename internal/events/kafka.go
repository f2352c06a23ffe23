package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/BruksfildServices01/master-scheduler/internal/audit"
)

// Writer is the subset of *kafka.Writer the producer needs.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer publishes audit events to a Kafka topic keyed by master, so all
// events of one master land on one partition in order.
type Producer struct {
	writer  Writer
	topic   string
	timeout time.Duration
}

func NewProducer(brokers []string, topic string) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Balancer:     &kafka.Hash{},
		BatchTimeout: 50 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}
	return NewProducerWithWriter(writer, topic)
}

func NewProducerWithWriter(w Writer, topic string) *Producer {
	return &Producer{
		writer:  w,
		topic:   topic,
		timeout: 5 * time.Second,
	}
}

// Log implements audit.Sink.
func (p *Producer) Log(ev audit.Event) error {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	return p.Publish(ctx, ev)
}

func (p *Producer) Publish(ctx context.Context, ev audit.Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	msg := kafka.Message{
		Topic: p.topic,
		Key:   []byte(strconv.FormatUint(uint64(ev.MasterID), 10)),
		Value: data,
		Time:  time.Now(),
		Headers: []kafka.Header{
			{Key: "action", Value: []byte(ev.Action)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write message to kafka: %w", err)
	}

	log.Printf("[EVENTS] published topic=%s action=%s master_id=%d", p.topic, ev.Action, ev.MasterID)
	return nil
}

func (p *Producer) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}

var _ audit.Sink = (*Producer)(nil)
