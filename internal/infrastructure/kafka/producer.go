package kafka

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/DRSN-tech/price-compare/internal/cfg"
	"github.com/DRSN-tech/price-compare/internal/usecase"
	"github.com/DRSN-tech/price-compare/pkg/e"
	"github.com/DRSN-tech/price-compare/pkg/logger"
	"github.com/jimlawless/whereami"
	"github.com/segmentio/kafka-go"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// EventTypeComparisonComputed — тип события о выполненном сравнении цен.
const EventTypeComparisonComputed = "comparison.computed"

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer публикует события сравнения цен в Kafka в виде google.protobuf.Struct.
type Producer struct {
	writer messageWriter
	logger logger.Logger
	cfg    *cfg.KafkaCfg
}

func NewProducer(logger logger.Logger, cfg *cfg.KafkaCfg) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchSize:    10,
		BatchTimeout: 500 * time.Millisecond,
		WriteTimeout: 10 * time.Second,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				logger.Warnf("Kafka producer error: %s", err.Error())
			}
		},
	}

	return &Producer{
		writer: writer,
		logger: logger,
		cfg:    cfg,
	}
}

// PublishComparison отправляет событие. Ключ сообщения — запрос, поэтому события одного запроса попадают в одну партицию.
func (p *Producer) PublishComparison(ctx context.Context, event *usecase.ComparisonEvent) error {
	value, err := GetPayloadBytes(event)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strings.ToLower(event.Query)),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(EventTypeComparisonComputed)},
			{Key: "content_type", Value: []byte("application/x-protobuf")},
		},
	}); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// EnsureTopic создаёт топик, если его нет.
func (p *Producer) EnsureTopic(timeout time.Duration) error {
	conn, err := kafka.Dial(p.cfg.NetworkMode, p.cfg.Brokers[0])
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	defer conn.Close()

	partitions, err := conn.ReadPartitions(p.cfg.Topic)
	if err == nil && len(partitions) > 0 {
		return nil
	}

	done := make(chan error, 1)
	go func() {
		done <- conn.CreateTopics(kafka.TopicConfig{
			Topic:             p.cfg.Topic,
			NumPartitions:     p.cfg.Partitions,
			ReplicationFactor: p.cfg.ReplicationFactor,
		})
	}()

	select {
	case err := <-done:
		if err != nil {
			return e.Wrap(whereami.WhereAmI(), fmt.Errorf("failed to create topic %s: %w", p.cfg.Topic, err))
		}
		return nil
	case <-time.After(timeout):
		_ = conn.Close()
		return e.Wrap(whereami.WhereAmI(), fmt.Errorf("timeout: %v, topic: %s", timeout, p.cfg.Topic))
	}
}

// Close закрывает writer. Сигнатура подходит для closer.Func.
func (p *Producer) Close(_ context.Context) error {
	return p.writer.Close()
}

// GetPayloadBytes сериализует событие в protobuf.
func GetPayloadBytes(event *usecase.ComparisonEvent) ([]byte, error) {
	msg, err := toStruct(event)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return proto.Marshal(msg)
}

func toStruct(event *usecase.ComparisonEvent) (*structpb.Struct, error) {
	products := make([]any, 0, len(event.Products))
	for _, pr := range event.Products {
		item := map[string]any{
			"product_id": pr.ProductID,
			"name":       pr.Name,
			"has_prices": pr.HasPrices,
		}
		if pr.HasPrices {
			item["lowest_store"] = pr.LowestStore
			item["lowest_price_pence"] = int64(pr.LowestPrice)
			item["store_count"] = pr.StoreCount
		}
		products = append(products, item)
	}

	return structpb.NewStruct(map[string]any{
		"event_id":    event.EventID,
		"event_type":  EventTypeComparisonComputed,
		"computed_at": event.ComputedAt.UTC().Format(time.RFC3339Nano),
		"query":       event.Query,
		"guest":       event.Guest,
		"products":    products,
	})
}
