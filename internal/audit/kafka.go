package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

// Kafka 把审计事件写入 Kafka topic。
type Kafka struct {
	w   *kafka.Writer
	log zerolog.Logger
}

// NewKafka 创建写入器并配置可靠性参数：
// - Hash + Key: 同一实体的事件尽量落同一分区，保持相对有序。
// - RequireAll: 等待 ISR 副本确认，降低丢失风险。
// - MaxAttempts/Timeout: 控制重试与超时边界。
func NewKafka(brokers []string, topic string, log zerolog.Logger) *Kafka {
	return &Kafka{
		w: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
			MaxAttempts:  5,
			WriteTimeout: 5 * time.Second,
			ReadTimeout:  5 * time.Second,
			BatchTimeout: 50 * time.Millisecond,
		},
		log: log,
	}
}

// Close 释放 writer 资源。
func (k *Kafka) Close() error { return k.w.Close() }

// Record 同步写入一条事件，key 取 "entity:id" 以便按实体分区。
// 审计是旁路：任何失败都只记日志。
func (k *Kafka) Record(ctx context.Context, ev Event) {
	if err := ev.Validate(); err != nil {
		k.log.Warn().Err(err).Msg("audit: drop malformed event")
		return
	}
	b, err := json.Marshal(ev)
	if err != nil {
		k.log.Warn().Err(err).Msg("audit: marshal event")
		return
	}
	key := fmt.Sprintf("%s:%d", ev.Entity, ev.EntityID)
	if err := k.w.WriteMessages(ctx, kafka.Message{Key: []byte(key), Value: b}); err != nil {
		k.log.Error().Err(err).
			Str("entity", ev.Entity).
			Str("action", ev.Action).
			Msg("audit: publish event")
	}
}
