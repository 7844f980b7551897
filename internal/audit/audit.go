// Package audit 把后台写操作记录为审计事件。
// 发布是请求内的同步写；发布失败只记日志，不影响接口结果。
package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Event 是一次后台变更的审计事件。
type Event struct {
	ID         string    `json:"id"`
	Actor      string    `json:"actor"` // 操作者邮箱
	Action     string    `json:"action"`
	Entity     string    `json:"entity"`
	EntityID   uint      `json:"entity_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewEvent 构造一条带随机 ID 的事件。
func NewEvent(actor, action, entity string, entityID uint) Event {
	return Event{
		ID:         uuid.New().String(),
		Actor:      actor,
		Action:     action,
		Entity:     entity,
		EntityID:   entityID,
		OccurredAt: time.Now(),
	}
}

// Validate 做最小字段校验，防止下游处理脏事件。
func (e Event) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("id is required")
	}
	if e.Action == "" {
		return fmt.Errorf("action is required")
	}
	if e.Entity == "" {
		return fmt.Errorf("entity is required")
	}
	if e.EntityID == 0 {
		return fmt.Errorf("entity_id is required")
	}
	return nil
}

// Recorder 抽象事件落地方式，便于未接 Kafka 的环境与测试替换。
type Recorder interface {
	Record(ctx context.Context, ev Event)
}

// Nop 丢弃全部事件。
type Nop struct{}

func (Nop) Record(context.Context, Event) {}
