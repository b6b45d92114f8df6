package usecase

import (
	"context"
	"time"

	"github.com/vendaflow/pipecrm/internal/entity"
	"github.com/vendaflow/pipecrm/internal/infra/queue"
)

// LeadRepositoryInterface é o adapter de durabilidade. O store em memória
// continua sendo a fonte da verdade; o repositório só espelha.
type LeadRepositoryInterface interface {
	Upsert(ctx context.Context, lead *entity.Lead) error
	LoadAll(ctx context.Context) ([]*entity.Lead, error)
}

// AckSet é a visão read-only usada pela avaliação pura de reminders.
type AckSet interface {
	Contains(reminderID string) bool
}

// AcknowledgmentStore guarda os reminders já reconhecidos.
type AcknowledgmentStore interface {
	AckSet
	Add(ctx context.Context, ack entity.Acknowledgment) error
}

type QueueProducerInterface interface {
	PublishFollowUp(ctx context.Context, payload queue.FollowUpPayload) error
}

type Clock func() time.Time
