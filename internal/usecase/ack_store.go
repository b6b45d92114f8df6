package usecase

import (
	"context"
	"sync"

	"github.com/vendaflow/pipecrm/internal/entity"
)

// MemoryAckStore é o comportamento de referência: acknowledgments vivem só
// na memória do processo e somem no restart. Para durabilidade, injete o
// FollowUpRepository do pacote database no lugar.
type MemoryAckStore struct {
	mu    sync.RWMutex
	acked map[string]entity.Acknowledgment
}

func NewMemoryAckStore() *MemoryAckStore {
	return &MemoryAckStore{
		acked: make(map[string]entity.Acknowledgment),
	}
}

func (s *MemoryAckStore) Add(ctx context.Context, ack entity.Acknowledgment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.acked[ack.ReminderID] = ack
	return nil
}

func (s *MemoryAckStore) Contains(reminderID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.acked[reminderID]
	return ok
}
