package database

import (
	"context"
	"database/sql"
	"sync"

	"github.com/vendaflow/pipecrm/internal/entity"
)

// FollowUpRepository persiste acknowledgments em Postgres mantendo um
// cache dos ids em memória: Contains roda no caminho quente da avaliação
// de reminders e não pode bater no banco a cada lead.
type FollowUpRepository struct {
	DB *sql.DB

	mu    sync.RWMutex
	acked map[string]bool
}

func NewFollowUpRepository(ctx context.Context, db *sql.DB) (*FollowUpRepository, error) {
	repo := &FollowUpRepository{
		DB:    db,
		acked: make(map[string]bool),
	}

	rows, err := db.QueryContext(ctx, `SELECT reminder_id FROM follow_up_acks`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		repo.acked[id] = true
	}

	return repo, rows.Err()
}

func (r *FollowUpRepository) Add(ctx context.Context, ack entity.Acknowledgment) error {
	query := `
		INSERT INTO follow_up_acks (reminder_id, lead_id, action_type, acked_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (reminder_id) DO NOTHING
	`

	_, err := r.DB.ExecContext(ctx, query, ack.ReminderID, ack.LeadID, ack.ActionType, ack.AckedAt)
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.acked[ack.ReminderID] = true
	r.mu.Unlock()

	return nil
}

func (r *FollowUpRepository) Contains(reminderID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.acked[reminderID]
}
