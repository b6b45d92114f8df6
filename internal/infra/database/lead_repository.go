package database

import (
	"context"
	"database/sql"

	"github.com/vendaflow/pipecrm/internal/entity"
)

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

// Upsert espelha o estado em memória. O store é a fonte da verdade, então
// aqui é sempre "o que veio ganha".
func (r *LeadRepository) Upsert(ctx context.Context, lead *entity.Lead) error {
	query := `
		INSERT INTO leads (
			id, name, company, email, phone, value, priority, source, notes,
			owner, stage, last_contact_date, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (id)
		DO UPDATE SET
			name = EXCLUDED.name,
			company = EXCLUDED.company,
			email = EXCLUDED.email,
			phone = EXCLUDED.phone,
			value = EXCLUDED.value,
			priority = EXCLUDED.priority,
			source = EXCLUDED.source,
			notes = EXCLUDED.notes,
			owner = EXCLUDED.owner,
			stage = EXCLUDED.stage,
			last_contact_date = EXCLUDED.last_contact_date,
			updated_at = EXCLUDED.updated_at
	`

	_, err := r.DB.ExecContext(
		ctx,
		query,
		lead.ID,
		lead.Name,
		lead.Company,
		lead.Email,
		nullString(lead.Phone),
		lead.Value,
		string(lead.Priority),
		nullString(lead.Source),
		nullString(lead.Notes),
		lead.Owner,
		lead.Stage,
		lead.LastContactDate,
		lead.CreatedAt,
		lead.UpdatedAt,
	)

	return err
}

// LoadAll devolve na ordem de criação, que é a ordem de inserção que o
// store preserva dentro de cada balde.
func (r *LeadRepository) LoadAll(ctx context.Context) ([]*entity.Lead, error) {
	query := `
		SELECT id, name, company, email,
		       COALESCE(phone, ''), value, priority,
		       COALESCE(source, ''), COALESCE(notes, ''),
		       owner, stage, last_contact_date, created_at, updated_at
		FROM leads
		ORDER BY created_at ASC
	`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leads []*entity.Lead
	for rows.Next() {
		var lead entity.Lead
		var priority string

		if err := rows.Scan(
			&lead.ID,
			&lead.Name,
			&lead.Company,
			&lead.Email,
			&lead.Phone,
			&lead.Value,
			&priority,
			&lead.Source,
			&lead.Notes,
			&lead.Owner,
			&lead.Stage,
			&lead.LastContactDate,
			&lead.CreatedAt,
			&lead.UpdatedAt,
		); err != nil {
			return nil, err
		}

		lead.Priority = entity.Priority(priority)
		leads = append(leads, &lead)
	}

	return leads, rows.Err()
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
