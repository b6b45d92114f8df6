package usecase

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/vendaflow/pipecrm/internal/entity"
)

// PipelineStore é o dono da coleção de leads. Toda mutação passa por aqui,
// serializada por um único mutex: transições e registros de contato
// concorrentes no mesmo lead chegam de ações simultâneas da UI.
type PipelineStore struct {
	mu    sync.Mutex
	leads map[string]*entity.Lead
	order []string // ordem de inserção, preservada no Query

	Repo LeadRepositoryInterface // opcional; nil roda 100% em memória
	Now  Clock
}

func NewPipelineStore(repo LeadRepositoryInterface) *PipelineStore {
	return &PipelineStore{
		leads: make(map[string]*entity.Lead),
		order: []string{},
		Repo:  repo,
		Now:   time.Now,
	}
}

// Load hidrata o store a partir do repositório. Chamado uma vez no boot,
// antes de servir requisições.
func (s *PipelineStore) Load(ctx context.Context) error {
	if s.Repo == nil {
		return nil
	}

	stored, err := s.Repo.LoadAll(ctx)
	if err != nil {
		return &TechnicalError{
			Code:    "DATABASE_ERROR",
			Message: "failed to load leads: " + err.Error(),
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, lead := range stored {
		// O banco é espelho, não fonte: linha que quebra o invariante
		// (estágio fora do conjunto, valor negativo) não entra no store.
		if err := lead.Validate(); err != nil {
			log.Printf("⚠️ Ignorando lead %s vindo do banco: %v", lead.ID, err)
			continue
		}
		if _, exists := s.leads[lead.ID]; exists {
			continue
		}
		s.leads[lead.ID] = lead
		s.order = append(s.order, lead.ID)
	}
	return nil
}

func (s *PipelineStore) AddLead(ctx context.Context, input AddLeadInput) (*entity.Lead, error) {
	validationErrors := ValidateAddLeadInput(input)
	if len(validationErrors) > 0 {
		errMsg := "validation failed: "
		for _, e := range validationErrors {
			errMsg += e.Field + " (" + e.Message + "), "
		}
		return nil, &DomainError{
			Code:    "VALIDATION_ERROR",
			Message: errMsg,
		}
	}

	lead, err := entity.NewLead(
		input.Name, input.Company, input.Email,
		input.Phone, input.Source, input.Notes, input.CreatedBy,
		input.Value, entity.Priority(input.Priority),
		s.Now(),
	)
	if err != nil {
		return nil, &DomainError{
			Code:    "VALIDATION_ERROR",
			Message: err.Error(),
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.persist(ctx, lead); err != nil {
		return nil, err
	}

	s.leads[lead.ID] = lead
	s.order = append(s.order, lead.ID)

	return copyLead(lead), nil
}

func (s *PipelineStore) TransitionStage(ctx context.Context, leadID, targetStage string) (*entity.Lead, error) {
	if !entity.IsValidStage(targetStage) {
		return nil, &InvalidStageError{Stage: targetStage}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lead, ok := s.leads[leadID]
	if !ok {
		return nil, &NotFoundError{LeadID: leadID}
	}

	now := s.Now()
	updated := copyLead(lead)
	updated.Stage = targetStage
	// Mover um card conta como contato: alguém olhou para o lead.
	updated.LastContactDate = now
	updated.UpdatedAt = now

	if err := s.persist(ctx, updated); err != nil {
		return nil, err
	}

	s.leads[leadID] = updated
	return copyLead(updated), nil
}

func (s *PipelineStore) AssignOwner(ctx context.Context, leadID, owner string) (*entity.Lead, error) {
	if strings.TrimSpace(owner) == "" {
		return nil, &DomainError{
			Code:    "VALIDATION_ERROR",
			Message: "owner is required",
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lead, ok := s.leads[leadID]
	if !ok {
		return nil, &NotFoundError{LeadID: leadID}
	}

	updated := copyLead(lead)
	updated.Owner = owner
	updated.UpdatedAt = s.Now()

	if err := s.persist(ctx, updated); err != nil {
		return nil, err
	}

	s.leads[leadID] = updated
	return copyLead(updated), nil
}

func (s *PipelineStore) RecordContact(ctx context.Context, leadID string) (*entity.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.recordContactLocked(ctx, leadID)
}

// recordContactLocked assume s.mu já adquirido. Existe para o engine de
// reminders fazer ack + contato como um passo só.
func (s *PipelineStore) recordContactLocked(ctx context.Context, leadID string) (*entity.Lead, error) {
	lead, ok := s.leads[leadID]
	if !ok {
		return nil, &NotFoundError{LeadID: leadID}
	}

	now := s.Now()
	updated := copyLead(lead)
	updated.LastContactDate = now
	updated.UpdatedAt = now

	if err := s.persist(ctx, updated); err != nil {
		return nil, err
	}

	s.leads[leadID] = updated
	return copyLead(updated), nil
}

func (s *PipelineStore) Get(leadID string) (*entity.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lead, ok := s.leads[leadID]
	if !ok {
		return nil, &NotFoundError{LeadID: leadID}
	}
	return copyLead(lead), nil
}

// Query retorna os leads em ordem de inserção, opcionalmente filtrados
// por estágio. Stage vazio retorna tudo.
func (s *PipelineStore) Query(stage string) []*entity.Lead {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := []*entity.Lead{}
	for _, id := range s.order {
		lead := s.leads[id]
		if stage != "" && lead.Stage != stage {
			continue
		}
		result = append(result, copyLead(lead))
	}
	return result
}

// Snapshot é o que o engine de reminders consome: cópia consistente de
// toda a coleção, sem segurar o lock durante a avaliação.
func (s *PipelineStore) Snapshot() []*entity.Lead {
	return s.Query("")
}

func (s *PipelineStore) Summary() PipelineSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	byStage := make(map[string]*StageSummary)
	summary := PipelineSummary{}

	for _, st := range entity.Stages {
		byStage[st.ID] = &StageSummary{Stage: st.ID}
	}

	for _, id := range s.order {
		lead := s.leads[id]
		if bucket, ok := byStage[lead.Stage]; ok {
			bucket.Count++
			bucket.Value += lead.Value
		}

		summary.TotalLeads++
		if !lead.IsClosed() {
			summary.OpenValue += lead.Value
		}
	}

	for _, st := range entity.Stages {
		summary.Stages = append(summary.Stages, *byStage[st.ID])
	}
	return summary
}

// persist espelha antes de comitar em memória: se o banco recusar, o
// estado em memória não muda.
func (s *PipelineStore) persist(ctx context.Context, lead *entity.Lead) error {
	if s.Repo == nil {
		return nil
	}
	if err := s.Repo.Upsert(ctx, lead); err != nil {
		return &TechnicalError{
			Code:    "DATABASE_ERROR",
			Message: "failed to persist lead: " + err.Error(),
		}
	}
	return nil
}

func copyLead(lead *entity.Lead) *entity.Lead {
	c := *lead
	return &c
}
