package entity

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	// IMPORTANTE: NÃO adicione imports de usecase ou infra aqui!
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func IsValidPriority(p Priority) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// Value Object: Stage (balde fixo do funil, configuração estática)
type Stage struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Order       int    `json:"order"`
}

const (
	StageLeadInbound = "lead-inbound"
	StageQualified   = "qualified"
	StageDemo        = "demo"
	StageProposal    = "proposal"
	StageClosed      = "closed"
)

// Stages na ordem de exibição do funil. O primeiro é o estágio inicial
// de todo lead novo; o último é o terminal.
var Stages = []Stage{
	{ID: StageLeadInbound, Name: "Inbound", Description: "Leads novos, ainda sem triagem", Order: 0},
	{ID: StageQualified, Name: "Qualificado", Description: "Fit confirmado, vale investir", Order: 1},
	{ID: StageDemo, Name: "Demo", Description: "Demonstração agendada ou feita", Order: 2},
	{ID: StageProposal, Name: "Proposta", Description: "Proposta comercial enviada", Order: 3},
	{ID: StageClosed, Name: "Fechado", Description: "Negócio encerrado", Order: 4},
}

func InitialStage() string {
	return Stages[0].ID
}

// IsValidStage checa pertencimento, não posição. Qualquer estágio alcança
// qualquer outro: o board permite arrastar para onde quiser.
func IsValidStage(id string) bool {
	for _, s := range Stages {
		if s.ID == id {
			return true
		}
	}
	return false
}

// Entidade: Lead
type Lead struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Company  string   `json:"company"`
	Email    string   `json:"email"`
	Phone    string   `json:"phone,omitempty"`
	Value    float64  `json:"value"`
	Priority Priority `json:"priority"`
	Source   string   `json:"source,omitempty"`
	Notes    string   `json:"notes,omitempty"`
	Owner    string   `json:"owner"`

	Stage           string    `json:"stage"`
	LastContactDate time.Time `json:"last_contact_date"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Factory
func NewLead(name, company, email, phone, source, notes, createdBy string, value float64, priority Priority, now time.Time) (*Lead, error) {
	if priority == "" {
		priority = PriorityMedium
	}

	lead := &Lead{
		ID:              uuid.New().String(),
		Name:            name,
		Company:         company,
		Email:           email,
		Phone:           phone,
		Value:           value,
		Priority:        priority,
		Source:          source,
		Notes:           notes,
		Owner:           createdBy,
		Stage:           InitialStage(),
		LastContactDate: now,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := lead.Validate(); err != nil {
		return nil, err
	}

	return lead, nil
}

func (l *Lead) Validate() error {
	if l.Name == "" {
		return errors.New("name is required")
	}
	if l.Company == "" {
		return errors.New("company is required")
	}
	if l.Email == "" {
		return errors.New("email is required")
	}
	if strings.Count(l.Email, "@") != 1 {
		return errors.New("email must contain a single @")
	}
	if l.Value < 0 {
		return errors.New("value must be non-negative")
	}
	if !IsValidPriority(l.Priority) {
		return errors.New("unknown priority")
	}
	if !IsValidStage(l.Stage) {
		return errors.New("unknown stage")
	}
	return nil
}

func (l *Lead) IsClosed() bool {
	return l.Stage == StageClosed
}
