package usecase

import (
	"context"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/vendaflow/pipecrm/internal/entity"
	"github.com/vendaflow/pipecrm/internal/infra/queue"
)

// Janela de silêncio e cortes de urgência, em dias sem contato.
const (
	QuietPeriodDays   = 3
	MediumAfterDays   = 5
	HighAfterDays     = 7
	CriticalAfterDays = 14
)

const (
	actionCritical = "Urgent: Re-engage immediately or mark as lost"
	actionHigh     = "Schedule call or send personalized email"
	actionMedium   = "Send follow-up email or LinkedIn message"
	actionLow      = "Quick check-in call or email"
)

// DaysSinceLastContact arredonda para baixo e trava em zero. Uma data de
// contato no futuro (dado importado, relógio torto) vira "acabou de falar",
// nunca um erro.
func DaysSinceLastContact(now, lastContact time.Time) int {
	days := int(now.Sub(lastContact).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

func baseUrgency(days int) (entity.Urgency, string) {
	// Do corte mais severo para baixo; o maior corte atingido vence.
	switch {
	case days >= CriticalAfterDays:
		return entity.UrgencyCritical, actionCritical
	case days >= HighAfterDays:
		return entity.UrgencyHigh, actionHigh
	case days >= MediumAfterDays:
		return entity.UrgencyMedium, actionMedium
	default:
		return entity.UrgencyLow, actionLow
	}
}

// EvaluateReminders é uma função pura de (agora, snapshot, acks).
// Sem estado escondido: cada passada recomputa tudo do zero.
func EvaluateReminders(now time.Time, leads []*entity.Lead, acked AckSet) []entity.FollowUpReminder {
	reminders := []entity.FollowUpReminder{}

	for _, lead := range leads {
		if lead.IsClosed() {
			continue
		}

		days := DaysSinceLastContact(now, lead.LastContactDate)
		if days < QuietPeriodDays {
			continue
		}

		urgency, action := baseUrgency(days)

		// Prioridade alta sobe um nível, exceto quando já é critical:
		// critical só se alcança pelos 14+ dias.
		if lead.Priority == entity.PriorityHigh && urgency != entity.UrgencyCritical {
			urgency = urgency.Escalate()
		}

		id := entity.ReminderID(lead.ID, days)
		if acked != nil && acked.Contains(id) {
			continue
		}

		reminders = append(reminders, entity.FollowUpReminder{
			ID:                   id,
			LeadID:               lead.ID,
			LeadName:             lead.Name,
			Company:              lead.Company,
			Owner:                lead.Owner,
			DaysSinceLastContact: days,
			Urgency:              urgency,
			SuggestedAction:      action,
		})
	}

	sort.SliceStable(reminders, func(i, j int) bool {
		if reminders[i].Urgency.Rank() != reminders[j].Urgency.Rank() {
			return reminders[i].Urgency.Rank() > reminders[j].Urgency.Rank()
		}
		return reminders[i].DaysSinceLastContact > reminders[j].DaysSinceLastContact
	})

	return reminders
}

func Summarize(reminders []entity.FollowUpReminder) ReminderSummary {
	summary := ReminderSummary{Total: len(reminders)}
	for _, r := range reminders {
		switch r.Urgency {
		case entity.UrgencyCritical:
			summary.Critical++
		case entity.UrgencyHigh:
			summary.High++
		}
	}
	return summary
}

// ReminderEngine amarra a avaliação pura ao store e ao conjunto de acks.
// O mutex serializa Acknowledge contra Evaluate: o insert no ack set e o
// recordContact precisam aparecer juntos para a próxima passada, senão um
// recompute velho "des-reconhece" o reminder.
type ReminderEngine struct {
	mu sync.Mutex

	Store *PipelineStore
	Acks  AcknowledgmentStore
	Queue QueueProducerInterface // opcional
	Now   Clock
}

func NewReminderEngine(store *PipelineStore, acks AcknowledgmentStore, producer QueueProducerInterface) *ReminderEngine {
	return &ReminderEngine{
		Store: store,
		Acks:  acks,
		Queue: producer,
		Now:   time.Now,
	}
}

// Evaluate roda uma passada sobre o snapshot atual do store.
func (e *ReminderEngine) Evaluate() []entity.FollowUpReminder {
	e.mu.Lock()
	defer e.mu.Unlock()

	return EvaluateReminders(e.Now(), e.Store.Snapshot(), e.Acks)
}

// Acknowledge suprime o reminder do dia e registra contato no lead.
// A supressão vale só para esta contagem de dias: o lead envelhecendo de
// novo gera um id novo e volta para a lista sozinho.
func (e *ReminderEngine) Acknowledge(ctx context.Context, leadID, actionType string) error {
	if !IsValidActionType(actionType) {
		return &DomainError{
			Code:    "INVALID_ACTION",
			Message: "action type must be email, call or meeting",
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.Now()

	lead, err := e.Store.Get(leadID)
	if err != nil {
		return err
	}

	days := DaysSinceLastContact(now, lead.LastContactDate)
	urgency, action := baseUrgency(days)
	if lead.Priority == entity.PriorityHigh && urgency != entity.UrgencyCritical {
		urgency = urgency.Escalate()
	}

	ack := entity.Acknowledgment{
		ReminderID: entity.ReminderID(leadID, days),
		LeadID:     leadID,
		ActionType: actionType,
		AckedAt:    now,
	}

	if err := e.Acks.Add(ctx, ack); err != nil {
		return &TechnicalError{
			Code:    "ACK_STORE_ERROR",
			Message: "failed to persist acknowledgment: " + err.Error(),
		}
	}

	if _, err := e.Store.RecordContact(ctx, leadID); err != nil {
		return err
	}

	if e.Queue != nil {
		payload := queue.FollowUpPayload{
			ReminderID:           ack.ReminderID,
			LeadID:               lead.ID,
			LeadName:             lead.Name,
			Company:              lead.Company,
			Email:                lead.Email,
			Owner:                lead.Owner,
			ActionType:           actionType,
			Urgency:              string(urgency),
			DaysSinceLastContact: days,
			SuggestedAction:      action,
			AckedAt:              now,
		}

		go func() {
			if err := e.Queue.PublishFollowUp(context.Background(), payload); err != nil {
				log.Printf("⚠️ Falha ao publicar follow-up de %s: %v", lead.ID, err)
			}
		}()
	}

	return nil
}
