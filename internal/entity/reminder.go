package entity

import (
	"fmt"
	"time"
)

type Urgency string

const (
	UrgencyLow      Urgency = "low"
	UrgencyMedium   Urgency = "medium"
	UrgencyHigh     Urgency = "high"
	UrgencyCritical Urgency = "critical"
)

// Rank ordena severidade: critical > high > medium > low.
func (u Urgency) Rank() int {
	switch u {
	case UrgencyCritical:
		return 3
	case UrgencyHigh:
		return 2
	case UrgencyMedium:
		return 1
	default:
		return 0
	}
}

// Escalate sobe exatamente um nível, com teto em high. Critical nunca é
// alcançado por escalação, só pelos 14+ dias sem contato.
func (u Urgency) Escalate() Urgency {
	switch u {
	case UrgencyLow:
		return UrgencyMedium
	case UrgencyMedium:
		return UrgencyHigh
	default:
		return u
	}
}

// Value Object: FollowUpReminder
// Projeção pura de um Lead num instante. Nunca persistida, recalculada
// do zero a cada avaliação.
type FollowUpReminder struct {
	ID                   string  `json:"id"`
	LeadID               string  `json:"lead_id"`
	LeadName             string  `json:"lead_name"`
	Company              string  `json:"company"`
	Owner                string  `json:"owner"`
	DaysSinceLastContact int     `json:"days_since_last_contact"`
	Urgency              Urgency `json:"urgency"`
	SuggestedAction      string  `json:"suggested_action"`
}

// ReminderID é determinístico por (lead, dias). Reconhecer um reminder
// suprime só aquela contagem de dias; no dia seguinte nasce um id novo.
func ReminderID(leadID string, days int) string {
	return fmt.Sprintf("%s-%d", leadID, days)
}

// Acknowledgment registra que o usuário agiu sobre um reminder.
type Acknowledgment struct {
	ReminderID string    `json:"reminder_id"`
	LeadID     string    `json:"lead_id"`
	ActionType string    `json:"action_type"` // email, call, meeting
	AckedAt    time.Time `json:"acked_at"`
}
