package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// FollowUpPayload é o evento emitido quando um reminder é reconhecido.
// Quem consome decide o canal de entrega (email, discador, agenda).
type FollowUpPayload struct {
	ReminderID string `json:"reminder_id"`
	LeadID     string `json:"lead_id"`
	LeadName   string `json:"lead_name"`
	Company    string `json:"company"`
	Email      string `json:"email"`
	Owner      string `json:"owner"`

	ActionType           string    `json:"action_type"` // email, call, meeting
	Urgency              string    `json:"urgency"`
	DaysSinceLastContact int       `json:"days_since_last_contact"`
	SuggestedAction      string    `json:"suggested_action"`
	AckedAt              time.Time `json:"acked_at"`
}

type RabbitMQProducer struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewProducer(conn *amqp.Connection, ch *amqp.Channel) *RabbitMQProducer {
	return &RabbitMQProducer{
		Conn: conn,
		Ch:   ch,
	}
}

func (p *RabbitMQProducer) PublishFollowUp(ctx context.Context, payload FollowUpPayload) error {

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("erro ao converter payload: %v", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName, // ex.pipeline
		RoutingKey,   // k.followup
		false,        // Mandatory
		false,        // Immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent, // Mensagem salva no disco (segurança!)
		},
	)

	if err != nil {
		return fmt.Errorf("falha ao publicar no RabbitMQ: %v", err)
	}

	return nil
}
