package queue

import (
	"context"
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
)

// FollowUpNotifier define o contrato de entrega (email hoje; discador e
// agenda ficam para integrações futuras).
type FollowUpNotifier interface {
	SendFollowUp(to, owner, leadName, company string, days int, suggestedAction string) error
}

type Worker struct {
	Channel  *amqp.Channel
	Notifier FollowUpNotifier
}

func NewWorker(ch *amqp.Channel, notifier FollowUpNotifier) *Worker {
	return &Worker{
		Channel:  ch,
		Notifier: notifier,
	}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName, // fila
		"",        // consumer
		false,     // auto-ack (manual é mais seguro)
		false,     // exclusive
		false,     // no-local
		false,     // no-wait
		nil,       // args
	)
	if err != nil {
		log.Fatalf("❌ Falha ao registrar consumidor RabbitMQ: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			log.Printf("📥 [WORKER] Follow-up recebido do RabbitMQ")

			var payload FollowUpPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Printf("❌ [WORKER] JSON Inválido: %s", err)
				// Mensagem podre (malformada). Rejeita sem requeue para não travar a fila.
				d.Nack(false, false)
				continue
			}

			log.Printf("⚙️ [WORKER] Processando follow-up de %s (%s, %dd sem contato)",
				payload.LeadName, payload.ActionType, payload.DaysSinceLastContact)

			if err := w.processMessage(context.Background(), payload); err != nil {
				log.Printf("❌ [WORKER] Erro na entrega: %s", err)
				d.Nack(false, false)
			} else {
				d.Ack(false)
			}
		}
	}()

	log.Printf(" [*] Worker rodando e aguardando na fila '%s'", queueName)
	<-forever
}

func (w *Worker) processMessage(ctx context.Context, payload FollowUpPayload) error {
	switch payload.ActionType {
	case "email":
		log.Println("✉️ Enviando follow-up por email...")
		return w.Notifier.SendFollowUp(
			payload.Email, payload.Owner, payload.LeadName, payload.Company,
			payload.DaysSinceLastContact, payload.SuggestedAction,
		)

	case "call", "meeting":
		// Discador e calendário ainda não integrados; o registro de contato
		// já aconteceu no acknowledge, então aqui é só telemetria.
		log.Printf("📞 Follow-up '%s' registrado para %s", payload.ActionType, payload.LeadName)
		return nil

	default:
		log.Printf("⚠️ Tipo de ação desconhecido: %s. Apenas logando.", payload.ActionType)
		// ACK mesmo assim: mensagem que não sabemos tratar não deve envenenar a fila.
		return nil
	}
}
