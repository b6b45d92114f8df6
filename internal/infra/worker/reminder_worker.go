package worker

import (
	"context"
	"log"
	"time"

	"github.com/vendaflow/pipecrm/internal/entity"
	"github.com/vendaflow/pipecrm/internal/infra/http/middleware"
	"github.com/vendaflow/pipecrm/internal/usecase"
)

// ReminderWorker reavalia os follow-ups em intervalo fixo e alimenta os
// gauges. A avaliação é barata (uma passada pelo snapshot), então um tick
// por minuto é folga.
type ReminderWorker struct {
	engine       *usecase.ReminderEngine
	tickInterval time.Duration
}

func NewReminderWorker(engine *usecase.ReminderEngine) *ReminderWorker {
	return &ReminderWorker{
		engine:       engine,
		tickInterval: 1 * time.Minute,
	}
}

func (w *ReminderWorker) Start(ctx context.Context) {
	log.Println("🕒 Reminder Worker iniciado")

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.refresh()

	for {
		select {
		case <-ctx.Done():
			log.Println("⚠️ Reminder Worker encerrado")
			return
		case <-ticker.C:
			w.refresh()
		}
	}
}

func (w *ReminderWorker) refresh() {
	reminders := w.engine.Evaluate()

	counts := map[entity.Urgency]int{
		entity.UrgencyLow:      0,
		entity.UrgencyMedium:   0,
		entity.UrgencyHigh:     0,
		entity.UrgencyCritical: 0,
	}
	for _, r := range reminders {
		counts[r.Urgency]++
	}

	for urgency, count := range counts {
		middleware.SetPendingReminders(string(urgency), count)
	}

	if counts[entity.UrgencyCritical] > 0 {
		log.Printf("🚨 %d lead(s) em estado crítico aguardando follow-up", counts[entity.UrgencyCritical])
	}
}
