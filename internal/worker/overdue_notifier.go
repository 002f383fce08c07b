package worker

import (
	"context"
	"runtime/debug"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"loadsmart_billing/internal/conf"
	"loadsmart_billing/internal/constants"
	"loadsmart_billing/internal/dao/repository"
	"loadsmart_billing/internal/logic"
)

// reminderCooldown is how long to wait before reminding about the same
// invoice again.
const reminderCooldown = 24 * time.Hour

// OverdueNotifier is a background worker that periodically emits reminder
// events for invoices past their payment window. Overdue is derived at read
// time; this worker never writes to the invoice itself.
type OverdueNotifier struct {
	ticker         *time.Ticker
	invoiceRepo    repository.InvoiceRepository
	eventPublisher *logic.InvoiceEventPublisher
	logger         *zap.Logger
	batchSize      int
	lastNotified   map[primitive.ObjectID]time.Time
	done           chan bool
}

// NewOverdueNotifier creates a new OverdueNotifier.
func NewOverdueNotifier(interval time.Duration, cfg *conf.WorkerConfig, invoiceRepo repository.InvoiceRepository, eventPublisher *logic.InvoiceEventPublisher, logger *zap.Logger) *OverdueNotifier {
	return &OverdueNotifier{
		ticker:         time.NewTicker(interval),
		invoiceRepo:    invoiceRepo,
		eventPublisher: eventPublisher,
		logger:         logger.Named("OverdueNotifier"),
		batchSize:      cfg.OverdueNotifier.BatchSize,
		lastNotified:   make(map[primitive.ObjectID]time.Time),
		done:           make(chan bool),
	}
}

// Start begins the ticker to periodically run the reminder task.
func (w *OverdueNotifier) Start() {
	w.logger.Info("Starting overdue notifier worker")
	go func() {
		for {
			select {
			case <-w.done:
				return
			case <-w.ticker.C:
				func() {
					defer func() {
						if r := recover(); r != nil {
							w.logger.Error("Panic recovered in overdue notifier worker",
								zap.Any("panic", r),
								zap.String("stack", string(debug.Stack())),
							)
						}
					}()
					w.logger.Debug("Running overdue reminder task")
					if err := w.notifyOverdue(context.Background()); err != nil {
						w.logger.Error("Failed to emit overdue reminders", zap.Error(err))
					}
				}()
			}
		}
	}()
}

func (w *OverdueNotifier) notifyOverdue(ctx context.Context) error {
	now := time.Now()
	invoices, err := w.invoiceRepo.GetOverdueInvoices(ctx, now, w.batchSize)
	if err != nil {
		return err
	}

	for _, invoice := range invoices {
		if last, ok := w.lastNotified[invoice.ID]; ok && now.Sub(last) < reminderCooldown {
			continue
		}
		if err := w.eventPublisher.PublishInvoiceEvent(ctx, constants.InvoiceEventOverdueReminder, invoice); err != nil {
			w.logger.Error("Failed to publish overdue reminder", zap.Error(err), zap.Stringer("invoiceID", invoice.ID))
			continue
		}
		w.lastNotified[invoice.ID] = now
		w.logger.Info("Emitted overdue reminder",
			zap.Stringer("invoiceID", invoice.ID),
			zap.String("invoiceNumber", invoice.InvoiceNumber),
		)
	}

	// Drop settled entries so the map does not grow without bound.
	for id, last := range w.lastNotified {
		if now.Sub(last) > 2*reminderCooldown {
			delete(w.lastNotified, id)
		}
	}

	return nil
}

// Stop stops the ticker.
func (w *OverdueNotifier) Stop() {
	w.logger.Info("Stopping overdue notifier worker")
	w.ticker.Stop()
	w.done <- true
}
