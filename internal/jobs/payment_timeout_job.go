package jobs

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// PaymentTimeoutJob cancels deliveries stuck in payment_pending longer
// than the configured TTL. Runs every minute; each stale delivery goes
// through the regular cancel command so the transition rules and event
// publishing stay in one place.
type PaymentTimeoutJob struct {
	db      *gorm.DB
	handler commands.CancelDeliveryCommandHandler
	ttl     time.Duration
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewPaymentTimeoutJob creates the sweeper with the given payment TTL.
func NewPaymentTimeoutJob(
	db *gorm.DB,
	handler commands.CancelDeliveryCommandHandler,
	ttl time.Duration,
	logger *slog.Logger,
) *PaymentTimeoutJob {
	return &PaymentTimeoutJob{
		db:      db,
		handler: handler,
		ttl:     ttl,
		cron:    cron.New(),
		logger:  logger.With("component", "payment_timeout_job"),
	}
}

// Start begins the sweeper, running once a minute.
func (j *PaymentTimeoutJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", j.sweep)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(),
		"Payment timeout job started (running every minute)", "ttl", j.ttl)
	return nil
}

// Stop stops the sweeper.
func (j *PaymentTimeoutJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Payment timeout job stopped")
}

func (j *PaymentTimeoutJob) sweep() {
	ctx := context.Background()

	staleIDs, err := j.findStale(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Payment timeout sweep failed", "error", err)
		return
	}

	for _, id := range staleIDs {
		cmd, cmdErr := commands.NewCancelDeliveryCommand(id)
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Payment timeout cancel skipped",
				"deliveryId", id, "error", cmdErr)
			continue
		}

		if cancelErr := j.handler.Handle(ctx, cmd); cancelErr != nil {
			// A delivery paid for between the select and the cancel is
			// an expected race, not a failure.
			if errors.Is(cancelErr, delivery.ErrInvalidTransition) {
				continue
			}
			j.logger.ErrorContext(ctx, "Payment timeout cancel failed",
				"deliveryId", id, "error", cancelErr)
			continue
		}

		j.logger.InfoContext(ctx, "Cancelled delivery with expired payment window",
			"deliveryId", id)
	}
}

func (j *PaymentTimeoutJob) findStale(ctx context.Context) ([]kernel.ID, error) {
	cutoff := time.Now().UTC().Add(-j.ttl)

	rows, err := j.db.WithContext(ctx).Raw(`
		SELECT id
		FROM deliveries
		WHERE status = ? AND created_at < ?
		ORDER BY id
	`, int(delivery.PaymentPending), cutoff).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]kernel.ID, 0)
	for rows.Next() {
		var id int64
		if err = rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, kernel.ID(id))
	}

	return ids, rows.Err()
}
