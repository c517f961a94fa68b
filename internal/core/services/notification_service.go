package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"churchhub/internal/core/domain"
)

// LogNotifier simulates email delivery with a log line
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier creates a new notifier
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.Named("notify")}
}

// Notify logs the simulated delivery and returns the acknowledgment text
func (n *LogNotifier) Notify(ctx context.Context, notice Notice) (*NotificationReceipt, error) {
	n.logger.Info("email simulation",
		zap.String("sector_id", notice.SectorID),
		zap.String("sector", notice.SectorName),
		zap.String("event", notice.EventTitle),
		zap.Int("recipients", notice.Recipients))

	var msg string
	if notice.SectorID == domain.GlobalSectorID {
		msg = fmt.Sprintf("Simulação: Disparo de e-mail realizado para toda a igreja sobre o evento %q!", notice.EventTitle)
	} else {
		msg = fmt.Sprintf("Simulação: Disparo de e-mail realizado para %d membros de %s sobre o evento %q!",
			notice.Recipients, notice.SectorName, notice.EventTitle)
	}

	return &NotificationReceipt{
		Recipients: notice.Recipients,
		Message:    msg,
	}, nil
}
