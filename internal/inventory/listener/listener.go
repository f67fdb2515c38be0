package listener

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/fekuna/gesstock-service/internal/apperror"
	"github.com/fekuna/gesstock-service/internal/inventory"
	"github.com/fekuna/gesstock-service/internal/inventory/dto"
	"github.com/fekuna/gesstock-service/internal/pkg/logger"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const EventBarcodeScanned = "barcode.scanned"

// MessageReader is satisfied by broker.KafkaConsumer.
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

type ScanListener struct {
	consumer   MessageReader
	uc         inventory.UseCase
	logger     logger.ZapLogger
	retryDelay time.Duration
}

func NewScanListener(consumer MessageReader, uc inventory.UseCase, logger logger.ZapLogger) *ScanListener {
	return &ScanListener{
		consumer:   consumer,
		uc:         uc,
		logger:     logger,
		retryDelay: time.Second,
	}
}

// Start blocks until ctx is cancelled.
func (l *ScanListener) Start(ctx context.Context) {
	l.logger.Info("Starting scan listener")
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("Stopping scan listener")
			return
		default:
			msg, err := l.consumer.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				l.logger.Error("Failed to read kafka message", zap.Error(err))
				select {
				case <-ctx.Done():
					return
				case <-time.After(l.retryDelay):
				}
				continue
			}
			l.processMessage(ctx, msg.Value)
		}
	}
}

func (l *ScanListener) processMessage(ctx context.Context, value []byte) {
	var event dto.ScanEvent
	if err := json.Unmarshal(value, &event); err != nil {
		l.logger.Error("Failed to unmarshal scan event", zap.Error(err))
		return
	}

	if event.EventType != EventBarcodeScanned {
		return
	}

	p, err := l.uc.ProcessScan(ctx, &dto.ScanInput{
		OwnerID: event.Payload.OwnerID,
		Code:    event.Payload.Code,
	})
	switch {
	case errors.Is(err, apperror.ErrNotFound):
		l.logger.Info("Scanned code not found",
			zap.String("owner_id", event.Payload.OwnerID),
			zap.String("code", event.Payload.Code),
		)
	case err != nil:
		l.logger.Error("Failed to process scan",
			zap.String("event_id", event.EventID),
			zap.String("owner_id", event.Payload.OwnerID),
			zap.Error(err),
		)
	default:
		l.logger.Info("Scanned code resolved",
			zap.String("owner_id", event.Payload.OwnerID),
			zap.String("product_id", p.ID),
		)
	}
}
