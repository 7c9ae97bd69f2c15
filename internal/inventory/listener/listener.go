package listener

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/fahari-app/inventory-service/internal/inventory"
	"github.com/fahari-app/inventory-service/internal/inventory/dto"
	"github.com/fahari-app/inventory-service/pkg/broker"
	"github.com/fahari-app/inventory-service/pkg/logger"
)

// StockListener deducts sold quantities from the ledger as sale events
// arrive.
type StockListener struct {
	consumer *broker.KafkaConsumer
	uc       inventory.UseCase
	logger   logger.Logger
}

func NewStockListener(consumer *broker.KafkaConsumer, uc inventory.UseCase, log logger.Logger) *StockListener {
	return &StockListener{
		consumer: consumer,
		uc:       uc,
		logger:   log,
	}
}

type SaleRecordedEvent struct {
	EventID   string      `json:"event_id"`
	EventType string      `json:"event_type"`
	Payload   SalePayload `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

type SalePayload struct {
	ID         string            `json:"id"`
	BusinessID string            `json:"business_id"`
	Items      []SaleItemPayload `json:"items"`
}

type SaleItemPayload struct {
	VariantID string `json:"variant_id"`
	Quantity  int    `json:"quantity"`
}

func (l *StockListener) Start(ctx context.Context) {
	l.logger.Info("Starting stock sale listener")
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("Stopping stock sale listener")
			return
		default:
			msg, err := l.consumer.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				l.logger.Error("Failed to read sale event", zap.Error(err))
				time.Sleep(1 * time.Second)
				continue
			}
			l.processMessage(ctx, msg.Value)
		}
	}
}

func (l *StockListener) processMessage(ctx context.Context, value []byte) {
	var event SaleRecordedEvent
	if err := json.Unmarshal(value, &event); err != nil {
		l.logger.Error("Failed to unmarshal sale event", zap.Error(err))
		return
	}

	if event.EventType != "SaleRecorded" {
		return
	}

	l.logger.Info("Processing SaleRecorded event", zap.String("sale_id", event.Payload.ID))

	for _, item := range event.Payload.Items {
		v, err := l.uc.GetVariant(ctx, event.Payload.BusinessID, item.VariantID)
		if err != nil {
			l.logger.Error("Failed to load variant for sale deduction",
				zap.String("sale_id", event.Payload.ID),
				zap.String("variant_id", item.VariantID),
				zap.Error(err),
			)
			continue
		}
		if v == nil {
			l.logger.Warn("Sale references unknown variant",
				zap.String("sale_id", event.Payload.ID),
				zap.String("variant_id", item.VariantID),
			)
			continue
		}

		// Oversold quantities clamp at zero; the audit row keeps the
		// clamped value.
		newQuantity := v.Quantity - item.Quantity
		if newQuantity < 0 {
			newQuantity = 0
		}

		_, err = l.uc.ModifyStock(ctx, &dto.ModifyStockInput{
			BusinessID:  event.Payload.BusinessID,
			VariantID:   item.VariantID,
			NewQuantity: newQuantity,
			Reason:      fmt.Sprintf("Sale %s", event.Payload.ID),
		})
		if err != nil {
			l.logger.Error("Failed to deduct stock for sale item",
				zap.String("sale_id", event.Payload.ID),
				zap.String("variant_id", item.VariantID),
				zap.Error(err),
			)
		}
	}
}
