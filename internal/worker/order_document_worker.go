package worker

// order_document_worker.go
// Processes order_document jobs from QueueDocuments: renders the purchase-order
// PDF for an approved order and queues an email to the vendor.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kunaalDhar/WIMS-inventory-AT-sub001/internal/infra"
	"github.com/kunaalDhar/WIMS-inventory-AT-sub001/internal/model"

	"github.com/rs/zerolog/log"
)

// OrderDocumentPayload is the job envelope sent to QueueDocuments.
type OrderDocumentPayload struct {
	OrderID string `json:"orderId"`
}

type OrderLookup interface {
	Get(ctx context.Context, id string) (*model.Order, error)
}

type VendorLookup interface {
	Get(ctx context.Context, id string) (*model.Vendor, error)
}

type EmailEnqueuer interface {
	EnqueueEmail(ctx context.Context, payload EmailJobPayload) error
}

type OrderDocumentWorker struct {
	orders      OrderLookup
	vendors     VendorLookup
	mail        EmailEnqueuer // nil skips vendor mail
	storagePath string
}

func NewOrderDocumentWorker(orders OrderLookup, vendors VendorLookup, mail EmailEnqueuer, storagePath string) *OrderDocumentWorker {
	return &OrderDocumentWorker{orders: orders, vendors: vendors, mail: mail, storagePath: storagePath}
}

func (w *OrderDocumentWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload OrderDocumentPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("order_document: invalid payload: %w", err)
	}

	order, err := w.orders.Get(ctx, payload.OrderID)
	if err != nil {
		return err
	}
	if order == nil {
		return fmt.Errorf("order_document: order %s not found", payload.OrderID)
	}
	if order.Status != model.OrderApproved {
		log.Warn().Str("order_id", order.ID).Str("status", string(order.Status)).Msg("order_document: order no longer approved, skipping")
		return nil
	}

	vendor, err := w.vendors.Get(ctx, order.VendorID)
	if err != nil {
		return err
	}

	path, err := infra.GenerateOrderPDF(order, vendor, w.storagePath)
	if err != nil {
		return err
	}
	log.Info().Str("order_id", order.ID).Str("path", path).Msg("order_document: PDF generated")

	if vendor == nil || vendor.Email == "" || w.mail == nil {
		return nil
	}
	total := "unpriced"
	if p := infra.EffectivePricing(order); p != nil {
		total = p.Total.StringFixed(2)
	}
	err = w.mail.EnqueueEmail(ctx, EmailJobPayload{
		ToEmail:    vendor.Email,
		Subject:    "Purchase order " + order.ID,
		Body:       fmt.Sprintf("Dear %s,\n\nPlease find attached purchase order %s (total %s).\n", vendor.Name, order.ID, total),
		AttachPath: path,
	})
	if err != nil {
		return fmt.Errorf("order_document: enqueue vendor email: %w", err)
	}
	return nil
}
