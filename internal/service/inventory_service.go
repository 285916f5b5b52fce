package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/kunaalDhar/WIMS-inventory-AT-sub001/internal/dto"
	"github.com/kunaalDhar/WIMS-inventory-AT-sub001/internal/metrics"
	"github.com/kunaalDhar/WIMS-inventory-AT-sub001/internal/model"
	"github.com/kunaalDhar/WIMS-inventory-AT-sub001/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// InventoryService is the inventory ledger: items, stock movements, transfers
// and alerts. Lookups by an unknown id return nil with no error and change
// nothing.
type InventoryService interface {
	Load(ctx context.Context) error

	CreateItem(ctx context.Context, req dto.CreateItemRequest) (*model.InventoryItem, error)
	ListItems(ctx context.Context) ([]model.InventoryItem, error)
	GetItem(ctx context.Context, id string) (*model.InventoryItem, error)
	RemoveItem(ctx context.Context, id string) (bool, error)
	UpdateStock(ctx context.Context, id string, req dto.UpdateStockRequest, performedBy string) (*model.InventoryItem, error)

	CreateTransfer(ctx context.Context, req dto.CreateTransferRequest, requestedBy string) (*model.StockTransfer, error)
	UpdateTransferStatus(ctx context.Context, id string, req dto.UpdateTransferStatusRequest) (*model.StockTransfer, error)
	ListTransfers(ctx context.Context) ([]model.StockTransfer, error)

	ListMovements(ctx context.Context, filter dto.MovementFilter) (*dto.MovementListResponse, error)
	ListAlerts(ctx context.Context, filter dto.AlertFilter) ([]model.InventoryAlert, error)
	AcknowledgeAlert(ctx context.Context, id string) (*model.InventoryAlert, error)
	Summary(ctx context.Context) (*dto.InventorySummary, error)
}

// InventoryRepositories groups the collections the ledger owns.
type InventoryRepositories struct {
	Items     repository.InventoryRepository
	Movements repository.MovementRepository
	Transfers repository.TransferRepository
	Alerts    repository.AlertRepository
}

type inventoryService struct {
	mu        sync.Mutex
	repos     InventoryRepositories
	items     []model.InventoryItem
	movements []model.StockMovement // most recent first
	transfers []model.StockTransfer
	alerts    []model.InventoryAlert // most recent first

	now func() time.Time
}

func NewInventoryService(repos InventoryRepositories) InventoryService {
	return &inventoryService{repos: repos, now: time.Now}
}

func (s *inventoryService) Load(ctx context.Context) error {
	items, err := s.repos.Items.Load(ctx)
	if err != nil {
		return err
	}
	movements, err := s.repos.Movements.Load(ctx)
	if err != nil {
		return err
	}
	transfers, err := s.repos.Transfers.Load(ctx)
	if err != nil {
		return err
	}
	alerts, err := s.repos.Alerts.Load(ctx)
	if err != nil {
		return err
	}

	// Older documents may carry stale derived fields.
	for i := range items {
		items[i].Refresh()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items, s.movements, s.transfers, s.alerts = items, movements, transfers, alerts
	return nil
}

// ── Items ────────────────────────────────────────────────────────────────────

func (s *inventoryService) CreateItem(ctx context.Context, req dto.CreateItemRequest) (*model.InventoryItem, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, validationError("name is required")
	}
	if req.CurrentStock < 0 || req.MinStock < 0 || req.MaxStock < 0 {
		return nil, validationError("stock levels must not be negative")
	}
	if req.UnitCost.IsNegative() {
		return nil, validationError("unit cost must not be negative")
	}

	item := model.InventoryItem{
		ID:             uuid.NewString(),
		Name:           name,
		Category:       req.Category,
		Volume:         req.Volume,
		BottlesPerCase: req.BottlesPerCase,
		CurrentStock:   req.CurrentStock,
		MinStock:       req.MinStock,
		MaxStock:       req.MaxStock,
		UnitCost:       req.UnitCost,
		ReorderPoint:   req.ReorderPoint,
		Location:       req.Location,
		Supplier:       req.Supplier,
		LastUpdated:    s.now(),
	}
	item.Refresh()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = append(s.items, item)
	raised := s.raiseAlert(item, "")
	logStorageError(s.repos.Items.Save(ctx, s.items), "inventory")
	if raised {
		logStorageError(s.repos.Alerts.Save(ctx, s.alerts), "alerts")
	}
	return &item, nil
}

func (s *inventoryService) ListItems(_ context.Context) ([]model.InventoryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.InventoryItem{}, s.items...), nil
}

func (s *inventoryService) GetItem(_ context.Context, id string) (*model.InventoryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.itemIndex(id)
	if idx < 0 {
		return nil, nil
	}
	item := s.items[idx]
	return &item, nil
}

func (s *inventoryService) RemoveItem(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.itemIndex(id)
	if idx < 0 {
		return false, nil
	}
	s.items = append(s.items[:idx], s.items[idx+1:]...)
	logStorageError(s.repos.Items.Save(ctx, s.items), "inventory")
	return true, nil
}

func (s *inventoryService) UpdateStock(ctx context.Context, id string, req dto.UpdateStockRequest, performedBy string) (*model.InventoryItem, error) {
	if req.Quantity < 0 {
		return nil, validationError("quantity must not be negative")
	}
	if req.Type != model.MovementIn && req.Type != model.MovementOut {
		return nil, validationError("stock update type must be in or out")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.itemIndex(id)
	if idx < 0 {
		return nil, nil
	}
	raised := s.applyStock(idx, req.Quantity, req.Type, req.Reason, req.Location, performedBy, nil)
	s.saveStock(ctx, raised)

	item := s.items[idx]
	return &item, nil
}

// applyStock moves stock on s.items[idx], floors at zero, prepends the
// movement and re-derives the item. Caller holds the lock. Reports whether an
// alert was raised.
func (s *inventoryService) applyStock(idx, qty int, typ model.MovementType, reason, location, performedBy string, transferID *string) bool {
	item := &s.items[idx]
	prevStock := item.CurrentStock
	prevStatus := item.Status

	next := prevStock + qty
	if typ == model.MovementOut {
		next = max(prevStock-qty, 0)
	}
	if location == "" {
		location = item.Location
	}

	now := s.now()
	item.CurrentStock = next
	item.LastUpdated = now
	item.Refresh()

	mv := model.StockMovement{
		ID:            uuid.NewString(),
		ItemID:        item.ID,
		Type:          typ,
		Quantity:      qty,
		PreviousStock: prevStock,
		NewStock:      next,
		Reason:        reason,
		Location:      location,
		PerformedBy:   performedBy,
		Timestamp:     now,
		TransferID:    transferID,
	}
	s.movements = append([]model.StockMovement{mv}, s.movements...)
	metrics.StockMovements.WithLabelValues(string(typ)).Inc()

	log.Info().
		Str("item_id", item.ID).
		Str("type", string(typ)).
		Int("previous", prevStock).
		Int("new", next).
		Msg("stock updated")

	return s.raiseAlert(*item, prevStatus)
}

func (s *inventoryService) saveStock(ctx context.Context, alertRaised bool) {
	logStorageError(s.repos.Items.Save(ctx, s.items), "inventory")
	logStorageError(s.repos.Movements.Save(ctx, s.movements), "movements")
	if alertRaised {
		logStorageError(s.repos.Alerts.Save(ctx, s.alerts), "alerts")
	}
}

// raiseAlert prepends an alert when item has just entered a non-healthy status.
func (s *inventoryService) raiseAlert(item model.InventoryItem, prevStatus model.StockStatus) bool {
	if item.Status == prevStatus {
		return false
	}
	typ, sev, ok := model.AlertForStatus(item.Status)
	if !ok {
		return false
	}

	var msg string
	switch typ {
	case model.AlertOutOfStock:
		msg = fmt.Sprintf("%s is out of stock", item.Name)
	case model.AlertLowStock:
		msg = fmt.Sprintf("%s is low on stock (%d left, minimum %d)", item.Name, item.CurrentStock, item.MinStock)
	default:
		msg = fmt.Sprintf("%s is overstocked (%d units, maximum %d)", item.Name, item.CurrentStock, item.MaxStock)
	}

	alert := model.InventoryAlert{
		ID:        uuid.NewString(),
		Type:      typ,
		ItemID:    item.ID,
		Message:   msg,
		Severity:  sev,
		CreatedAt: s.now(),
	}
	s.alerts = append([]model.InventoryAlert{alert}, s.alerts...)
	metrics.AlertsRaised.WithLabelValues(string(typ)).Inc()
	return true
}

func (s *inventoryService) itemIndex(id string) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

// ── Transfers ────────────────────────────────────────────────────────────────

func (s *inventoryService) CreateTransfer(ctx context.Context, req dto.CreateTransferRequest, requestedBy string) (*model.StockTransfer, error) {
	if req.Quantity <= 0 {
		return nil, validationError("quantity must be positive")
	}
	if !req.Type.Valid() {
		return nil, validationError("unknown transfer type %q", req.Type)
	}
	if strings.TrimSpace(req.FromLocation) == "" || strings.TrimSpace(req.ToLocation) == "" {
		return nil, validationError("from and to locations are required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.itemIndex(req.ItemID) < 0 {
		return nil, nil
	}
	t := model.StockTransfer{
		ID:           uuid.NewString(),
		ItemID:       req.ItemID,
		FromLocation: req.FromLocation,
		ToLocation:   req.ToLocation,
		Quantity:     req.Quantity,
		Type:         req.Type,
		Status:       model.TransferPending,
		RequestedBy:  requestedBy,
		Notes:        req.Notes,
		CreatedAt:    s.now(),
	}
	s.transfers = append(s.transfers, t)
	logStorageError(s.repos.Transfers.Save(ctx, s.transfers), "transfers")
	return &t, nil
}

func (s *inventoryService) UpdateTransferStatus(ctx context.Context, id string, req dto.UpdateTransferStatusRequest) (*model.StockTransfer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.transfers {
		if s.transfers[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, nil
	}

	t := &s.transfers[idx]
	if !t.Status.CanTransitionTo(req.Status) {
		return nil, validationError("cannot move transfer from %s to %s", t.Status, req.Status)
	}
	t.Status = req.Status
	if req.Notes != "" {
		t.Notes = req.Notes
	}

	if req.Status == model.TransferCompleted {
		now := s.now()
		operator := model.TransferOperator
		t.CompletedAt = &now
		t.ApprovedBy = &operator

		if t.Type == model.TransferWarehouseToStore {
			if itemIdx := s.itemIndex(t.ItemID); itemIdx >= 0 {
				transferID := t.ID
				reason := fmt.Sprintf("Transfer to %s", t.ToLocation)
				raised := s.applyStock(itemIdx, t.Quantity, model.MovementOut, reason, t.FromLocation, operator, &transferID)
				s.saveStock(ctx, raised)
			} else {
				log.Warn().Str("transfer_id", t.ID).Str("item_id", t.ItemID).Msg("transfer completed for missing item")
			}
		}
	}

	logStorageError(s.repos.Transfers.Save(ctx, s.transfers), "transfers")
	out := *t
	return &out, nil
}

func (s *inventoryService) ListTransfers(_ context.Context) ([]model.StockTransfer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.StockTransfer{}, s.transfers...), nil
}

// ── Movements, alerts, summary ───────────────────────────────────────────────

func (s *inventoryService) ListMovements(_ context.Context, filter dto.MovementFilter) (*dto.MovementListResponse, error) {
	f := repository.MovementFilter{ItemID: filter.ItemID, Type: filter.Type, Page: filter.Page, Limit: filter.Limit}

	s.mu.Lock()
	page, total := f.Apply(s.movements)
	s.mu.Unlock()

	resp := &dto.MovementListResponse{Data: page, Total: total, Page: filter.Page, Limit: filter.Limit}
	if resp.Page < 1 {
		resp.Page = 1
	}
	if resp.Limit < 1 || resp.Limit > 500 {
		resp.Limit = 100
	}
	return resp, nil
}

func (s *inventoryService) ListAlerts(_ context.Context, filter dto.AlertFilter) ([]model.InventoryAlert, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.InventoryAlert, 0, len(s.alerts))
	for _, a := range s.alerts {
		if filter.Unacknowledged && a.Acknowledged {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (s *inventoryService) AcknowledgeAlert(ctx context.Context, id string) (*model.InventoryAlert, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.alerts {
		a := &s.alerts[i]
		if a.ID != id {
			continue
		}
		now := s.now()
		a.Acknowledged = true
		a.AcknowledgedAt = &now
		logStorageError(s.repos.Alerts.Save(ctx, s.alerts), "alerts")
		out := *a
		return &out, nil
	}
	return nil, nil
}

func (s *inventoryService) Summary(_ context.Context) (*dto.InventorySummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sum := &dto.InventorySummary{TotalItems: len(s.items), TotalValue: decimal.Zero}
	for _, item := range s.items {
		sum.TotalUnits += item.CurrentStock
		sum.TotalValue = sum.TotalValue.Add(item.TotalValue)
		switch item.Status {
		case model.StatusInStock:
			sum.InStock++
		case model.StatusLowStock:
			sum.LowStock++
		case model.StatusOutOfStock:
			sum.OutOfStock++
		case model.StatusOverstocked:
			sum.Overstocked++
		}
	}
	for _, t := range s.transfers {
		if t.Status == model.TransferPending {
			sum.PendingTransfers++
		}
	}
	return sum, nil
}
