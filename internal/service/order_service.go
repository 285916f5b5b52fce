package service

import (
	"context"
	"sync"
	"time"

	"github.com/kunaalDhar/WIMS-inventory-AT-sub001/internal/dto"
	"github.com/kunaalDhar/WIMS-inventory-AT-sub001/internal/metrics"
	"github.com/kunaalDhar/WIMS-inventory-AT-sub001/internal/model"
	"github.com/kunaalDhar/WIMS-inventory-AT-sub001/internal/pricing"
	"github.com/kunaalDhar/WIMS-inventory-AT-sub001/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// OrderDocumentDispatcher queues the purchase-order document for an approved
// order. Implemented by the worker package.
type OrderDocumentDispatcher interface {
	EnqueueOrderDocument(ctx context.Context, orderID string) error
}

// OrderService is the order pricing engine. Mutations on an unknown order id
// return nil with no error and leave the collection unchanged. No mutation is
// idempotent: repeating one overwrites and re-stamps.
type OrderService interface {
	Load(ctx context.Context) error
	Create(ctx context.Context, req dto.CreateOrderRequest, salesmanID string) (*model.Order, error)
	SetAdminPricing(ctx context.Context, id string, req dto.SetPricingRequest) (*model.Order, error)
	// ApplyAdjustment trusts deltas as given; clamping belongs to the caller.
	// When adjustment is not allowed the order is returned unchanged.
	ApplyAdjustment(ctx context.Context, id string, deltas model.PriceMap) (*model.Order, error)
	Approve(ctx context.Context, id string) (*model.Order, error)
	Reject(ctx context.Context, id, reason string) (*model.Order, error)
	// List returns every order when salesmanID is empty, else only that salesman's.
	List(ctx context.Context, filter dto.OrderFilter, salesmanID string) ([]model.Order, error)
	Get(ctx context.Context, id string) (*model.Order, error)
}

type orderService struct {
	mu         sync.Mutex
	orders     []model.Order
	repo       repository.OrderRepository
	dispatcher OrderDocumentDispatcher // nil disables document jobs

	now func() time.Time
}

func NewOrderService(repo repository.OrderRepository, dispatcher OrderDocumentDispatcher) OrderService {
	return &orderService{repo: repo, dispatcher: dispatcher, now: time.Now}
}

func (s *orderService) Load(ctx context.Context) error {
	orders, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.orders = orders
	s.mu.Unlock()
	return nil
}

func (s *orderService) Create(ctx context.Context, req dto.CreateOrderRequest, salesmanID string) (*model.Order, error) {
	now := s.now()
	order := model.Order{
		ID:            uuid.NewString(),
		SalesmanID:    salesmanID,
		VendorID:      req.VendorID,
		Items:         make([]model.OrderItem, 0, len(req.Items)),
		Status:        model.OrderPending,
		GSTEnabled:    req.GSTEnabled,
		SalesmanNotes: req.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for _, it := range req.Items {
		order.Items = append(order.Items, model.OrderItem{
			ID:                it.ID,
			Name:              it.Name,
			Category:          it.Category,
			Volume:            it.Volume,
			RequestedQuantity: it.RequestedQuantity,
		})
	}

	if req.ProposedPrices.Len() > 0 {
		p := pricing.Compute(order.Items, req.ProposedPrices, pricing.AdminTaxRateFor(order.GSTEnabled))
		order.SalesmanPricing = &p
		for i := range order.Items {
			it := &order.Items[i]
			unit := p.ItemPrices.Get(it.ID)
			line := unit.Mul(decimal.NewFromInt(int64(it.RequestedQuantity)))
			it.UnitPrice, it.LineTotal = &unit, &line
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = append(s.orders, order)
	s.save(ctx)
	metrics.OrderTransitions.WithLabelValues(string(order.Status)).Inc()

	out := order.Clone()
	return &out, nil
}

func (s *orderService) SetAdminPricing(ctx context.Context, id string, req dto.SetPricingRequest) (*model.Order, error) {
	return s.mutate(ctx, id, func(o *model.Order, now time.Time) bool {
		p := pricing.Admin(o.Items, req.ItemPrices, o.GSTEnabled)
		for i := range o.Items {
			price := p.ItemPrices.Get(o.Items[i].ID)
			final := price
			o.Items[i].AdminPrice, o.Items[i].FinalPrice = &price, &final
		}
		o.AdminPricing = &p
		if req.Notes != "" {
			o.AdminNotes = req.Notes
		}
		o.AllowPriceAdjustment = req.AllowAdjustment
		if req.AllowAdjustment {
			r := pricing.DefaultAdjustmentRange()
			o.PriceAdjustmentRange = &r
		} else {
			o.PriceAdjustmentRange = nil
		}
		o.Status = model.OrderAdminPriced
		o.AdminPricedAt = &now
		return true
	})
}

func (s *orderService) ApplyAdjustment(ctx context.Context, id string, deltas model.PriceMap) (*model.Order, error) {
	return s.mutate(ctx, id, func(o *model.Order, now time.Time) bool {
		if !o.AllowPriceAdjustment || o.AdminPricing == nil {
			log.Debug().Str("order_id", o.ID).Msg("adjustment ignored: not allowed for this order")
			return false
		}
		p := pricing.Adjusted(o.Items, o.AdminPricing.ItemPrices, deltas)
		for i := range o.Items {
			final := p.ItemPrices.Get(o.Items[i].ID)
			o.Items[i].FinalPrice = &final
		}
		o.FinalPricing = &p
		o.Status = model.OrderSalesmanAdjusted
		o.SalesmanAdjustedAt = &now
		return true
	})
}

func (s *orderService) Approve(ctx context.Context, id string) (*model.Order, error) {
	order, err := s.mutate(ctx, id, func(o *model.Order, now time.Time) bool {
		o.Status = model.OrderApproved
		o.ApprovedAt = &now
		return true
	})
	if err != nil || order == nil {
		return order, err
	}

	if s.dispatcher != nil {
		if err := s.dispatcher.EnqueueOrderDocument(ctx, order.ID); err != nil {
			log.Error().Err(err).Str("order_id", order.ID).Msg("failed to enqueue order document")
		}
	}
	return order, nil
}

func (s *orderService) Reject(ctx context.Context, id, reason string) (*model.Order, error) {
	return s.mutate(ctx, id, func(o *model.Order, _ time.Time) bool {
		o.Status = model.OrderRejected
		o.AdminNotes = reason
		return true
	})
}

func (s *orderService) List(_ context.Context, filter dto.OrderFilter, salesmanID string) ([]model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Order, 0, len(s.orders))
	for _, o := range s.orders {
		if salesmanID != "" && o.SalesmanID != salesmanID {
			continue
		}
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		out = append(out, o.Clone())
	}
	return out, nil
}

func (s *orderService) Get(_ context.Context, id string) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.orders {
		if o.ID == id {
			out := o.Clone()
			return &out, nil
		}
	}
	return nil, nil
}

// mutate runs fn on the order under the lock. fn returns false to leave the
// order untouched (nothing is saved or stamped).
func (s *orderService) mutate(ctx context.Context, id string, fn func(o *model.Order, now time.Time) bool) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.orders {
		if s.orders[i].ID != id {
			continue
		}
		// fn edits a copy; a declined mutation leaves no partial changes.
		o := s.orders[i].Clone()
		now := s.now()
		if fn(&o, now) {
			o.UpdatedAt = now
			s.orders[i] = o
			s.save(ctx)
			metrics.OrderTransitions.WithLabelValues(string(o.Status)).Inc()
			log.Info().Str("order_id", o.ID).Str("status", string(o.Status)).Msg("order updated")
		}
		out := s.orders[i].Clone()
		return &out, nil
	}
	return nil, nil
}

func (s *orderService) save(ctx context.Context) {
	logStorageError(s.repo.Save(ctx, s.orders), "orders")
}
