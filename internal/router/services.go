package router

import (
	"context"
	"fmt"

	"github.com/kunaalDhar/WIMS-inventory-AT-sub001/internal/config"
	"github.com/kunaalDhar/WIMS-inventory-AT-sub001/internal/repository"
	"github.com/kunaalDhar/WIMS-inventory-AT-sub001/internal/service"
	"github.com/kunaalDhar/WIMS-inventory-AT-sub001/internal/storage"
)

// Services are the stateful components of the application, shared between the
// HTTP layer and the background workers.
type Services struct {
	Auth      service.AuthService
	Inventory service.InventoryService
	Orders    service.OrderService
	Vendors   service.VendorService
}

// NewServices builds every service over st and loads its collections.
// dispatcher may be nil, which disables purchase-order document jobs.
func NewServices(ctx context.Context, cfg *config.Config, st storage.Storage, dispatcher service.OrderDocumentDispatcher) (*Services, error) {
	svcs := &Services{
		Auth: service.NewAuthService(
			repository.NewUserRepository(st),
			repository.NewSessionRepository(st),
			cfg,
		),
		Inventory: service.NewInventoryService(service.InventoryRepositories{
			Items:     repository.NewInventoryRepository(st),
			Movements: repository.NewMovementRepository(st),
			Transfers: repository.NewTransferRepository(st),
			Alerts:    repository.NewAlertRepository(st),
		}),
		Orders:  service.NewOrderService(repository.NewOrderRepository(st), dispatcher),
		Vendors: service.NewVendorService(repository.NewVendorRepository(st)),
	}

	loaders := []struct {
		name string
		load func(context.Context) error
	}{
		{"users", svcs.Auth.Load},
		{"inventory", svcs.Inventory.Load},
		{"orders", svcs.Orders.Load},
		{"vendors", svcs.Vendors.Load},
	}
	for _, l := range loaders {
		if err := l.load(ctx); err != nil {
			return nil, fmt.Errorf("load %s: %w", l.name, err)
		}
	}
	return svcs, nil
}
