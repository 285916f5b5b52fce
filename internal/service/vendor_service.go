package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/kunaalDhar/WIMS-inventory-AT-sub001/internal/dto"
	"github.com/kunaalDhar/WIMS-inventory-AT-sub001/internal/model"
	"github.com/kunaalDhar/WIMS-inventory-AT-sub001/internal/repository"

	"github.com/google/uuid"
)

// VendorService manages vendor records. Vendors are immutable once created.
type VendorService interface {
	Load(ctx context.Context) error
	Create(ctx context.Context, req dto.CreateVendorRequest, createdBy string) (*model.Vendor, error)
	List(ctx context.Context) ([]model.Vendor, error)
	Get(ctx context.Context, id string) (*model.Vendor, error)
}

type vendorService struct {
	mu      sync.Mutex
	vendors []model.Vendor
	repo    repository.VendorRepository

	now func() time.Time
}

func NewVendorService(repo repository.VendorRepository) VendorService {
	return &vendorService{repo: repo, now: time.Now}
}

func (s *vendorService) Load(ctx context.Context) error {
	vendors, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.vendors = vendors
	s.mu.Unlock()
	return nil
}

func (s *vendorService) Create(ctx context.Context, req dto.CreateVendorRequest, createdBy string) (*model.Vendor, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	if name == "" {
		return nil, validationError("vendor name is required")
	}
	if email != "" && !validEmail(email) {
		return nil, validationError("invalid email address")
	}

	v := model.Vendor{
		ID:            uuid.NewString(),
		Name:          name,
		Email:         email,
		Phone:         strings.TrimSpace(req.Phone),
		Address:       strings.TrimSpace(req.Address),
		ContactPerson: strings.TrimSpace(req.ContactPerson),
		CreatedAt:     s.now(),
		CreatedBy:     createdBy,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.vendors = append(s.vendors, v)
	logStorageError(s.repo.Save(ctx, s.vendors), "vendors")
	return &v, nil
}

func (s *vendorService) List(_ context.Context) ([]model.Vendor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Vendor{}, s.vendors...), nil
}

func (s *vendorService) Get(_ context.Context, id string) (*model.Vendor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range s.vendors {
		if v.ID == id {
			out := v
			return &out, nil
		}
	}
	return nil, nil
}
