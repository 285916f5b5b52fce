package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kunaalDhar/WIMS-inventory-AT-sub001/internal/model"
	"github.com/kunaalDhar/WIMS-inventory-AT-sub001/internal/storage"
)

// SessionRepository stores the single current-session pointer and the
// per-user logout cutoffs.
type SessionRepository interface {
	// Get returns nil with no error when no session is stored.
	Get(ctx context.Context) (*model.Session, error)
	Put(ctx context.Context, s *model.Session) error
	Delete(ctx context.Context) error

	// Logouts maps user id to the unix millisecond time of their last logout.
	Logouts(ctx context.Context) (map[string]int64, error)
	SaveLogouts(ctx context.Context, logouts map[string]int64) error
}

type sessionRepo struct{ st storage.Storage }

func NewSessionRepository(st storage.Storage) SessionRepository { return &sessionRepo{st: st} }

func (r *sessionRepo) Get(ctx context.Context) (*model.Session, error) {
	raw, err := r.st.Get(ctx, storage.KeySession)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	var s model.Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &s, nil
}

func (r *sessionRepo) Put(ctx context.Context, s *model.Session) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return r.st.Set(ctx, storage.KeySession, raw)
}

func (r *sessionRepo) Delete(ctx context.Context) error {
	return r.st.Delete(ctx, storage.KeySession)
}

func (r *sessionRepo) Logouts(ctx context.Context) (map[string]int64, error) {
	logouts := map[string]int64{}
	raw, err := r.st.Get(ctx, storage.KeyLogouts)
	if errors.Is(err, storage.ErrNotFound) {
		return logouts, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load logouts: %w", err)
	}
	if err := json.Unmarshal(raw, &logouts); err != nil {
		return nil, fmt.Errorf("decode logouts: %w", err)
	}
	return logouts, nil
}

func (r *sessionRepo) SaveLogouts(ctx context.Context, logouts map[string]int64) error {
	raw, err := json.Marshal(logouts)
	if err != nil {
		return fmt.Errorf("encode logouts: %w", err)
	}
	return r.st.Set(ctx, storage.KeyLogouts, raw)
}
