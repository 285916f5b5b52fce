package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kunaalDhar/WIMS-inventory-AT-sub001/internal/config"
	"github.com/kunaalDhar/WIMS-inventory-AT-sub001/internal/model"
	"github.com/kunaalDhar/WIMS-inventory-AT-sub001/internal/storage"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type fakeClock struct{ t time.Time }

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:        "test-secret",
		SessionTTLHours:  7 * 24,
		RememberTTLHours: 30 * 24,
	}
}

// failingStorage reads like an empty store and rejects every write.
type failingStorage struct{}

func (failingStorage) Get(context.Context, string) ([]byte, error) { return nil, storage.ErrNotFound }
func (failingStorage) Set(context.Context, string, []byte) error {
	return errors.New("quota exceeded")
}
func (failingStorage) Delete(context.Context, string) error { return errors.New("quota exceeded") }
func (failingStorage) Ping(context.Context) error           { return nil }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "want %s, got %s", want, got)
}

func prices(kv ...any) model.PriceMap {
	var m model.PriceMap
	for i := 0; i < len(kv); i += 2 {
		m.Set(kv[i].(string), dec(kv[i+1].(string)))
	}
	return m
}
