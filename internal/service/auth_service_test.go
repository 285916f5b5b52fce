package service

import (
	"context"
	"testing"
	"time"

	"github.com/kunaalDhar/WIMS-inventory-AT-sub001/internal/dto"
	"github.com/kunaalDhar/WIMS-inventory-AT-sub001/internal/model"
	"github.com/kunaalDhar/WIMS-inventory-AT-sub001/internal/repository"
	"github.com/kunaalDhar/WIMS-inventory-AT-sub001/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestAuthService(t *testing.T, st storage.Storage) (*authService, *fakeClock) {
	t.Helper()
	clock := newFakeClock()
	svc := NewAuthService(repository.NewUserRepository(st), repository.NewSessionRepository(st), testConfig()).(*authService)
	svc.now = clock.Now
	svc.bcryptCost = bcrypt.MinCost
	require.NoError(t, svc.Load(context.Background()))
	return svc, clock
}

func storedUsers(t *testing.T, st storage.Storage) []model.User {
	t.Helper()
	users, err := repository.NewUserRepository(st).Load(context.Background())
	require.NoError(t, err)
	return users
}

func TestRegisterSalesman(t *testing.T) {
	ctx := context.Background()
	st := storage.NewMemoryStorage()
	svc, _ := newTestAuthService(t, st)

	resp, err := svc.Register(ctx, dto.RegisterRequest{Name: "Ravi", Phone: "555", Password: "pw", Role: model.RoleSalesman})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "Ravi", resp.User.Name)
	assert.Empty(t, resp.User.PasswordHash)
	assert.Equal(t, 7*24*3600, resp.ExpiresIn)

	sess, err := svc.CurrentSession(ctx, resp.User.ID)
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, resp.User.ID, sess.User.ID)

	users := storedUsers(t, st)
	require.Len(t, users, 1)
	assert.NotEmpty(t, users[0].PasswordHash)
}

func TestRegisterValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestAuthService(t, storage.NewMemoryStorage())

	cases := map[string]dto.RegisterRequest{
		"empty name":        {Name: "  ", Password: "pw", Role: model.RoleSalesman},
		"malformed email":   {Name: "Ravi", Email: "not-an-email", Password: "pw", Role: model.RoleSalesman},
		"admin needs email": {Name: "Boss", Password: "pw", Role: model.RoleAdmin},
		"unknown role":      {Name: "Ravi", Password: "pw", Role: "owner"},
		"empty password":    {Name: "Ravi", Role: model.RoleSalesman},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Register(ctx, req)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestRegisterDuplicates(t *testing.T) {
	ctx := context.Background()
	st := storage.NewMemoryStorage()
	svc, _ := newTestAuthService(t, st)

	_, err := svc.Register(ctx, dto.RegisterRequest{Name: "Ravi", Password: "pw", Role: model.RoleSalesman})
	require.NoError(t, err)
	_, err = svc.Register(ctx, dto.RegisterRequest{Name: "RAVI", Password: "pw", Role: model.RoleSalesman})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Register(ctx, dto.RegisterRequest{Name: "Boss", Email: "boss@wims.test", Password: "pw", Role: model.RoleAdmin})
	require.NoError(t, err)
	_, err = svc.Register(ctx, dto.RegisterRequest{Name: "Other", Email: "Boss@wims.test", Password: "superadmin", Role: model.RoleAdmin})
	assert.ErrorIs(t, err, ErrValidation)

	// same name as a salesman is fine for an admin
	_, err = svc.Register(ctx, dto.RegisterRequest{Name: "Ravi", Email: "ravi@wims.test", Password: "admin1", Role: model.RoleAdmin})
	require.NoError(t, err)

	assert.Len(t, storedUsers(t, st), 3)
}

func TestRegisterSecondAdminNeedsAdminPassword(t *testing.T) {
	ctx := context.Background()
	st := storage.NewMemoryStorage()
	svc, _ := newTestAuthService(t, st)

	_, err := svc.Register(ctx, dto.RegisterRequest{Name: "First", Email: "first@wims.test", Password: "anything", Role: model.RoleAdmin})
	require.NoError(t, err)

	_, err = svc.Register(ctx, dto.RegisterRequest{Name: "Second", Email: "second@wims.test", Password: "secret", Role: model.RoleAdmin})
	assert.ErrorIs(t, err, ErrValidation)
	assert.Len(t, storedUsers(t, st), 1)
	assert.Len(t, svc.users, 1)

	_, err = svc.Register(ctx, dto.RegisterRequest{Name: "Second", Email: "second@wims.test", Password: "my-admin-pw", Role: model.RoleAdmin})
	require.NoError(t, err)
	assert.Len(t, storedUsers(t, st), 2)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestAuthService(t, storage.NewMemoryStorage())

	_, err := svc.Register(ctx, dto.RegisterRequest{Name: "Boss", Email: "boss@wims.test", Password: "pw", Role: model.RoleAdmin})
	require.NoError(t, err)
	_, err = svc.Register(ctx, dto.RegisterRequest{Name: "Ravi", Password: "sales", Role: model.RoleSalesman})
	require.NoError(t, err)

	resp, ok, err := svc.Login(ctx, dto.LoginRequest{Role: model.RoleAdmin, Email: "boss@wims.test", Password: "pw"})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Boss", resp.User.Name)

	resp, ok, err = svc.Login(ctx, dto.LoginRequest{Role: model.RoleSalesman, Name: "ravi", Password: "sales"})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Ravi", resp.User.Name)

	failures := []dto.LoginRequest{
		{Role: model.RoleAdmin, Email: "boss@wims.test", Password: "wrong"},
		{Role: model.RoleAdmin, Email: "nobody@wims.test", Password: "pw"},
		{Role: model.RoleSalesman, Name: "Boss", Password: "pw"},
	}
	for _, req := range failures {
		resp, ok, err := svc.Login(ctx, req)
		assert.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, resp)
	}
}

func TestSessionExpiry(t *testing.T) {
	ctx := context.Background()
	st := storage.NewMemoryStorage()
	svc, clock := newTestAuthService(t, st)

	reg, err := svc.Register(ctx, dto.RegisterRequest{Name: "Ravi", Password: "pw", Role: model.RoleSalesman})
	require.NoError(t, err)

	clock.Advance(7*24*time.Hour - time.Minute)
	sess, err := svc.CurrentSession(ctx, reg.User.ID)
	require.NoError(t, err)
	assert.NotNil(t, sess)

	clock.Advance(time.Minute)
	sess, err = svc.CurrentSession(ctx, reg.User.ID)
	require.NoError(t, err)
	assert.Nil(t, sess)

	// destroyed, not just hidden
	_, err = st.Get(ctx, storage.KeySession)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestRememberedSessionLastsThirtyDays(t *testing.T) {
	ctx := context.Background()
	svc, clock := newTestAuthService(t, storage.NewMemoryStorage())

	_, err := svc.Register(ctx, dto.RegisterRequest{Name: "Ravi", Password: "pw", Role: model.RoleSalesman})
	require.NoError(t, err)
	resp, ok, err := svc.Login(ctx, dto.LoginRequest{Role: model.RoleSalesman, Name: "Ravi", Password: "pw", Remember: true})
	require.NoError(t, err)
	require.True(t, ok)
	assert.WithinDuration(t, clock.Now().Add(30*24*time.Hour), resp.ExpiresAt, 0)

	clock.Advance(8 * 24 * time.Hour)
	sess, err := svc.CurrentSession(ctx, resp.User.ID)
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.True(t, sess.Remember)

	clock.Advance(22 * 24 * time.Hour)
	sess, err = svc.CurrentSession(ctx, resp.User.ID)
	require.NoError(t, err)
	assert.Nil(t, sess)
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	st := storage.NewMemoryStorage()
	svc, clock := newTestAuthService(t, st)

	resp, err := svc.Register(ctx, dto.RegisterRequest{Name: "Ravi", Password: "pw", Role: model.RoleSalesman})
	require.NoError(t, err)
	started := clock.Now().UnixMilli()
	assert.False(t, svc.SessionRevoked(resp.User.ID, started))

	require.NoError(t, svc.Logout(ctx, resp.User.ID))

	sess, err := svc.CurrentSession(ctx, resp.User.ID)
	require.NoError(t, err)
	assert.Nil(t, sess)
	assert.True(t, svc.SessionRevoked(resp.User.ID, started))

	// cutoffs survive a restart
	reloaded, _ := newTestAuthService(t, st)
	assert.True(t, reloaded.SessionRevoked(resp.User.ID, started))

	// logging in again in the same instant still yields a live session
	again, ok, err := svc.Login(ctx, dto.LoginRequest{Role: model.RoleSalesman, Name: "Ravi", Password: "pw"})
	require.NoError(t, err)
	require.True(t, ok)
	sess, err = svc.CurrentSession(ctx, again.User.ID)
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.False(t, svc.SessionRevoked(again.User.ID, sess.StartedAt.UnixMilli()))
}

func TestSessionBelongsToItsUser(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestAuthService(t, storage.NewMemoryStorage())

	ravi, err := svc.Register(ctx, dto.RegisterRequest{Name: "Ravi", Password: "pw", Role: model.RoleSalesman})
	require.NoError(t, err)
	meera, err := svc.Register(ctx, dto.RegisterRequest{Name: "Meera", Password: "pw", Role: model.RoleSalesman})
	require.NoError(t, err)

	sess, err := svc.CurrentSession(ctx, ravi.User.ID)
	require.NoError(t, err)
	assert.Nil(t, sess, "the pointer now belongs to Meera")

	require.NoError(t, svc.Logout(ctx, ravi.User.ID))
	sess, err = svc.CurrentSession(ctx, meera.User.ID)
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.False(t, svc.SessionRevoked(meera.User.ID, sess.StartedAt.UnixMilli()))
}

func TestUsersSurviveReload(t *testing.T) {
	ctx := context.Background()
	st := storage.NewMemoryStorage()
	svc, _ := newTestAuthService(t, st)
	_, err := svc.Register(ctx, dto.RegisterRequest{Name: "Ravi", Password: "pw", Role: model.RoleSalesman})
	require.NoError(t, err)

	reloaded, _ := newTestAuthService(t, st)
	_, ok, err := reloaded.Login(ctx, dto.LoginRequest{Role: model.RoleSalesman, Name: "Ravi", Password: "pw"})
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRegisterSurvivesStorageFailure(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestAuthService(t, failingStorage{})

	resp, err := svc.Register(ctx, dto.RegisterRequest{Name: "Ravi", Password: "pw", Role: model.RoleSalesman})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Len(t, svc.users, 1)
}
