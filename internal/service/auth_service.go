package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/kunaalDhar/WIMS-inventory-AT-sub001/internal/config"
	"github.com/kunaalDhar/WIMS-inventory-AT-sub001/internal/dto"
	"github.com/kunaalDhar/WIMS-inventory-AT-sub001/internal/model"
	"github.com/kunaalDhar/WIMS-inventory-AT-sub001/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// AuthService is the user store: registration, credential checks and the
// current-session pointer.
type AuthService interface {
	Load(ctx context.Context) error
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.LoginResponse, error)
	// Login reports false for unknown accounts and wrong passwords alike.
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, bool, error)
	// CurrentSession returns the session pointer when it belongs to userID.
	// It returns nil when there is no session, it has expired or another user
	// holds it. Expired sessions are destroyed.
	CurrentSession(ctx context.Context, userID string) (*dto.SessionResponse, error)
	// Logout revokes every token issued to userID so far and clears the
	// session pointer when userID holds it.
	Logout(ctx context.Context, userID string) error
	// SessionRevoked reports whether a token for the session userID started at
	// sessionStart (unix ms) was closed by a later logout.
	SessionRevoked(userID string, sessionStart int64) bool
}

type authService struct {
	mu       sync.Mutex
	users    []model.User
	repo     repository.UserRepository
	sessions repository.SessionRepository
	cfg      *config.Config
	// logouts holds the unix ms time of each user's last logout.
	logouts map[string]int64

	now        func() time.Time
	bcryptCost int
}

func NewAuthService(repo repository.UserRepository, sessions repository.SessionRepository, cfg *config.Config) AuthService {
	return &authService{
		repo:       repo,
		sessions:   sessions,
		cfg:        cfg,
		now:        time.Now,
		bcryptCost: 12,
	}
}

func (s *authService) Load(ctx context.Context) error {
	users, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}
	logouts, err := s.sessions.Logouts(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.users = users
	s.logouts = logouts
	s.mu.Unlock()
	return nil
}

func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.LoginResponse, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)

	if name == "" {
		return nil, validationError("name is required")
	}
	if !req.Role.Valid() {
		return nil, validationError("unknown role %q", req.Role)
	}
	if req.Role == model.RoleAdmin && email == "" {
		return nil, validationError("email is required for admin accounts")
	}
	if email != "" && !validEmail(email) {
		return nil, validationError("invalid email address")
	}
	if req.Password == "" {
		return nil, validationError("password is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	adminExists := false
	for _, u := range s.users {
		if u.Role == model.RoleAdmin {
			adminExists = true
		}
		if u.Role != req.Role {
			continue
		}
		if req.Role == model.RoleAdmin && strings.EqualFold(u.Email, email) {
			return nil, validationError("an admin account with this email already exists")
		}
		if req.Role == model.RoleSalesman && strings.EqualFold(u.Name, name) {
			return nil, validationError("a salesman named %q already exists", name)
		}
	}
	if req.Role == model.RoleAdmin && adminExists && !strings.Contains(req.Password, "admin") {
		return nil, validationError("admin registration not authorized")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, err
	}
	user := model.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		Phone:        strings.TrimSpace(req.Phone),
		Role:         req.Role,
		PasswordHash: string(hash),
		CreatedAt:    s.now(),
	}
	resp, err := s.openSession(ctx, user, req.Remember)
	if err != nil {
		return nil, err
	}

	s.users = append(s.users, user)
	logStorageError(s.repo.Save(ctx, s.users), "users")
	log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("user registered")
	return resp, nil
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var found *model.User
	for i := range s.users {
		u := &s.users[i]
		if u.Role != req.Role {
			continue
		}
		if req.Role == model.RoleAdmin && strings.EqualFold(u.Email, strings.TrimSpace(req.Email)) ||
			req.Role == model.RoleSalesman && strings.EqualFold(u.Name, strings.TrimSpace(req.Name)) {
			found = u
			break
		}
	}
	if found == nil {
		return nil, false, nil
	}
	if err := bcrypt.CompareHashAndPassword([]byte(found.PasswordHash), []byte(req.Password)); err != nil {
		return nil, false, nil
	}

	resp, err := s.openSession(ctx, *found, req.Remember)
	if err != nil {
		return nil, false, err
	}
	return resp, true, nil
}

func (s *authService) CurrentSession(ctx context.Context, userID string) (*dto.SessionResponse, error) {
	sess, err := s.sessions.Get(ctx)
	if err != nil {
		log.Error().Err(err).Msg("session read failed")
		return nil, nil
	}
	if sess == nil || sess.User.ID != userID {
		return nil, nil
	}
	expires := sess.ExpiresAt(s.cfg.SessionTTL(), s.cfg.RememberTTL())
	if !s.now().Before(expires) {
		logStorageError(s.sessions.Delete(ctx), "session")
		return nil, nil
	}
	return &dto.SessionResponse{
		User:      sess.User,
		StartedAt: sess.StartedAt(),
		ExpiresAt: expires,
		Remember:  sess.Remember,
	}, nil
}

func (s *authService) Logout(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.logouts == nil {
		s.logouts = map[string]int64{}
	}
	s.logouts[userID] = s.now().UnixMilli()
	logStorageError(s.sessions.SaveLogouts(ctx, s.logouts), "logouts")

	sess, err := s.sessions.Get(ctx)
	if err != nil {
		log.Error().Err(err).Msg("session read failed")
		return nil
	}
	if sess != nil && sess.User.ID == userID {
		logStorageError(s.sessions.Delete(ctx), "session")
	}
	log.Info().Str("user_id", userID).Msg("user logged out")
	return nil
}

func (s *authService) SessionRevoked(userID string, sessionStart int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff, ok := s.logouts[userID]
	return ok && sessionStart <= cutoff
}

// openSession stores the session pointer and issues a token valid for the same
// window. Callers hold s.mu.
func (s *authService) openSession(ctx context.Context, user model.User, remember bool) (*dto.LoginResponse, error) {
	now := s.now()
	started := now.UnixMilli()
	// a login in the same millisecond as a logout must still get a live token
	if cutoff, ok := s.logouts[user.ID]; ok && started <= cutoff {
		started = cutoff + 1
	}
	sess := model.Session{User: user.Public(), Timestamp: started, Remember: remember}
	expires := sess.ExpiresAt(s.cfg.SessionTTL(), s.cfg.RememberTTL())

	token, err := s.generateToken(user, now, expires, started)
	if err != nil {
		return nil, err
	}
	logStorageError(s.sessions.Put(ctx, &sess), "session")

	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int(expires.Sub(now).Seconds()),
		ExpiresAt:   expires,
		User:        user.Public(),
	}, nil
}

func (s *authService) generateToken(user model.User, issued, expires time.Time, sessionStart int64) (string, error) {
	claims := jwt.MapClaims{
		"user_id":       user.ID,
		"name":          user.Name,
		"role":          string(user.Role),
		"session_start": sessionStart,
		"exp":           expires.Unix(),
		"iat":           issued.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}
