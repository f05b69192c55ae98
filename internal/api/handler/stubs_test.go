package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/firstapp/accounts/internal/core/domain"
	"github.com/firstapp/accounts/internal/core/ports"
	"github.com/firstapp/accounts/internal/core/service"
)

// memUserRepo is an in-memory ports.UserRepository.
type memUserRepo struct {
	mu     sync.Mutex
	users  []*domain.User
	nextID int
}

func (r *memUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	clone := *user
	clone.ID = strconv.Itoa(r.nextID)
	r.users = append(r.users, &clone)
	out := clone
	return &out, nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (r *memUserRepo) List(_ context.Context, page ports.Page) ([]*domain.User, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	total := int64(len(r.users))
	start := page.Offset()
	if start > len(r.users) {
		start = len(r.users)
	}
	end := start + page.Limit
	if end > len(r.users) {
		end = len(r.users)
	}
	return append([]*domain.User(nil), r.users[start:end]...), total, nil
}

func (r *memUserRepo) TouchLastLogin(_ context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			u.LastLogin = &at
			return nil
		}
	}
	return domain.ErrUserNotFound
}

func (r *memUserRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users)
}

// plainCreds is a reversible CredentialStore for tests.
type plainCreds struct{}

func (plainCreds) Hash(pw string) (string, error) { return "hashed:" + pw, nil }
func (plainCreds) Verify(hash, pw string) bool    { return hash == "hashed:"+pw }

// memFlashStore is an in-memory ports.FlashStore.
type memFlashStore struct {
	mu      sync.Mutex
	flashes map[string][]domain.Flash
	pushErr error
}

func newMemFlashStore() *memFlashStore {
	return &memFlashStore{flashes: make(map[string][]domain.Flash)}
}

func (s *memFlashStore) Push(_ context.Context, sid string, f domain.Flash) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pushErr != nil {
		return s.pushErr
	}
	s.flashes[sid] = append(s.flashes[sid], f)
	return nil
}

func (s *memFlashStore) Pop(_ context.Context, sid string) ([]domain.Flash, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.flashes[sid]
	delete(s.flashes, sid)
	return out, nil
}

// stubRegistration returns a fixed result.
type stubRegistration struct {
	result *ports.RegistrationResult
	got    ports.RegistrationInput
}

func (s *stubRegistration) Register(_ context.Context, in ports.RegistrationInput) *ports.RegistrationResult {
	s.got = in
	return s.result
}

func newTestEcho(t *testing.T) *echo.Echo {
	t.Helper()
	e := echo.New()
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	e.Renderer = r
	e.Validator = NewValidator(service.NewValidate())
	return e
}

func newRegistration(repo ports.UserRepository) ports.RegistrationService {
	log := zerolog.Nop()
	users := service.NewUserManager(repo, plainCreds{}, log)
	return service.NewRegistrationService(users, repo, service.NewFormValidator(nil), log)
}

func postForm(target string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return req
}

// cookieValue returns the value of the named cookie set on the response.
func cookieValue(rec *httptest.ResponseRecorder, name string) string {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}
