// Package session tracks the signed-in user and binds the periodic tasks to
// the lifetime of the session.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/jonboulle/clockwork"

	"github.com/mr1hm/go-coastal-alerts/internal/models"
	"github.com/mr1hm/go-coastal-alerts/internal/repository"
)

// StoreKey is the key the user record is persisted under.
const StoreKey = "coastalUser"

var (
	ErrInvalidEmail = errors.New("invalid email")
	ErrInvalidRole  = errors.New("invalid role")
)

// Runner is started when a session begins and stopped when it ends.
type Runner interface {
	Start(ctx context.Context)
	Stop()
}

type Manager struct {
	store  repository.SessionStore
	runner Runner
	view   *View
	clock  clockwork.Clock

	// runCtx outlives the requests that log users in.
	runCtx context.Context

	// lifecycle serialises sign-in and sign-out so the stored record, the
	// user and the runner always change together.
	lifecycle sync.Mutex

	mu   sync.RWMutex
	user *models.User
}

func NewManager(runCtx context.Context, store repository.SessionStore, runner Runner, view *View, clock clockwork.Clock) *Manager {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if view == nil {
		view = NewView()
	}
	return &Manager{
		store:  store,
		runner: runner,
		view:   view,
		clock:  clock,
		runCtx: runCtx,
	}
}

func (m *Manager) View() *View {
	return m.view
}

// Login signs in with just an email. The display name is the part before
// "@" and any address containing "admin" gets the admin role.
func (m *Manager) Login(ctx context.Context, email string) (models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return models.User{}, ErrInvalidEmail
	}
	name, _, _ := strings.Cut(email, "@")

	role := models.RolePublic
	if strings.Contains(email, "admin") {
		role = models.RoleAdmin
	}

	now := m.clock.Now()
	u := models.User{
		ID:        fmt.Sprintf("user_%d", now.UnixNano()),
		Email:     email,
		Name:      name,
		Role:      role,
		LoginTime: now,
	}
	return u, m.establish(ctx, u)
}

func (m *Manager) Signup(ctx context.Context, email, name string, role models.Role) (models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return models.User{}, ErrInvalidEmail
	}
	if role != models.RolePublic && role != models.RoleAdmin {
		return models.User{}, fmt.Errorf("%w: %q", ErrInvalidRole, role)
	}

	now := m.clock.Now()
	u := models.User{
		ID:        fmt.Sprintf("user_%d", now.UnixNano()),
		Email:     email,
		Name:      name,
		Role:      role,
		LoginTime: now,
	}
	return u, m.establish(ctx, u)
}

// GoogleLogin signs in a fixed federated user.
func (m *Manager) GoogleLogin(ctx context.Context) (models.User, error) {
	now := m.clock.Now()
	u := models.User{
		ID:        fmt.Sprintf("google_user_%d", now.UnixNano()),
		Email:     "user@gmail.com",
		Name:      "Google User",
		Role:      models.RolePublic,
		LoginTime: now,
	}
	return u, m.establish(ctx, u)
}

func (m *Manager) establish(ctx context.Context, u models.User) error {
	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("error encoding user: %w", err)
	}

	m.lifecycle.Lock()
	defer m.lifecycle.Unlock()

	if err := m.store.Put(ctx, StoreKey, string(data)); err != nil {
		return fmt.Errorf("error saving session: %w", err)
	}

	m.begin(u)
	slog.Info("user signed in", "id", u.ID, "role", u.Role)
	return nil
}

// begin must be called with lifecycle held.
func (m *Manager) begin(u models.User) {
	m.mu.Lock()
	m.user = &u
	m.mu.Unlock()

	m.view.reset(SectionOverview)
	if m.runner != nil {
		m.runner.Start(m.runCtx)
	}
}

// Logout ends the session: the stored record is removed and the periodic
// tasks stop. If the record cannot be removed the session stays up.
// Logging out without a session is a no-op.
func (m *Manager) Logout(ctx context.Context) error {
	m.lifecycle.Lock()
	defer m.lifecycle.Unlock()

	if err := m.store.Delete(ctx, StoreKey); err != nil {
		return fmt.Errorf("error removing session: %w", err)
	}

	m.mu.Lock()
	u := m.user
	m.user = nil
	m.mu.Unlock()

	if m.runner != nil {
		m.runner.Stop()
	}
	m.view.reset("")

	if u != nil {
		slog.Info("user signed out", "id", u.ID)
	}
	return nil
}

func (m *Manager) Current() (models.User, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.user == nil {
		return models.User{}, false
	}
	return *m.user, true
}

// Restore resumes a persisted session. A missing or unreadable record
// leaves the manager signed out.
func (m *Manager) Restore(ctx context.Context) bool {
	m.lifecycle.Lock()
	defer m.lifecycle.Unlock()

	value, ok, err := m.store.Get(ctx, StoreKey)
	if err != nil {
		slog.Error("error loading saved session", "error", err)
		return false
	}
	if !ok {
		return false
	}

	var u models.User
	if err := json.Unmarshal([]byte(value), &u); err != nil {
		slog.Error("error parsing saved user", "error", err)
		return false
	}
	if u.ID == "" {
		slog.Error("saved user has no id")
		return false
	}

	m.begin(u)
	slog.Info("session restored", "id", u.ID, "role", u.Role)
	return true
}
