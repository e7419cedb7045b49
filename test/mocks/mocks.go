package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/avatarctic/status-service/internal/core/domain/auth"
	"github.com/avatarctic/status-service/internal/core/domain/status"
	"github.com/avatarctic/status-service/internal/core/domain/user"
	"github.com/avatarctic/status-service/internal/core/ports"
	"github.com/google/uuid"
)

// CacheMock is an in-memory ports.Cache whose liveness can be toggled.
// While not alive every operation returns ports.ErrNotConnected, like the real cache.
type CacheMock struct {
	mu      sync.Mutex
	Alive   bool
	Data    map[string]string
	TTLs    map[string]time.Duration
	Calls   int
	SetErr  error
	GetErr  error
	DelErr  error
	Deleted []string
}

func NewCacheMock() *CacheMock {
	return &CacheMock{Alive: true, Data: map[string]string{}, TTLs: map[string]time.Duration{}}
}

func (m *CacheMock) IsAlive() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Alive
}

func (m *CacheMock) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.Alive {
		return "", false, ports.ErrNotConnected
	}
	m.Calls++
	if m.GetErr != nil {
		return "", false, m.GetErr
	}
	v, ok := m.Data[key]
	return v, ok, nil
}

func (m *CacheMock) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.Alive {
		return ports.ErrNotConnected
	}
	m.Calls++
	if m.SetErr != nil {
		return m.SetErr
	}
	m.Data[key] = value
	m.TTLs[key] = ttl
	return nil
}

func (m *CacheMock) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.Alive {
		return ports.ErrNotConnected
	}
	m.Calls++
	if m.DelErr != nil {
		return m.DelErr
	}
	delete(m.Data, key)
	m.Deleted = append(m.Deleted, key)
	return nil
}

// CallCount returns how many operations reached the store.
func (m *CacheMock) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Calls
}

// DatabaseServiceMock mocks ports.DatabaseService
type DatabaseServiceMock struct {
	IsAliveFn func(ctx context.Context) bool
}

func (m *DatabaseServiceMock) IsAlive(ctx context.Context) bool {
	if m.IsAliveFn != nil {
		return m.IsAliveFn(ctx)
	}
	return true
}

// StatsRepositoryMock mocks ports.StatsRepository
type StatsRepositoryMock struct {
	CountUsersFn func(ctx context.Context) (int, error)
	CountFilesFn func(ctx context.Context) (int, error)
}

func (m *StatsRepositoryMock) CountUsers(ctx context.Context) (int, error) {
	if m.CountUsersFn != nil {
		return m.CountUsersFn(ctx)
	}
	return 0, nil
}
func (m *StatsRepositoryMock) CountFiles(ctx context.Context) (int, error) {
	if m.CountFilesFn != nil {
		return m.CountFilesFn(ctx)
	}
	return 0, nil
}

// UserRepository mock
type UserRepositoryMock struct {
	CreateFn     func(ctx context.Context, u *user.User) error
	GetByEmailFn func(ctx context.Context, email string) (*user.User, error)
	GetByIDFn    func(ctx context.Context, id uuid.UUID) (*user.User, error)
}

func (m *UserRepositoryMock) Create(ctx context.Context, u *user.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, u)
	}
	return nil
}
func (m *UserRepositoryMock) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}
	return nil, user.ErrNotFound
}
func (m *UserRepositoryMock) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, user.ErrNotFound
}

// UserServiceMock mocks ports.UserService
type UserServiceMock struct {
	CreateUserFn func(ctx context.Context, req *user.CreateUserRequest) (*user.User, error)
	GetUserFn    func(ctx context.Context, id uuid.UUID) (*user.User, error)
}

func (m *UserServiceMock) CreateUser(ctx context.Context, req *user.CreateUserRequest) (*user.User, error) {
	if m.CreateUserFn != nil {
		return m.CreateUserFn(ctx, req)
	}
	return &user.User{ID: uuid.New(), Email: req.Email}, nil
}
func (m *UserServiceMock) GetUser(ctx context.Context, id uuid.UUID) (*user.User, error) {
	if m.GetUserFn != nil {
		return m.GetUserFn(ctx, id)
	}
	return nil, user.ErrNotFound
}

// AuthServiceMock mocks ports.AuthService
type AuthServiceMock struct {
	ConnectFn     func(ctx context.Context, creds auth.Credentials) (*auth.Session, error)
	DisconnectFn  func(ctx context.Context, token string) error
	CurrentUserFn func(ctx context.Context, token string) (*user.User, error)
}

func (m *AuthServiceMock) Connect(ctx context.Context, creds auth.Credentials) (*auth.Session, error) {
	if m.ConnectFn != nil {
		return m.ConnectFn(ctx, creds)
	}
	return nil, auth.ErrInvalidCredentials
}
func (m *AuthServiceMock) Disconnect(ctx context.Context, token string) error {
	if m.DisconnectFn != nil {
		return m.DisconnectFn(ctx, token)
	}
	return nil
}
func (m *AuthServiceMock) CurrentUser(ctx context.Context, token string) (*user.User, error) {
	if m.CurrentUserFn != nil {
		return m.CurrentUserFn(ctx, token)
	}
	return nil, auth.ErrSessionNotFound
}

// StatusServiceMock mocks ports.StatusService
type StatusServiceMock struct {
	GetStatusFn func(ctx context.Context) (status.AppStatus, error)
	GetStatsFn  func(ctx context.Context) (status.AppStats, error)
	GetReportFn func(ctx context.Context) (status.Report, error)
}

func (m *StatusServiceMock) GetStatus(ctx context.Context) (status.AppStatus, error) {
	if m.GetStatusFn != nil {
		return m.GetStatusFn(ctx)
	}
	return status.AppStatus{}, nil
}
func (m *StatusServiceMock) GetStats(ctx context.Context) (status.AppStats, error) {
	if m.GetStatsFn != nil {
		return m.GetStatsFn(ctx)
	}
	return status.AppStats{}, nil
}
func (m *StatusServiceMock) GetReport(ctx context.Context) (status.Report, error) {
	if m.GetReportFn != nil {
		return m.GetReportFn(ctx)
	}
	return status.Report{}, nil
}

// HealthCheckerMock mocks ports.HealthChecker
type HealthCheckerMock struct {
	NameValue string
	CheckFn   func(ctx context.Context) error
}

func (m *HealthCheckerMock) Name() string { return m.NameValue }
func (m *HealthCheckerMock) Check(ctx context.Context) error {
	if m.CheckFn != nil {
		return m.CheckFn(ctx)
	}
	return nil
}
