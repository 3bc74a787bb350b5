// Package service реализует работу пользователя с заявками: вход, выборку
// заявок по роли и операции жизненного цикла заявки.
package service

import (
	"context"
	"errors"
	"time"

	"repairdesk/internal/app/ds"
	"repairdesk/internal/app/metrics"
	"repairdesk/internal/app/repository"
	"repairdesk/internal/app/role"
)

var (
	ErrInvalidCredentials = errors.New("неверный логин или пароль")
	ErrForbidden          = errors.New("действие недоступно для роли")
	ErrInvalidInput       = errors.New("неверные данные")
)

// Store - операции хранилища, которые нужны сервису
type Store interface {
	FindUserByCredentials(ctx context.Context, login, password string) (*ds.User, error)
	FindUserByLogin(ctx context.Context, login string) (*ds.User, error)
	GetUserByID(ctx context.Context, id int) (*ds.User, error)
	GetUserName(ctx context.Context, id int) (string, error)
	GetClientPhone(ctx context.Context, id int) (string, error)
	ListMasters(ctx context.Context) ([]ds.User, error)

	ListEquipmentTypes(ctx context.Context) ([]ds.EquipmentType, error)
	GetEquipmentTypeName(ctx context.Context, id int) (string, error)

	ListRequests(ctx context.Context, filter repository.RequestFilter) ([]ds.Request, error)
	GetRequestByID(ctx context.Context, id int) (*ds.Request, error)
	CreateRequest(ctx context.Context, request *ds.Request, notes ...string) error
	UpdateRequestStatus(ctx context.Context, id int, status ds.Status, completionDate *string) error
	AssignMaster(ctx context.Context, id, masterID int) error

	ListComments(ctx context.Context, requestID int) ([]ds.Comment, error)
	GetRequestComments(ctx context.Context, requestID int) (string, error)
	AddComment(ctx context.Context, requestID int, message string) error
}

type Service struct {
	store        Store
	passwordMode string
	now          func() time.Time
}

type Option func(*Service)

// WithPasswordMode задаёт способ сравнения паролей (config.PasswordPlain или config.PasswordBcrypt)
func WithPasswordMode(mode string) Option {
	return func(s *Service) { s.passwordMode = mode }
}

// WithClock подменяет источник текущего времени
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func New(store Store, opts ...Option) *Service {
	s := &Service{
		store: store,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Session - вошедший пользователь и политика его роли
type Session struct {
	UserID int
	FIO    string
	Phone  string
	Policy role.Policy
}

func NewSession(user ds.User) Session {
	return Session{
		UserID: user.ID,
		FIO:    user.FIO,
		Phone:  user.PhoneOrEmpty(),
		Policy: role.For(role.Role(user.TypeID)),
	}
}

func (s Session) Role() role.Role {
	return s.Policy.Role
}

// CanSee проверяет, попадает ли заявка в список пользователя
func (s Session) CanSee(request ds.Request) bool {
	switch s.Policy.Scope {
	case role.ScopeAssigned:
		return request.MasterID != nil && *request.MasterID == s.UserID
	case role.ScopeOwned:
		return request.ClientID != nil && *request.ClientID == s.UserID
	default:
		return true
	}
}

func observe(op string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	metrics.LifecycleOps.WithLabelValues(op, outcome).Inc()
}
