package service

import (
	"context"
	"errors"
	"strconv"

	"repairdesk/internal/app/ds"
	"repairdesk/internal/app/repository"
	"repairdesk/internal/app/role"

	log "github.com/sirupsen/logrus"
)

const (
	// NotAssigned - пользователь не указан в заявке
	NotAssigned = "Не указан"
	// UnknownUser - пользователь с таким ID не найден
	UnknownUser = "Неизвестно"
)

// Table - заявки в виде, готовом для отображения
type Table struct {
	Title   string        `json:"title"`
	Columns []role.Column `json:"columns"`
	Headers []string      `json:"headers"`
	Rows    []Row         `json:"rows"`
}

type Row struct {
	RequestID int      `json:"request_id"`
	Cells     []string `json:"cells"`
}

// Filter возвращает условие выборки заявок для сессии
func (s Session) Filter() repository.RequestFilter {
	filter := repository.RequestFilter{}
	switch s.Policy.Scope {
	case role.ScopeAssigned:
		id := s.UserID
		filter.MasterID = &id
	case role.ScopeOwned:
		id := s.UserID
		filter.ClientID = &id
	case role.ScopeLimited:
		filter.Limit = s.Policy.Limit
	}
	return filter
}

// ListRequests возвращает заявки, видимые пользователю
func (s *Service) ListRequests(ctx context.Context, session Session) ([]ds.Request, error) {
	return s.store.ListRequests(ctx, session.Filter())
}

// View строит таблицу заявок по колонкам роли
func (s *Service) View(ctx context.Context, session Session) (*Table, error) {
	requests, err := s.ListRequests(ctx, session)
	if err != nil {
		return nil, err
	}

	res := newResolver(s.store)
	table := &Table{
		Title:   session.Policy.Title,
		Columns: session.Policy.Columns,
		Headers: session.Policy.Headers(),
		Rows:    make([]Row, 0, len(requests)),
	}
	for _, request := range requests {
		cells := make([]string, len(session.Policy.Columns))
		for i, column := range session.Policy.Columns {
			cells[i] = res.cell(ctx, session.Policy, column, request)
		}
		table.Rows = append(table.Rows, Row{RequestID: request.ID, Cells: cells})
	}
	return table, nil
}

// resolver переводит ссылки заявки в отображаемые строки. Найденные значения
// запоминаются только на время построения одной таблицы.
type resolver struct {
	store     Store
	userNames map[int]string
	typeNames map[int]string
	phones    map[int]string
}

func newResolver(store Store) *resolver {
	return &resolver{
		store:     store,
		userNames: map[int]string{},
		typeNames: map[int]string{},
		phones:    map[int]string{},
	}
}

func (r *resolver) cell(ctx context.Context, policy role.Policy, column role.Column, request ds.Request) string {
	switch column {
	case role.ColumnID:
		return strconv.Itoa(request.ID)
	case role.ColumnDate:
		return request.StartDate
	case role.ColumnEquipmentType:
		return r.typeName(ctx, request.OrgTechTypeID)
	case role.ColumnModel:
		return request.OrgTechModel
	case role.ColumnProblem:
		return request.ProblemDescription
	case role.ColumnStatus:
		return request.RequestStatusID.String()
	case role.ColumnMaster:
		return r.userName(ctx, request.MasterID)
	case role.ColumnCompletionDate:
		return deref(request.CompletionDate)
	case role.ColumnParts:
		return deref(request.RepairParts)
	case role.ColumnClient:
		return r.userName(ctx, request.ClientID)
	case role.ColumnPhone:
		return r.phone(ctx, request.ClientID)
	case role.ColumnComments:
		comments, err := r.store.GetRequestComments(ctx, request.ID)
		if err != nil {
			return repository.NoComments
		}
		return comments
	case role.ColumnAction:
		return policy.ActionLabel
	default:
		return ""
	}
}

func (r *resolver) userName(ctx context.Context, id *int) string {
	if id == nil || *id == 0 {
		return NotAssigned
	}
	if name, ok := r.userNames[*id]; ok {
		return name
	}
	name, err := r.store.GetUserName(ctx, *id)
	if err != nil {
		logLookup("user", *id, err)
		name = UnknownUser
	}
	r.userNames[*id] = name
	return name
}

func (r *resolver) typeName(ctx context.Context, id int) string {
	if id == 0 {
		return ""
	}
	if name, ok := r.typeNames[id]; ok {
		return name
	}
	name, err := r.store.GetEquipmentTypeName(ctx, id)
	if err != nil {
		logLookup("equipment type", id, err)
		name = strconv.Itoa(id)
	}
	r.typeNames[id] = name
	return name
}

func (r *resolver) phone(ctx context.Context, id *int) string {
	if id == nil || *id == 0 {
		return ""
	}
	if phone, ok := r.phones[*id]; ok {
		return phone
	}
	phone, err := r.store.GetClientPhone(ctx, *id)
	if err != nil {
		logLookup("client phone", *id, err)
		phone = ""
	}
	r.phones[*id] = phone
	return phone
}

func logLookup(what string, id int, err error) {
	if errors.Is(err, repository.ErrNotFound) {
		return
	}
	log.Warnf("failed to resolve %s %d: %v", what, id, err)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
