package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"repairdesk/internal/app/ds"
	"repairdesk/internal/app/repository"
	"repairdesk/internal/app/role"

	log "github.com/sirupsen/logrus"
)

// NewRequestInput - данные формы новой заявки. ClientName и ClientPhone
// заполняет оператор при приёме заявки от клиента без учётной записи.
type NewRequestInput struct {
	EquipmentTypeID int
	Model           string
	Problem         string
	ClientName      string
	ClientPhone     string
}

// BuildRequest собирает новую заявку. Ссылка на клиента ставится только
// когда заявку оформляет сам заказчик.
func BuildRequest(creator role.Role, creatorID int, in NewRequestInput, now time.Time) *ds.Request {
	request := &ds.Request{
		StartDate:          ds.FormatDate(now),
		OrgTechTypeID:      in.EquipmentTypeID,
		OrgTechModel:       strings.TrimSpace(in.Model),
		ProblemDescription: strings.TrimSpace(in.Problem),
		RequestStatusID:    ds.StatusNew,
	}
	if creator == role.Customer {
		id := creatorID
		request.ClientID = &id
	}
	return request
}

// CreateRequest оформляет новую заявку со статусом "Новая заявка"
func (s *Service) CreateRequest(ctx context.Context, session Session, in NewRequestInput) (request *ds.Request, err error) {
	defer func() { observe("create", err) }()

	if !session.Policy.Can(role.ActionCreateRequest) {
		return nil, ErrForbidden
	}

	if in.EquipmentTypeID <= 0 {
		return nil, fmt.Errorf("%w: не выбран тип оборудования", ErrInvalidInput)
	}
	if strings.TrimSpace(in.Problem) == "" {
		return nil, fmt.Errorf("%w: не заполнено описание проблемы", ErrInvalidInput)
	}
	if _, err := s.store.GetEquipmentTypeName(ctx, in.EquipmentTypeID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: неизвестный тип оборудования %d", ErrInvalidInput, in.EquipmentTypeID)
		}
		return nil, err
	}

	var notes []string
	if session.Role() != role.Customer {
		if note := walkInNote(strings.TrimSpace(in.ClientName), strings.TrimSpace(in.ClientPhone)); note != "" {
			notes = append(notes, note)
		}
	}

	request = BuildRequest(session.Role(), session.UserID, in, s.now())
	if err := s.store.CreateRequest(ctx, request, notes...); err != nil {
		return nil, err
	}

	log.Infof("request %d created by user %d", request.ID, session.UserID)
	return request, nil
}

// walkInNote - контакты клиента без учётной записи; оба поля необязательны
func walkInNote(name, phone string) string {
	switch {
	case name == "" && phone == "":
		return ""
	case phone == "":
		return "Клиент: " + name
	case name == "":
		return "Клиент: тел.: " + phone
	default:
		return fmt.Sprintf("Клиент: %s, тел.: %s", name, phone)
	}
}

// AssignMaster назначает мастера на заявку; заявка переходит в ремонт
// независимо от предыдущего статуса
func (s *Service) AssignMaster(ctx context.Context, session Session, requestID, masterID int) (err error) {
	defer func() { observe("assign", err) }()

	if !session.Policy.Can(role.ActionAssignMaster) {
		return ErrForbidden
	}

	master, err := s.store.GetUserByID(ctx, masterID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: мастер %d не найден", ErrInvalidInput, masterID)
		}
		return err
	}
	if role.Role(master.TypeID) != role.Master {
		return fmt.Errorf("%w: пользователь %d не мастер", ErrInvalidInput, masterID)
	}

	if err := s.store.AssignMaster(ctx, requestID, masterID); err != nil {
		return err
	}

	log.Infof("master %d assigned to request %d by user %d", masterID, requestID, session.UserID)
	return nil
}

// ChangeStatus меняет статус своей заявки мастером. При переходе в
// "Готова к выдаче" ставится дата завершения, иначе она не меняется.
func (s *Service) ChangeStatus(ctx context.Context, session Session, requestID int, status ds.Status) (err error) {
	defer func() { observe("status", err) }()

	if !session.Policy.Can(role.ActionChangeStatus) {
		return ErrForbidden
	}
	if !status.Valid() {
		return fmt.Errorf("%w: неизвестный статус %d", ErrInvalidInput, int(status))
	}

	if _, err := s.GetRequest(ctx, session, requestID); err != nil {
		return err
	}

	var completionDate *string
	if status == ds.StatusReadyForPickup {
		date := ds.FormatDate(s.now())
		completionDate = &date
	}

	if err := s.store.UpdateRequestStatus(ctx, requestID, status, completionDate); err != nil {
		return err
	}

	log.Infof("request %d status set to %d by user %d", requestID, int(status), session.UserID)
	return nil
}

// AddComment добавляет комментарий мастера к своей заявке
func (s *Service) AddComment(ctx context.Context, session Session, requestID int, message string) (err error) {
	defer func() { observe("comment", err) }()

	if !session.Policy.Can(role.ActionAddComment) {
		return ErrForbidden
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return fmt.Errorf("%w: пустой комментарий", ErrInvalidInput)
	}
	if _, err := s.GetRequest(ctx, session, requestID); err != nil {
		return err
	}
	return s.store.AddComment(ctx, requestID, message)
}

// GetRequest возвращает заявку, если она видна пользователю
func (s *Service) GetRequest(ctx context.Context, session Session, requestID int) (*ds.Request, error) {
	request, err := s.store.GetRequestByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if !session.CanSee(*request) {
		return nil, ErrForbidden
	}
	return request, nil
}

// Comments возвращает комментарии видимой пользователю заявки
func (s *Service) Comments(ctx context.Context, session Session, requestID int) ([]ds.Comment, error) {
	if _, err := s.GetRequest(ctx, session, requestID); err != nil {
		return nil, err
	}
	return s.store.ListComments(ctx, requestID)
}

// Masters возвращает мастеров для назначения
func (s *Service) Masters(ctx context.Context, session Session) ([]ds.User, error) {
	if !session.Policy.Can(role.ActionAssignMaster) {
		return nil, ErrForbidden
	}
	return s.store.ListMasters(ctx)
}

func (s *Service) EquipmentTypes(ctx context.Context) ([]ds.EquipmentType, error) {
	return s.store.ListEquipmentTypes(ctx)
}
