package repository

import (
	"context"
	"fmt"

	"repairdesk/internal/app/ds"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Методы для работы с заявками

const savepointCreate = "create_request"

// RequestFilter ограничивает выборку заявок. Пустой фильтр - все заявки.
type RequestFilter struct {
	MasterID *int
	ClientID *int
	Limit    int
}

// ListRequests возвращает заявки по фильтру, новые (по startDate) первыми.
// startDate хранится строкой, поэтому порядок строковый.
func (r *Repository) ListRequests(ctx context.Context, filter RequestFilter) ([]ds.Request, error) {
	var requests []ds.Request
	err := r.read(ctx, "list requests", func(db *gorm.DB) error {
		q := db.Model(&ds.Request{})
		if filter.MasterID != nil {
			q = q.Where(map[string]interface{}{"masterID": *filter.MasterID})
		}
		if filter.ClientID != nil {
			q = q.Where(map[string]interface{}{"clientID": *filter.ClientID})
		}
		q = q.Order(clause.OrderByColumn{Column: clause.Column{Name: "startDate"}, Desc: true})
		if filter.Limit > 0 {
			q = q.Limit(filter.Limit)
		}
		return q.Find(&requests).Error
	})
	return requests, err
}

func (r *Repository) GetRequestByID(ctx context.Context, id int) (*ds.Request, error) {
	var request ds.Request
	err := r.read(ctx, "get request", func(db *gorm.DB) error {
		return db.First(&request, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// CreateRequest вставляет новую заявку и, если переданы, её первые комментарии.
// Если в таблице не настроен автоинкремент IDrequest, следующий ID вычисляется
// как MAX+1 внутри той же транзакции и вставка повторяется один раз.
func (r *Repository) CreateRequest(ctx context.Context, request *ds.Request, notes ...string) error {
	return r.write(ctx, "create request", func(tx *gorm.DB) error {
		if err := tx.SavePoint(savepointCreate).Error; err != nil {
			return err
		}

		err := tx.Create(request).Error
		if err != nil {
			if !isMissingRequestID(err) {
				return err
			}
			if err := tx.RollbackTo(savepointCreate).Error; err != nil {
				return err
			}

			nextID, err := nextRequestID(tx)
			if err != nil {
				return err
			}
			log.Warnf("requests.IDrequest has no auto increment, using explicit id %d", nextID)

			request.ID = nextID
			if err := tx.Create(request).Error; err != nil {
				return err
			}
		}

		for _, note := range notes {
			if err := tx.Create(&ds.Comment{RequestID: request.ID, Message: note}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func nextRequestID(tx *gorm.DB) (int, error) {
	var maxID int
	row := tx.Model(&ds.Request{}).Select("COALESCE(MAX(?), 0)", clause.Column{Name: "IDrequest"}).Row()
	if err := row.Scan(&maxID); err != nil {
		return 0, fmt.Errorf("failed to read max request id: %w", err)
	}
	return maxID + 1, nil
}

// UpdateRequestStatus меняет статус; completionDate записывается только если передана
func (r *Repository) UpdateRequestStatus(ctx context.Context, id int, status ds.Status, completionDate *string) error {
	updates := map[string]interface{}{
		"requestStatusID": int(status),
	}
	if completionDate != nil {
		updates["completionDate"] = *completionDate
	}
	return r.updateRequest(ctx, "update request status", id, updates)
}

// AssignMaster назначает мастера и переводит заявку в ремонт
func (r *Repository) AssignMaster(ctx context.Context, id, masterID int) error {
	return r.updateRequest(ctx, "assign master", id, map[string]interface{}{
		"masterID":        masterID,
		"requestStatusID": int(ds.StatusInRepair),
	})
}

func (r *Repository) updateRequest(ctx context.Context, op string, id int, updates map[string]interface{}) error {
	return r.write(ctx, op, func(tx *gorm.DB) error {
		result := tx.Model(&ds.Request{}).
			Where(map[string]interface{}{"IDrequest": id}).
			Updates(updates)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
