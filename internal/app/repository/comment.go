package repository

import (
	"context"
	"strings"

	"repairdesk/internal/app/ds"

	"gorm.io/gorm"
)

const (
	// NoComments - значение колонки комментариев для заявки без комментариев
	NoComments       = "Нет комментариев"
	commentSeparator = "; "
)

func (r *Repository) ListComments(ctx context.Context, requestID int) ([]ds.Comment, error) {
	var comments []ds.Comment
	err := r.read(ctx, "list comments", func(db *gorm.DB) error {
		return db.Where(map[string]interface{}{"requestID": requestID}).Find(&comments).Error
	})
	return comments, err
}

// GetRequestComments возвращает комментарии заявки одной строкой
func (r *Repository) GetRequestComments(ctx context.Context, requestID int) (string, error) {
	comments, err := r.ListComments(ctx, requestID)
	if err != nil {
		return "", err
	}
	if len(comments) == 0 {
		return NoComments, nil
	}

	messages := make([]string, len(comments))
	for i, c := range comments {
		messages[i] = c.Message
	}
	return strings.Join(messages, commentSeparator), nil
}

func (r *Repository) AddComment(ctx context.Context, requestID int, message string) error {
	return r.write(ctx, "add comment", func(tx *gorm.DB) error {
		return tx.Create(&ds.Comment{RequestID: requestID, Message: message}).Error
	})
}
