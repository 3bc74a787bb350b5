package repository

import (
	"errors"
	"fmt"
	"strings"

	"repairdesk/internal/app/metrics"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Ошибки доступа к хранилищу. Любая ошибка драйвера на выходе из репозитория
// оборачивается ровно в одну из них.
var (
	ErrNotFound  = errors.New("record not found")
	ErrStoreBusy = errors.New("store is busy, retry later")
	ErrIntegrity = errors.New("integrity violation")
	ErrAccess    = errors.New("store access failure")
)

const (
	pgLockNotAvailable = "55P03"
	pgNotNullViolation = "23502"
	pgIntegrityClass   = "23"
)

// classify приводит ошибку драйвера к таксономии и пишет её в лог
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrStoreBusy) ||
		errors.Is(err, ErrIntegrity) || errors.Is(err, ErrAccess) {
		return err
	}

	var kind error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	case isBusy(err):
		kind = ErrStoreBusy
	case isIntegrity(err):
		kind = ErrIntegrity
	default:
		kind = ErrAccess
	}

	metrics.StoreFaults.WithLabelValues(faultLabel(kind)).Inc()
	log.WithFields(log.Fields{
		"op":   op,
		"kind": faultLabel(kind),
	}).Error(err)

	return fmt.Errorf("%s: %w: %w", op, kind, err)
}

func faultLabel(kind error) string {
	switch kind {
	case ErrStoreBusy:
		return "busy"
	case ErrIntegrity:
		return "integrity"
	default:
		return "access"
	}
}

func isBusy(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgLockNotAvailable
	}
	return false
}

func isIntegrity(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code == sqlite3.ErrConstraint
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return strings.HasPrefix(pgErr.Code, pgIntegrityClass)
	}
	return false
}

// isMissingRequestID - вставка без IDrequest в таблицу без автоинкремента
func isMissingRequestID(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintNotNull &&
			strings.Contains(sqliteErr.Error(), "requests.IDrequest")
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgNotNullViolation && pgErr.ColumnName == "IDrequest"
	}
	return false
}
