package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"repairdesk/internal/app/config"
	"repairdesk/internal/app/ds"

	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Repository struct {
	db *gorm.DB
}

// New открывает хранилище. Таблицы не создаются: для этого есть Migrate.
func New(cfg config.StoreConfig) (*Repository, error) {
	dialector, err := openDialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: slowQueryLogger{logger.New(gormWriter{}, logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			ParameterizedQueries:      true,
		})},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	log.WithField("driver", cfg.Driver).Info("store opened")

	return &Repository{
		db: db,
	}, nil
}

// gormWriter пишет сообщения gorm (медленные запросы) в logrus на уровне warn.
// Значения параметров в SQL не подставляются: в запросах бывают пароли.
type gormWriter struct{}

func (gormWriter) Printf(format string, args ...interface{}) {
	log.Warnf(format, args...)
}

// slowQueryLogger оставляет от логгера gorm только медленные запросы:
// ошибки пишет classify вместе с op и kind
type slowQueryLogger struct {
	logger.Interface
}

func (l slowQueryLogger) LogMode(level logger.LogLevel) logger.Interface {
	return slowQueryLogger{l.Interface.LogMode(level)}
}

func (l slowQueryLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if err != nil {
		return
	}
	l.Interface.Trace(ctx, begin, fc, nil)
}

// ParamsFilter убирает значения параметров из текста запроса в логе
func (l slowQueryLogger) ParamsFilter(_ context.Context, sql string, _ ...interface{}) (string, []interface{}) {
	return sql, nil
}

func openDialector(cfg config.StoreConfig) (gorm.Dialector, error) {
	lockWait := cfg.LockWait
	if lockWait <= 0 {
		lockWait = config.DefaultLockWait
	}

	switch cfg.Driver {
	case config.DriverSQLite, "":
		// _busy_timeout - ожидание блокировки файла, _txlock=immediate - запись
		// берёт блокировку сразу при BEGIN
		dsn := fmt.Sprintf("file:%s?_busy_timeout=%d&_txlock=immediate", cfg.Path, lockWait.Milliseconds())
		return sqlite.Open(dsn), nil
	case config.DriverPostgres:
		dsn := cfg.DSN
		if !strings.Contains(dsn, "lock_timeout") {
			dsn = fmt.Sprintf("%s lock_timeout=%d", dsn, lockWait.Milliseconds())
		}
		return postgres.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}

// Migrate создаёт таблицы users, orgTechTypes, requests, comments
func (r *Repository) Migrate() error {
	err := r.db.AutoMigrate(
		&ds.User{},
		&ds.EquipmentType{},
		&ds.Request{},
		&ds.Comment{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

func (r *Repository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// read выполняет чтение: соединение берётся из пула на время запроса
func (r *Repository) read(ctx context.Context, op string, fn func(db *gorm.DB) error) error {
	return classify(op, fn(r.db.WithContext(ctx)))
}

// write выполняет одну логическую операцию записи в отдельной транзакции.
// Соединение возвращается в пул на любом пути выхода, включая ошибку.
func (r *Repository) write(ctx context.Context, op string, fn func(tx *gorm.DB) error) error {
	return classify(op, r.db.WithContext(ctx).Transaction(fn))
}
