package repository

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"repairdesk/internal/app/config"
	"repairdesk/internal/app/ds"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

func newTestRepository(t *testing.T, path string, lockWait time.Duration) *Repository {
	t.Helper()
	r, err := New(config.StoreConfig{
		Driver:   config.DriverSQLite,
		Path:     path,
		LockWait: lockWait,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func migratedRepository(t *testing.T) *Repository {
	t.Helper()
	r := newTestRepository(t, filepath.Join(t.TempDir(), "uchet.db"), time.Second)
	require.NoError(t, r.Migrate())
	return r
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int { return &i }

func seedUsers(t *testing.T, r *Repository) {
	t.Helper()
	ctx := context.Background()
	users := []ds.User{
		{ID: 1, FIO: "Анна Петрова", Login: "anna", Password: "pass", TypeID: 1},
		{ID: 2, FIO: "Иван Сидоров", Login: "ivan", Password: "1234 ", TypeID: 2, Phone: strPtr("89001112233")},
		{ID: 3, FIO: "Олег Мастеров", Login: " oleg", Password: "qwe", TypeID: 2},
		{ID: 7, FIO: "Клиент Клиентов", Login: "client", Password: "c", TypeID: 4},
	}
	for i := range users {
		require.NoError(t, r.CreateUser(ctx, &users[i]))
	}
}

func TestFindUserByCredentials(t *testing.T) {
	r := migratedRepository(t)
	seedUsers(t, r)
	ctx := context.Background()

	tests := []struct {
		name     string
		login    string
		password string
		wantID   int
		wantErr  error
	}{
		{name: "exact match", login: "anna", password: "pass", wantID: 1},
		{name: "stored password with trailing space", login: "ivan", password: "1234", wantID: 2},
		{name: "stored login with leading space", login: "oleg", password: "qwe", wantID: 3},
		{name: "wrong password", login: "anna", password: "nope", wantErr: ErrNotFound},
		{name: "unknown login", login: "nobody", password: "pass", wantErr: ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := r.FindUserByCredentials(ctx, tt.login, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, user.ID)
		})
	}
}

func TestUserLookups(t *testing.T) {
	r := migratedRepository(t)
	seedUsers(t, r)
	ctx := context.Background()

	name, err := r.GetUserName(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Иван Сидоров", name)

	phone, err := r.GetClientPhone(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "89001112233", phone)

	phone, err = r.GetClientPhone(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, phone)

	_, err = r.GetUserName(ctx, 99)
	assert.ErrorIs(t, err, ErrNotFound)

	masters, err := r.ListMasters(ctx)
	require.NoError(t, err)
	require.Len(t, masters, 2)
	assert.Equal(t, 2, masters[0].ID)
	assert.Equal(t, 3, masters[1].ID)

	user, err := r.FindUserByLogin(ctx, "oleg")
	require.NoError(t, err)
	assert.Equal(t, 3, user.ID)
}

func TestEquipmentTypes(t *testing.T) {
	r := migratedRepository(t)
	ctx := context.Background()

	added, err := r.SeedEquipmentTypes(ctx, DefaultEquipmentTypes)
	require.NoError(t, err)
	assert.Equal(t, 3, added)

	added, err = r.SeedEquipmentTypes(ctx, DefaultEquipmentTypes)
	require.NoError(t, err)
	assert.Zero(t, added)

	types, err := r.ListEquipmentTypes(ctx)
	require.NoError(t, err)
	names := make([]string, len(types))
	for i, tp := range types {
		names[i] = tp.Name
	}
	assert.Equal(t, []string{"Компьютер", "Ноутбук", "Принтер"}, names)

	name, err := r.GetEquipmentTypeName(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Ноутбук", name)

	_, err = r.GetEquipmentTypeName(ctx, 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListRequestsFilters(t *testing.T) {
	r := migratedRepository(t)
	ctx := context.Background()

	requests := []ds.Request{
		{StartDate: "01.05.2024", OrgTechTypeID: 1, ProblemDescription: "a", RequestStatusID: ds.StatusNew, ClientID: intPtr(7)},
		{StartDate: "15.04.2024", OrgTechTypeID: 1, ProblemDescription: "b", RequestStatusID: ds.StatusInRepair, MasterID: intPtr(2)},
		{StartDate: "30.01.2024", OrgTechTypeID: 2, ProblemDescription: "c", RequestStatusID: ds.StatusInRepair, MasterID: intPtr(2), ClientID: intPtr(7)},
	}
	for i := range requests {
		require.NoError(t, r.CreateRequest(ctx, &requests[i]))
	}

	ids := func(list []ds.Request) []int {
		res := make([]int, len(list))
		for i, req := range list {
			res[i] = req.ID
		}
		return res
	}

	all, err := r.ListRequests(ctx, RequestFilter{})
	require.NoError(t, err)
	// даты сравниваются как строки
	assert.Equal(t, []int{3, 2, 1}, ids(all))

	byMaster, err := r.ListRequests(ctx, RequestFilter{MasterID: intPtr(2)})
	require.NoError(t, err)
	assert.Equal(t, []int{3, 2}, ids(byMaster))

	byClient, err := r.ListRequests(ctx, RequestFilter{ClientID: intPtr(7)})
	require.NoError(t, err)
	assert.Equal(t, []int{3, 1}, ids(byClient))

	limited, err := r.ListRequests(ctx, RequestFilter{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	none, err := r.ListRequests(ctx, RequestFilter{MasterID: intPtr(100)})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestCreateRequestWithNotes(t *testing.T) {
	r := migratedRepository(t)
	ctx := context.Background()

	request := &ds.Request{StartDate: "01.05.2024", OrgTechTypeID: 1, ProblemDescription: "не печатает", RequestStatusID: ds.StatusNew}
	require.NoError(t, r.CreateRequest(ctx, request, "Клиент: Пётр"))
	assert.Equal(t, 1, request.ID)

	stored, err := r.GetRequestByID(ctx, request.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.ClientID)
	assert.Nil(t, stored.MasterID)
	assert.Nil(t, stored.CompletionDate)
	assert.Equal(t, ds.StatusNew, stored.RequestStatusID)

	comments, err := r.GetRequestComments(ctx, request.ID)
	require.NoError(t, err)
	assert.Equal(t, "Клиент: Пётр", comments)
}

const legacyRequestsTable = `CREATE TABLE requests (
	IDrequest INTEGER NOT NULL,
	startDate TEXT,
	orgTechTypeID INTEGER,
	orgTechModel TEXT,
	problemDescryption TEXT,
	requestStatusID INTEGER,
	completionDate TEXT,
	repairParts TEXT,
	masterID INTEGER,
	clientID INTEGER
)`

func TestCreateRequestWithoutAutoIncrement(t *testing.T) {
	r := newTestRepository(t, filepath.Join(t.TempDir(), "legacy.db"), time.Second)
	require.NoError(t, r.db.Exec(legacyRequestsTable).Error)
	require.NoError(t, r.db.AutoMigrate(&ds.Comment{}))
	require.NoError(t, r.db.Exec(
		`INSERT INTO requests (IDrequest, startDate, orgTechTypeID, problemDescryption, requestStatusID) VALUES (9, '01.01.2024', 1, 'old', 1)`,
	).Error)

	ctx := context.Background()
	request := &ds.Request{StartDate: "02.01.2024", OrgTechTypeID: 1, ProblemDescription: "new", RequestStatusID: ds.StatusNew}
	require.NoError(t, r.CreateRequest(ctx, request, "note"))
	assert.Equal(t, 10, request.ID)

	all, err := r.ListRequests(ctx, RequestFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	comments, err := r.ListComments(ctx, 10)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "note", comments[0].Message)
}

func TestUpdateRequestStatus(t *testing.T) {
	r := migratedRepository(t)
	ctx := context.Background()

	request := &ds.Request{StartDate: "01.05.2024", OrgTechTypeID: 1, ProblemDescription: "x", RequestStatusID: ds.StatusInRepair, MasterID: intPtr(2)}
	require.NoError(t, r.CreateRequest(ctx, request))

	require.NoError(t, r.UpdateRequestStatus(ctx, request.ID, ds.StatusReadyForPickup, strPtr("03.05.2024")))
	stored, err := r.GetRequestByID(ctx, request.ID)
	require.NoError(t, err)
	assert.Equal(t, ds.StatusReadyForPickup, stored.RequestStatusID)
	require.NotNil(t, stored.CompletionDate)
	assert.Equal(t, "03.05.2024", *stored.CompletionDate)

	// без даты дата завершения остаётся прежней
	require.NoError(t, r.UpdateRequestStatus(ctx, request.ID, ds.StatusInRepair, nil))
	stored, err = r.GetRequestByID(ctx, request.ID)
	require.NoError(t, err)
	assert.Equal(t, ds.StatusInRepair, stored.RequestStatusID)
	assert.Equal(t, "03.05.2024", *stored.CompletionDate)

	err = r.UpdateRequestStatus(ctx, 404, ds.StatusInRepair, nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAssignMaster(t *testing.T) {
	r := migratedRepository(t)
	ctx := context.Background()

	request := &ds.Request{StartDate: "01.05.2024", OrgTechTypeID: 1, ProblemDescription: "x", RequestStatusID: ds.StatusReadyForPickup}
	require.NoError(t, r.CreateRequest(ctx, request))

	require.NoError(t, r.AssignMaster(ctx, request.ID, 3))
	stored, err := r.GetRequestByID(ctx, request.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.MasterID)
	assert.Equal(t, 3, *stored.MasterID)
	assert.Equal(t, ds.StatusInRepair, stored.RequestStatusID)

	assert.ErrorIs(t, r.AssignMaster(ctx, 404, 3), ErrNotFound)
}

func TestRequestComments(t *testing.T) {
	r := migratedRepository(t)
	ctx := context.Background()

	comments, err := r.GetRequestComments(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, NoComments, comments)

	require.NoError(t, r.AddComment(ctx, 1, "Заменён блок питания"))
	require.NoError(t, r.AddComment(ctx, 1, "Ожидает клиента"))
	require.NoError(t, r.AddComment(ctx, 2, "чужой"))

	comments, err = r.GetRequestComments(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Заменён блок питания; Ожидает клиента", comments)
}

// holdExclusiveLock держит эксклюзивную блокировку файла БД из другого соединения до конца теста
func holdExclusiveLock(t *testing.T, path string) {
	t.Helper()
	ctx := context.Background()

	other, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	conn, err := other.Conn(ctx)
	require.NoError(t, err)

	_, err = conn.ExecContext(ctx, "BEGIN EXCLUSIVE")
	require.NoError(t, err)

	t.Cleanup(func() {
		_, _ = conn.ExecContext(ctx, "ROLLBACK")
		_ = conn.Close()
		_ = other.Close()
	})
}

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })
	return &buf
}

func TestStoreBusy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "busy.db")
	r := newTestRepository(t, path, 100*time.Millisecond)
	require.NoError(t, r.Migrate())
	holdExclusiveLock(t, path)

	start := time.Now()
	err := r.AddComment(context.Background(), 1, "blocked")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrStoreBusy), "got %v", err)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestCredentialsNotLoggedOnStoreFault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "busy.db")
	r := newTestRepository(t, path, 100*time.Millisecond)
	require.NoError(t, r.Migrate())
	seedUsers(t, r)
	holdExclusiveLock(t, path)
	buf := captureLog(t)

	_, err := r.FindUserByCredentials(context.Background(), "ivan", "s3cret-pass")
	assert.ErrorIs(t, err, ErrStoreBusy)

	out := buf.String()
	assert.Contains(t, out, "find user by credentials")
	assert.NotContains(t, out, "s3cret-pass")
	// ошибка пишется один раз, из classify
	assert.Equal(t, 1, strings.Count(out, "database is locked"), out)
}

func TestSlowQueryLogger(t *testing.T) {
	buf := captureLog(t)
	l := slowQueryLogger{logger.New(gormWriter{}, logger.Config{
		SlowThreshold: time.Nanosecond,
		LogLevel:      logger.Warn,
	})}
	ctx := context.Background()
	query := func() (string, int64) { return "SELECT * FROM users WHERE password = ?", 1 }

	l.Trace(ctx, time.Now().Add(-time.Second), query, errors.New("boom"))
	assert.Empty(t, buf.String())

	l.Trace(ctx, time.Now().Add(-time.Second), query, nil)
	assert.Contains(t, buf.String(), "level=warning")
	assert.Contains(t, buf.String(), "SLOW SQL")

	sqlText, params := l.ParamsFilter(ctx, "WHERE password = ?", "secret")
	assert.Equal(t, "WHERE password = ?", sqlText)
	assert.Nil(t, params)
}

const checkedRequestsTable = `CREATE TABLE requests (
	IDrequest INTEGER PRIMARY KEY,
	startDate TEXT,
	orgTechTypeID INTEGER,
	orgTechModel TEXT,
	problemDescryption TEXT,
	requestStatusID INTEGER CHECK (requestStatusID IN (1, 2, 3)),
	completionDate TEXT,
	repairParts TEXT,
	masterID INTEGER,
	clientID INTEGER
)`

func TestCreateRequestIntegrityFailure(t *testing.T) {
	r := newTestRepository(t, filepath.Join(t.TempDir(), "checked.db"), time.Second)
	require.NoError(t, r.db.Exec(checkedRequestsTable).Error)
	require.NoError(t, r.db.AutoMigrate(&ds.Comment{}))

	ctx := context.Background()
	request := &ds.Request{StartDate: "01.05.2024", OrgTechTypeID: 1, ProblemDescription: "x", RequestStatusID: ds.Status(5)}
	err := r.CreateRequest(ctx, request, "Клиент: Пётр")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIntegrity)

	var requests, comments int64
	require.NoError(t, r.db.Model(&ds.Request{}).Count(&requests).Error)
	require.NoError(t, r.db.Model(&ds.Comment{}).Count(&comments).Error)
	assert.Zero(t, requests)
	assert.Zero(t, comments)
}

func TestOpenDialector(t *testing.T) {
	_, err := openDialector(config.StoreConfig{Driver: "mysql"})
	assert.Error(t, err)

	d, err := openDialector(config.StoreConfig{Driver: config.DriverPostgres, DSN: "host=localhost"})
	require.NoError(t, err)
	assert.Equal(t, "postgres", d.Name())
}
