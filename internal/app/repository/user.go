package repository

import (
	"context"
	"errors"

	"repairdesk/internal/app/ds"
	"repairdesk/internal/app/role"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Методы для пользователей

// FindUserByCredentials ищет пользователя по логину и паролю: сначала точное
// совпадение, затем совпадение с обрезанными пробелами значений в БД.
// Аргументы должны быть уже обрезаны.
func (r *Repository) FindUserByCredentials(ctx context.Context, login, password string) (*ds.User, error) {
	var user ds.User
	err := r.read(ctx, "find user by credentials", func(db *gorm.DB) error {
		err := db.Where(map[string]interface{}{"login": login, "password": password}).First(&user).Error
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		// старые записи могут содержать пробелы по краям
		return db.Where("TRIM(?) = ? AND TRIM(?) = ?",
			clause.Column{Name: "login"}, login,
			clause.Column{Name: "password"}, password,
		).First(&user).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindUserByLogin ищет пользователя только по логину (точно, затем без пробелов)
func (r *Repository) FindUserByLogin(ctx context.Context, login string) (*ds.User, error) {
	var user ds.User
	err := r.read(ctx, "find user by login", func(db *gorm.DB) error {
		err := db.Where(map[string]interface{}{"login": login}).First(&user).Error
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return db.Where("TRIM(?) = ?", clause.Column{Name: "login"}, login).First(&user).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *Repository) GetUserByID(ctx context.Context, id int) (*ds.User, error) {
	var user ds.User
	err := r.read(ctx, "get user", func(db *gorm.DB) error {
		return db.First(&user, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserName возвращает ФИО пользователя
func (r *Repository) GetUserName(ctx context.Context, id int) (string, error) {
	user, err := r.GetUserByID(ctx, id)
	if err != nil {
		return "", err
	}
	return user.FIO, nil
}

// GetClientPhone возвращает телефон клиента, пустую строку если он не задан
func (r *Repository) GetClientPhone(ctx context.Context, id int) (string, error) {
	user, err := r.GetUserByID(ctx, id)
	if err != nil {
		return "", err
	}
	return user.PhoneOrEmpty(), nil
}

// ListMasters возвращает всех мастеров для назначения на заявку
func (r *Repository) ListMasters(ctx context.Context) ([]ds.User, error) {
	var masters []ds.User
	err := r.read(ctx, "list masters", func(db *gorm.DB) error {
		return db.Where(map[string]interface{}{"typeID": int(role.Master)}).
			Order(clause.OrderByColumn{Column: clause.Column{Name: "IDuser"}}).
			Find(&masters).Error
	})
	return masters, err
}

// CreateUser используется при первичном заполнении БД
func (r *Repository) CreateUser(ctx context.Context, user *ds.User) error {
	return r.write(ctx, "create user", func(tx *gorm.DB) error {
		return tx.Create(user).Error
	})
}
