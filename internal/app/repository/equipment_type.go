package repository

import (
	"context"

	"repairdesk/internal/app/ds"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultEquipmentTypes - справочник для пустой БД
var DefaultEquipmentTypes = []string{"Компьютер", "Ноутбук", "Принтер"}

// ListEquipmentTypes возвращает справочник, отсортированный по названию
func (r *Repository) ListEquipmentTypes(ctx context.Context) ([]ds.EquipmentType, error) {
	var types []ds.EquipmentType
	err := r.read(ctx, "list equipment types", func(db *gorm.DB) error {
		return db.Order(clause.OrderByColumn{Column: clause.Column{Name: "orgTechType"}}).Find(&types).Error
	})
	return types, err
}

func (r *Repository) GetEquipmentTypeName(ctx context.Context, id int) (string, error) {
	var t ds.EquipmentType
	err := r.read(ctx, "get equipment type", func(db *gorm.DB) error {
		return db.First(&t, id).Error
	})
	if err != nil {
		return "", err
	}
	return t.Name, nil
}

// SeedEquipmentTypes заполняет справочник, если он пуст. Возвращает число добавленных записей.
func (r *Repository) SeedEquipmentTypes(ctx context.Context, names []string) (int, error) {
	added := 0
	err := r.write(ctx, "seed equipment types", func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&ds.EquipmentType{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		for i, name := range names {
			if err := tx.Create(&ds.EquipmentType{ID: i + 1, Name: name}).Error; err != nil {
				return err
			}
			added++
		}
		return nil
	})
	return added, err
}
