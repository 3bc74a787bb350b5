package ds

// Справочник типов оргтехники (только чтение)
type EquipmentType struct {
	ID   int    `gorm:"column:IDorgTechType;primaryKey"`
	Name string `gorm:"column:orgTechType;type:text;not null"`
}

func (EquipmentType) TableName() string { return "orgTechTypes" }
