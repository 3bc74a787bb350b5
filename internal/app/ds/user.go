package ds

// Таблица пользователей (заполняется вне системы, здесь только читается)
type User struct {
	ID       int     `gorm:"column:IDuser;primaryKey"`
	FIO      string  `gorm:"column:fio;type:text"`
	Login    string  `gorm:"column:login;type:text;not null"`
	Password string  `gorm:"column:password;type:text;not null"`
	Phone    *string `gorm:"column:phone;type:text"` // Nullable
	TypeID   int     `gorm:"column:typeID;not null"`
}

func (User) TableName() string { return "users" }

// PhoneOrEmpty возвращает телефон или пустую строку
func (u User) PhoneOrEmpty() string {
	if u.Phone == nil {
		return ""
	}
	return *u.Phone
}
