package ds

// Комментарии к заявке - только добавление, без собственного ID
type Comment struct {
	RequestID int    `gorm:"column:requestID;not null;index"`
	Message   string `gorm:"column:message;type:text;not null"`
}

func (Comment) TableName() string { return "comments" }
