package ds

import "time"

// DateLayout - формат дат в таблице заявок (ДД.ММ.ГГГГ, хранится текстом)
const DateLayout = "02.01.2006"

// FormatDate приводит время к формату хранения
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Таблица заявок на ремонт
type Request struct {
	ID                 int     `gorm:"column:IDrequest;primaryKey"`
	StartDate          string  `gorm:"column:startDate;type:text"`
	OrgTechTypeID      int     `gorm:"column:orgTechTypeID"`
	OrgTechModel       string  `gorm:"column:orgTechModel;type:text"`
	ProblemDescription string  `gorm:"column:problemDescryption;type:text"`
	RequestStatusID    Status  `gorm:"column:requestStatusID"`
	CompletionDate     *string `gorm:"column:completionDate;type:text"` // только для статуса "готова к выдаче"
	RepairParts        *string `gorm:"column:repairParts;type:text"`
	MasterID           *int    `gorm:"column:masterID"` // назначает оператор
	ClientID           *int    `gorm:"column:clientID"` // только если заявку создал заказчик
}

func (Request) TableName() string { return "requests" }
