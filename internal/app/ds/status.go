package ds

import "strconv"

// Status - статус заявки (requestStatusID)
type Status int

const (
	StatusInRepair       Status = 1
	StatusReadyForPickup Status = 2
	StatusNew            Status = 3
)

var statusNames = map[Status]string{
	StatusInRepair:       "В процессе ремонта",
	StatusReadyForPickup: "Готова к выдаче",
	StatusNew:            "Новая заявка",
}

// Statuses - все статусы в порядке выбора мастером
var Statuses = []Status{StatusInRepair, StatusReadyForPickup, StatusNew}

func (s Status) Valid() bool {
	_, ok := statusNames[s]
	return ok
}

// String возвращает отображаемое название, для неизвестного статуса - его номер
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return strconv.Itoa(int(s))
}
