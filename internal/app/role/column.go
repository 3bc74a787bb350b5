package role

// Column - колонка таблицы заявок
type Column string

const (
	ColumnID             Column = "id"
	ColumnDate           Column = "date"
	ColumnEquipmentType  Column = "equipment_type"
	ColumnModel          Column = "model"
	ColumnProblem        Column = "problem"
	ColumnStatus         Column = "status"
	ColumnMaster         Column = "master"
	ColumnCompletionDate Column = "completion_date"
	ColumnParts          Column = "parts"
	ColumnClient         Column = "client"
	ColumnPhone          Column = "phone"
	ColumnComments       Column = "comments"
	ColumnAction         Column = "action"
)

var headers = map[Column]string{
	ColumnID:             "ID",
	ColumnDate:           "Дата",
	ColumnEquipmentType:  "Тип оборудования",
	ColumnModel:          "Модель",
	ColumnProblem:        "Проблема",
	ColumnStatus:         "Статус",
	ColumnMaster:         "Мастер",
	ColumnCompletionDate: "Дата завершения",
	ColumnParts:          "Запчасти",
	ColumnClient:         "Клиент",
	ColumnPhone:          "Телефон",
	ColumnComments:       "Комментарий",
	ColumnAction:         "Действия",
}

func (c Column) Header() string {
	if h, ok := headers[c]; ok {
		return h
	}
	return string(c)
}
