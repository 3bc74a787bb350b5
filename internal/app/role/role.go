// Package role описывает политику ролей: какие колонки видит пользователь,
// какие заявки попадают в его список и какие изменения ему разрешены.
package role

import "fmt"

// Role - тип пользователя (users.typeID)
type Role int

const (
	Manager  Role = 1
	Master   Role = 2
	Operator Role = 3
	Customer Role = 4
)

// Action - изменяющее действие над заявками
type Action string

const (
	ActionChangeStatus  Action = "change_status"
	ActionAssignMaster  Action = "assign_master"
	ActionCreateRequest Action = "create_request"
	ActionAddComment    Action = "add_comment"
)

// Scope - какие заявки попадают в список роли.
// ScopeAssigned: masterID = текущий пользователь, ScopeOwned: clientID = текущий
// пользователь, ScopeLimited: все заявки, но не более Policy.Limit строк.
type Scope int

const (
	ScopeAll Scope = iota
	ScopeAssigned
	ScopeOwned
	ScopeLimited
)

// UnknownRoleLimit - ограничение списка для нераспознанной роли
const UnknownRoleLimit = 50

// Policy - всё, что зависит от роли, в виде данных.
// Выбирается один раз при входе и передаётся дальше явно.
type Policy struct {
	Role    Role
	Label   string
	Title   string
	Columns []Column
	Actions []Action
	Scope   Scope
	Limit   int
	// ActionLabel - текст в колонке действий, если она есть
	ActionLabel string
}

var policies = map[Role]Policy{
	Manager: {
		Role:  Manager,
		Label: "Менеджер",
		Title: "Управление заявками",
		Columns: []Column{
			ColumnID, ColumnDate, ColumnEquipmentType, ColumnModel, ColumnProblem,
			ColumnStatus, ColumnMaster, ColumnCompletionDate, ColumnParts, ColumnClient,
		},
		Scope: ScopeAll,
	},
	Master: {
		Role:  Master,
		Label: "Мастер",
		Title: "Мои задания на ремонт",
		Columns: []Column{
			ColumnID, ColumnDate, ColumnEquipmentType, ColumnModel, ColumnProblem,
			ColumnStatus, ColumnCompletionDate, ColumnParts, ColumnAction,
		},
		Actions:     []Action{ActionChangeStatus, ActionAddComment},
		Scope:       ScopeAssigned,
		ActionLabel: "Изменить",
	},
	Operator: {
		Role:  Operator,
		Label: "Оператор",
		Title: "Прием новых заявок",
		Columns: []Column{
			ColumnID, ColumnDate, ColumnEquipmentType, ColumnModel, ColumnProblem,
			ColumnStatus, ColumnMaster, ColumnClient, ColumnPhone, ColumnAction,
		},
		Actions:     []Action{ActionAssignMaster, ActionCreateRequest},
		Scope:       ScopeAll,
		ActionLabel: "Назначить",
	},
	Customer: {
		Role:  Customer,
		Label: "Заказчик",
		Title: "Мои заявки на ремонт",
		Columns: []Column{
			ColumnID, ColumnDate, ColumnEquipmentType, ColumnModel, ColumnProblem,
			ColumnStatus, ColumnMaster, ColumnCompletionDate, ColumnComments,
		},
		Actions: []Action{ActionCreateRequest},
		Scope:   ScopeOwned,
	},
}

// For возвращает политику роли. Неизвестная роль получает минимальный
// вид только для чтения.
func For(r Role) Policy {
	if p, ok := policies[r]; ok {
		return p
	}
	return Policy{
		Role:    r,
		Label:   fmt.Sprintf("Тип %d", int(r)),
		Title:   "Заявки",
		Columns: []Column{ColumnID, ColumnDate, ColumnEquipmentType, ColumnProblem, ColumnStatus},
		Scope:   ScopeLimited,
		Limit:   UnknownRoleLimit,
	}
}

// Known сообщает, является ли роль одной из четырёх штатных
func (r Role) Known() bool {
	_, ok := policies[r]
	return ok
}

func (r Role) String() string {
	return For(r).Label
}

// Can проверяет, разрешено ли действие
func (p Policy) Can(a Action) bool {
	for _, allowed := range p.Actions {
		if allowed == a {
			return true
		}
	}
	return false
}

// Headers возвращает заголовки колонок для отображения
func (p Policy) Headers() []string {
	headers := make([]string, len(p.Columns))
	for i, c := range p.Columns {
		headers[i] = c.Header()
	}
	return headers
}
