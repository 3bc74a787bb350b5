package role

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPolicyColumns(t *testing.T) {
	tests := []struct {
		role    Role
		columns []Column
	}{
		{
			role: Manager,
			columns: []Column{ColumnID, ColumnDate, ColumnEquipmentType, ColumnModel, ColumnProblem,
				ColumnStatus, ColumnMaster, ColumnCompletionDate, ColumnParts, ColumnClient},
		},
		{
			role: Master,
			columns: []Column{ColumnID, ColumnDate, ColumnEquipmentType, ColumnModel, ColumnProblem,
				ColumnStatus, ColumnCompletionDate, ColumnParts, ColumnAction},
		},
		{
			role: Operator,
			columns: []Column{ColumnID, ColumnDate, ColumnEquipmentType, ColumnModel, ColumnProblem,
				ColumnStatus, ColumnMaster, ColumnClient, ColumnPhone, ColumnAction},
		},
		{
			role: Customer,
			columns: []Column{ColumnID, ColumnDate, ColumnEquipmentType, ColumnModel, ColumnProblem,
				ColumnStatus, ColumnMaster, ColumnCompletionDate, ColumnComments},
		},
	}

	for _, tt := range tests {
		t.Run(tt.role.String(), func(t *testing.T) {
			p := For(tt.role)
			assert.Equal(t, tt.columns, p.Columns)
			assert.Equal(t, tt.role, p.Role)
			assert.True(t, tt.role.Known())
			assert.Len(t, p.Headers(), len(tt.columns))
		})
	}
}

func TestUnknownRole(t *testing.T) {
	for _, r := range []Role{0, 5, -1, 100} {
		p := For(r)
		assert.Equal(t, []Column{ColumnID, ColumnDate, ColumnEquipmentType, ColumnProblem, ColumnStatus}, p.Columns)
		assert.Empty(t, p.Actions)
		assert.Equal(t, ScopeLimited, p.Scope)
		assert.Equal(t, UnknownRoleLimit, p.Limit)
		assert.False(t, r.Known())
	}
	assert.Equal(t, "Тип 5", For(5).Label)
}

func TestPolicyActions(t *testing.T) {
	tests := []struct {
		role    Role
		allowed []Action
		scope   Scope
	}{
		{role: Manager, scope: ScopeAll},
		{role: Master, allowed: []Action{ActionChangeStatus, ActionAddComment}, scope: ScopeAssigned},
		{role: Operator, allowed: []Action{ActionAssignMaster, ActionCreateRequest}, scope: ScopeAll},
		{role: Customer, allowed: []Action{ActionCreateRequest}, scope: ScopeOwned},
	}

	all := []Action{ActionChangeStatus, ActionAssignMaster, ActionCreateRequest, ActionAddComment}
	for _, tt := range tests {
		p := For(tt.role)
		assert.Equal(t, tt.scope, p.Scope, tt.role.String())
		for _, a := range all {
			assert.Equal(t, contains(tt.allowed, a), p.Can(a), "%s %s", tt.role, a)
		}
	}
}

func TestHeaders(t *testing.T) {
	assert.Equal(t, []string{"ID", "Дата", "Тип оборудования", "Проблема", "Статус"}, For(0).Headers())
	assert.Equal(t, "unknown", Column("unknown").Header())
}

func contains(actions []Action, a Action) bool {
	for _, x := range actions {
		if x == a {
			return true
		}
	}
	return false
}
