package usecase

import "github.com/scandent/orline/internal/domain/model"

// Actor is the resolved identity performing an operation.
type Actor struct {
	UserID int64
	Role   model.Role
	TeamID int64
}

// canView reports whether the actor may open the order at all: doctors see
// their own orders, employees their team's, admins everything.
func canView(a Actor, o *model.Order) bool {
	switch a.Role {
	case model.RoleAdmin:
		return true
	case model.RoleEmployee:
		return a.TeamID != 0 && o.TeamID == a.TeamID
	case model.RoleDoctor:
		return o.DoctorID == a.UserID
	}
	return false
}
