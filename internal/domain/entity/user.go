package entity

import "time"

// Roles válidos para User.
const (
	RoleSuperAdmin        = "super_admin"
	RoleInventoryHandler  = "inventory_handler"
	RoleStockInManager    = "stock_in_manager"
	RoleStockOutManager   = "stock_out_manager"
	RoleAttendanceManager = "attendance_manager"
)

// IsValidRole indica si role es uno de los roles conocidos.
func IsValidRole(role string) bool {
	switch role {
	case RoleSuperAdmin, RoleInventoryHandler, RoleStockInManager, RoleStockOutManager, RoleAttendanceManager:
		return true
	}
	return false
}

// User representa un operador del sistema.
type User struct {
	ID           int64
	Username     string
	Name         string
	PasswordHash string // bcrypt
	Role         string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
