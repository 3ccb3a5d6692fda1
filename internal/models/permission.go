package models

// Permission flags carried in staff tokens issued by the identity provider
const (
	PermissionOrdersManage = "orders:manage"
	PermissionMenuManage   = "menu:manage"
	PermissionTablesManage = "tables:manage"
)

// StaffIdentity is the opaque staff principal resolved from a verified token
type StaffIdentity struct {
	UserID       string   `json:"userId"`
	RestaurantID int64    `json:"restaurantId"`
	Permissions  []string `json:"permissions"`
}

func (s *StaffIdentity) HasPermission(name string) bool {
	for _, p := range s.Permissions {
		if p == name {
			return true
		}
	}
	return false
}
