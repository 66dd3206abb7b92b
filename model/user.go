package model

type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleVanOwner      = "VAN_OWNER"
	RoleGuardian      = "GUARDIAN"
)

// User holds the local user data relevant to the application (outside of firebase)
type User struct {
	Id          string `db:"firebase_id" json:"id"`
	DisplayName string `db:"display_name" json:"displayName"`
	Role        Role   `db:"role" json:"role"`
	Avatar      string `db:"avatar" json:"avatar"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
