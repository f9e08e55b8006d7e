package models

type Role string

const (
	RoleClient   Role = "CLIENT"
	RoleFarmer   Role = "FARMER"
	RoleEmployee Role = "EMPLOYEE"
	RoleWManager Role = "WMANAGER"
	RoleManager  Role = "MANAGER"
)

type User struct {
	ID      uint    `gorm:"primaryKey" json:"id"`
	Name    string  `gorm:"not null" json:"name"`
	Surname string  `json:"surname"`
	Email   string  `gorm:"uniqueIndex;not null" json:"email"`
	Role    Role    `gorm:"index;not null" json:"role"`
	OIDCID  *string `gorm:"column:oidc_id;uniqueIndex" json:"-"` // OpenID Connect identifier, nil for accounts created outside the OIDC flow
}
