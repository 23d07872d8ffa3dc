package models

// UserRole is the join row between users and roles.
type UserRole struct {
	UserID string `json:"user_id" gorm:"primaryKey;type:uuid"`
	RoleID string `json:"role_id" gorm:"primaryKey;type:uuid"`
	User   *User  `json:"user,omitempty" gorm:"foreignKey:UserID;references:ID"`
	Role   *Role  `json:"role,omitempty" gorm:"foreignKey:RoleID;references:ID"`
}
