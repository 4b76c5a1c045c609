package domain

import "time"

const RoleAdmin = "ADMIN"

// User is an account document in the users collection. Password always holds
// a bcrypt hash, never plaintext.
type User struct {
	Username  string    `json:"username" bson:"username" validate:"required"`
	Password  string    `json:"-" bson:"password" validate:"required"`
	Email     string    `json:"email" bson:"email" validate:"required,email"`
	Roles     []string  `json:"roles" bson:"roles" validate:"required,min=1,dive,required"`
	Active    bool      `json:"active" bson:"active"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// HasRole reports whether the user carries the given role.
func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}
