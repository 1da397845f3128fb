package entity

type UserRole string

const (
	UserRoleSuper   UserRole = "super"
	UserRoleRegular UserRole = "regular"
)

type User struct {
	Base
	Email        string   `db:"email"`
	PasswordHash string   `db:"password_hash"`
	Role         UserRole `db:"role"`
}
