package user

import (
	"database/sql"
	"time"
)

// User is a backend account: admins and staff manage content and orders,
// customers only see their own orders.
type User struct {
	ID        int64        `db:"id" json:"id"`
	Email     string       `db:"email" json:"email"`
	Password  string       `db:"password" json:"-"`
	Role      string       `db:"role" json:"role"`
	LastLogin sql.NullTime `db:"last_login" json:"-"`
	CreatedAt time.Time    `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time    `db:"updated_at" json:"updatedAt"`
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the signed access token.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	User        Public `json:"user"`
}

// Public is the user shape exposed to clients.
type Public struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// CreateUserRequest is the admin payload for creating an account.
type CreateUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// ChangePasswordRequest is the payload for changing one's own password.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}
