package tokens

import "github.com/golang-jwt/jwt/v5"

const (
	RoleMember = "member"
	RoleAdmin  = "admin"
	RoleBanned = "banned"
)

// Claims is the payload the auth gateway signs into every session token.
type Claims struct {
	UserID   int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	AppID    string `json:"app_id"`
	IsActive bool   `json:"is_active"`
	jwt.RegisteredClaims
}

func (c *Claims) IsAdmin() bool  { return c.Role == RoleAdmin }
func (c *Claims) IsBanned() bool { return c.Role == RoleBanned }
