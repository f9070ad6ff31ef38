package transport

import (
	"bytes"
	"encoding/json"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"
)

type LoginRequest struct {
	Username *string `json:"username" validate:"required,min=3,max=100"`
	Password *string `json:"password" validate:"required,min=3,max=100"`
}

func (LoginRequest) ValidationMessages() map[string]string {
	return map[string]string{
		"username.required": "Username is required",
		"username.min":      "Username must be at least 3 characters",
		"username.max":      "Username max 100 characters",
		"username.type":     "Username must be a string",
		"password.required": "Password is required",
		"password.min":      "Password must be at least 3 characters",
		"password.max":      "Password max 100 characters",
		"password.type":     "Password must be a string",
	}
}

// Int64 accepts a JSON number or a string holding one, as long as the value
// is integral: 10, 10.0, 1e1 and "10" all decode to 10, while 1.5 does not.
type Int64 int64

func (n *Int64) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	raw, value := string(b), string(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		raw, value = "string "+strconv.Quote(s), strings.TrimSpace(s)
	}

	v, ok := parseIntegral(value)
	if !ok {
		return &json.UnmarshalTypeError{Value: raw, Type: reflect.TypeOf(*n)}
	}
	*n = Int64(v)
	return nil
}

func parseIntegral(s string) (int64, bool) {
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	// float64(math.MaxInt64) rounds up to 2^63, which no int64 holds
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

type UpdateUserRequest struct {
	Premium *Int64 `json:"premium" validate:"required,gte=0"`
}

func (UpdateUserRequest) ValidationMessages() map[string]string {
	return map[string]string{
		"premium.required": "Premium must be a number",
		"premium.type":     "Premium must be a number",
		"premium.gte":      "Premium must be greater than or equal to 0",
	}
}

type ListUsersQuery struct {
	Limit  int64 `query:"limit" validate:"min=1"`
	Offset int64 `query:"offset" validate:"min=0"`
}

func (ListUsersQuery) ValidationMessages() map[string]string {
	return map[string]string{
		"limit.type":  "Limit must be a number",
		"limit.min":   "Limit must be greater than or equal to 1",
		"offset.type": "Offset must be a number",
		"offset.min":  "Offset must be greater than or equal to 0",
	}
}

type UserView struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	Premium   int64     `json:"premium"`
	CreatedAt time.Time `json:"created_at"`
}

type Paging struct {
	TotalUsers  int64 `json:"total_users"`
	TotalPages  int64 `json:"total_pages"`
	CurrentPage int64 `json:"current_page"`
}

type UserPage struct {
	Users  []UserView `json:"users"`
	Paging Paging     `json:"paging"`
}

type PremiumView struct {
	Premium int64 `json:"premium"`
}
