package service

import (
	"errors"
	"fmt"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrNoUsers          = errors.New("user data not exist")
	ErrPremiumExhausted = errors.New("premium is already zero or user not found")
	ErrNoToken          = errors.New("gateway accepted login but returned no token")
)

// RejectedError is a login the gateway refused. Status and Message are
// passed through to the client as they are.
type RejectedError struct {
	Status  int
	Message any
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("gateway rejected login: status %d: %v", e.Status, e.Message)
}
