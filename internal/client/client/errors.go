package client

import (
	"errors"
	"fmt"
)

var (
	ErrUnavailable   = errors.New("remote unavailable")
	ErrUnauthorized  = fmt.Errorf("%w: unauthorized", ErrUnavailable)
	ErrNotFound      = fmt.Errorf("%w: not found", ErrUnavailable)
	ErrNotConfigured = fmt.Errorf("%w: remote not configured", ErrUnavailable)
)

func requireUser(userID string) {
	if userID == "" {
		panic("client: remote call without user id")
	}
}
