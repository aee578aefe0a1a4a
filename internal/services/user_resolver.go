package services

import (
	"context"
)

// UserResolution is the outcome of asking the identity service about a user.
type UserResolution int

const (
	// UserUnavailable means the answer is unknown: transport failure, timeout,
	// 5xx or a malformed reply.
	UserUnavailable UserResolution = iota
	UserFound
	UserAbsent
)

func (r UserResolution) String() string {
	switch r {
	case UserFound:
		return "found"
	case UserAbsent:
		return "absent"
	default:
		return "unavailable"
	}
}

// UserResolver checks that a user exists in the identity service.
type UserResolver interface {
	ResolveUser(ctx context.Context, userID uint64) (UserResolution, error)
}
