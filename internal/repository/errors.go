// Package repository implements the in-memory store that owns all
// box-office state: the showing catalog, the sales ledger and the user
// set.  This file defines sentinel error values shared across the
// repositories.  Higher layers such as handlers use these sentinels to
// distinguish failure scenarios, e.g. translating ErrHasSoldTickets
// into an HTTP 409 response.
package repository

import "errors"

// ErrShowingNotFound is returned when no showing with the requested id
// exists in the catalog.
var ErrShowingNotFound = errors.New("showing not found")

// ErrHasSoldTickets is returned when a showing cannot be removed
// because at least one ticket has been sold for it.  The calling layer
// must have obtained user confirmation before attempting removal; the
// catalog enforces the rule unconditionally.
var ErrHasSoldTickets = errors.New("showing has sold tickets")

// ErrRoomUnavailable is returned when a showing cannot be scheduled
// because its time window overlaps another showing in the room.
var ErrRoomUnavailable = errors.New("room unavailable for the requested time slot")

// ErrUserNotFound is returned when no user with the requested username
// exists.
var ErrUserNotFound = errors.New("user not found")

// ErrTokenInvalid is returned when a refresh token is unknown or has
// expired.
var ErrTokenInvalid = errors.New("refresh token invalid or expired")
