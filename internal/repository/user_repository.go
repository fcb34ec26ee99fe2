package repository

import (
	"time"

	"cinema-box-office/internal/model"
)

// UserRepo manages the box-office employee accounts and their refresh
// tokens.  Accounts enter the store through seeding or a snapshot
// restore; there is no self-registration.
type UserRepo struct {
	store *Store
}

// NewUserRepo constructs a user repository over the given store.
func NewUserRepo(store *Store) *UserRepo {
	return &UserRepo{store: store}
}

// GetByUsername returns a copy of the user with the given username or
// ErrUserNotFound.
func (r *UserRepo) GetByUsername(username string) (*model.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	u, ok := r.store.users[username]
	if !ok {
		return nil, ErrUserNotFound
	}
	dup := *u
	return &dup, nil
}

// Create inserts a user account.  An existing account with the same
// username is overwritten; seeding is the only caller.
func (r *UserRepo) Create(u model.User) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.users[u.Username] = &u
}

// StoreRefreshToken records an issued refresh token under its SHA-256
// hash.
func (r *UserRepo) StoreRefreshToken(t model.RefreshToken) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.tokens[t.TokenHash] = t
}

// LookupRefreshToken resolves a token hash to its record.  It returns
// ErrTokenInvalid when the hash is unknown or the token has expired;
// expired tokens are removed on the way out.
func (r *UserRepo) LookupRefreshToken(hash string, now time.Time) (model.RefreshToken, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	t, ok := r.store.tokens[hash]
	if !ok {
		return model.RefreshToken{}, ErrTokenInvalid
	}
	if now.After(t.ExpiresAt) {
		delete(r.store.tokens, hash)
		return model.RefreshToken{}, ErrTokenInvalid
	}
	return t, nil
}

// DeleteRefreshToken revokes a refresh token by hash.  Deleting an
// unknown hash is a no-op.
func (r *UserRepo) DeleteRefreshToken(hash string) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.tokens, hash)
}
