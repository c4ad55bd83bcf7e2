// Copyright (c) 2026 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package content

import (
	"context"
	"log/slog"

	"github.com/danielhkuo/atelier/auth"
	"github.com/danielhkuo/atelier/models"
	"github.com/danielhkuo/atelier/store"
)

// Users manages admin/editor accounts. Password hashes never leave
// this package: every returned User is sanitized.
type Users struct {
	store *store.Store
}

func NewUsers(st *store.Store) *Users {
	return &Users{store: st}
}

func (u *Users) coll() *store.Collection {
	return u.store.Collection(store.Users)
}

func (u *Users) List(ctx context.Context) ([]models.User, error) {
	docs, err := u.coll().Find(nil).Sort("email", false).All(ctx)
	if err != nil {
		return nil, err
	}
	users, err := docsTo[models.User](docs)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i] = users[i].Sanitized()
	}
	return users, nil
}

// Authenticate checks credentials and returns the sanitized user.
// A missing account and a wrong password are indistinguishable to the
// caller.
func (u *Users) Authenticate(ctx context.Context, email, password string) (models.User, error) {
	doc, err := u.coll().FindOne(ctx, store.Filter{"email": email})
	if err != nil {
		return models.User{}, err
	}
	if doc == nil {
		return models.User{}, auth.ErrInvalidCredentials
	}
	user, err := docTo[models.User](doc)
	if err != nil {
		return models.User{}, err
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return models.User{}, auth.ErrInvalidCredentials
	}
	return user.Sanitized(), nil
}

// Create adds an account with a bcrypt-hashed password. Emails are
// unique. Role defaults to "user".
func (u *Users) Create(ctx context.Context, req models.CreateUserRequest) (models.User, error) {
	existing, err := u.coll().FindOne(ctx, store.Filter{"email": req.Email})
	if err != nil {
		return models.User{}, err
	}
	if existing != nil {
		return models.User{}, ErrEmailTaken
	}
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return models.User{}, err
	}
	role := req.Role
	if role == "" {
		role = models.RoleUser
	}
	doc, err := toDoc(models.User{Email: req.Email, PasswordHash: hash, Role: role})
	if err != nil {
		return models.User{}, err
	}
	created, err := u.coll().Create(ctx, doc)
	if err != nil {
		return models.User{}, err
	}
	user, err := docTo[models.User](created)
	if err != nil {
		return models.User{}, err
	}
	return user.Sanitized(), nil
}

// Delete removes an account. A user may never delete their own
// account, regardless of role; actorID is the caller's id.
func (u *Users) Delete(ctx context.Context, id, actorID int64) error {
	if id == actorID {
		return ErrSelfDelete
	}
	n, err := u.coll().DeleteByID(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ChangePassword verifies the current password and stores a new hash.
func (u *Users) ChangePassword(ctx context.Context, id int64, current, updated string) error {
	doc, err := u.coll().FindByID(ctx, id)
	if err != nil {
		return err
	}
	if doc == nil {
		return ErrNotFound
	}
	user, err := docTo[models.User](doc)
	if err != nil {
		return err
	}
	if !auth.CheckPassword(user.PasswordHash, current) {
		return auth.ErrInvalidCredentials
	}
	hash, err := auth.HashPassword(updated)
	if err != nil {
		return err
	}
	_, err = u.coll().UpdateByID(ctx, id, store.Doc{"password_hash": hash})
	return err
}

// EnsureAdmin provisions an admin account at startup when none exists,
// so the admin UI is never locked out.
func (u *Users) EnsureAdmin(ctx context.Context, email, password string) error {
	n, err := u.coll().Count(ctx, store.Filter{"role": models.RoleAdmin})
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	_, err = u.Create(ctx, models.CreateUserRequest{Email: email, Password: password, Role: models.RoleAdmin})
	if err != nil {
		return err
	}
	slog.Info("provisioned initial admin user", "email", email)
	return nil
}
