package service

import (
	"context"
	"errors"
	"strings"

	"github.com/iliyamo/hbnb/internal/access"
	"github.com/iliyamo/hbnb/internal/errs"
	"github.com/iliyamo/hbnb/internal/model"
	"github.com/iliyamo/hbnb/internal/queue"
	"github.com/iliyamo/hbnb/internal/repository"
	"github.com/iliyamo/hbnb/internal/validation"
)

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CreateUser registers a user on behalf of an admin. The email must not be
// taken by another account, ignoring case.
func (s *Service) CreateUser(ctx context.Context, actor *access.Identity, in model.UserInput) (*model.User, error) {
	if err := authorize(actor, access.AdminOnly, ""); err != nil {
		return nil, err
	}
	return s.createUser(ctx, actor, in)
}

func (s *Service) createUser(ctx context.Context, actor *access.Identity, in model.UserInput) (*model.User, error) {
	email := normalizeEmail(in.Email)
	if _, taken, err := exists(ctx, s.store.Users, "email", email); err != nil {
		return nil, err
	} else if taken {
		return nil, errs.NewDuplicate("Email already registered")
	}

	u := &model.User{
		Base:      model.NewBase(s.now()),
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Email:     email,
		IsAdmin:   in.IsAdmin,
	}
	fields := append(validation.ValidateUser(u), validation.ValidatePassword(in.Password)...)
	if len(fields) > 0 {
		return nil, errs.NewValidationError(fields)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, errs.Wrap(err, "hash password")
	}
	u.PasswordHash = hash

	if err := s.store.Users.Add(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, errs.NewDuplicate("Email already registered")
		}
		return nil, errs.Wrap(err, "add user")
	}
	s.log.Info().Str("user_id", u.ID).Bool("is_admin", u.IsAdmin).Msg("user created")
	s.emit(ctx, queue.UserCreated, u.ID, actor)
	return u, nil
}

func (s *Service) GetUser(ctx context.Context, id string) (*model.User, error) {
	u, err := s.store.Users.Get(ctx, id)
	if err != nil {
		return nil, lookup(err, "User")
	}
	return u, nil
}

func (s *Service) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	u, err := s.store.Users.GetByAttribute(ctx, "email", normalizeEmail(email))
	if err != nil {
		return nil, lookup(err, "User")
	}
	return u, nil
}

func (s *Service) ListUsers(ctx context.Context) ([]*model.User, error) {
	users, err := s.store.Users.GetAll(ctx)
	if err != nil {
		return nil, errs.Wrap(err, "list users")
	}
	return users, nil
}

// UpdateUser changes a user on behalf of actor. Users may edit their own
// names; admins may edit any field of any user, including the admin flag.
func (s *Service) UpdateUser(ctx context.Context, actor *access.Identity, id string, patch model.UserPatch) (*model.User, error) {
	if err := authorize(actor, access.OwnerOrAdmin, id); err != nil {
		return nil, err
	}
	if !actor.IsAdmin && (patch.Email != nil || patch.Password != nil || patch.IsAdmin != nil) {
		return nil, errs.NewValidationError([]errs.FieldError{{
			Field:   restrictedField(patch),
			Kind:    errs.ViolationNotAllowed,
			Message: "You cannot modify email or password",
		}})
	}
	return s.updateUser(ctx, actor, id, patch)
}

func (s *Service) updateUser(ctx context.Context, actor *access.Identity, id string, patch model.UserPatch) (*model.User, error) {
	current, err := s.store.Users.Get(ctx, id)
	if err != nil {
		return nil, lookup(err, "User")
	}
	patch.PasswordHash = nil

	if patch.Email != nil {
		email := normalizeEmail(*patch.Email)
		patch.Email = &email
		if !strings.EqualFold(email, current.Email) {
			other, taken, err := exists(ctx, s.store.Users, "email", email)
			if err != nil {
				return nil, err
			}
			if taken && other.ID != id {
				return nil, errs.NewDuplicate("Email already registered")
			}
		}
	}
	for _, name := range []*string{patch.FirstName, patch.LastName} {
		if name != nil {
			*name = strings.TrimSpace(*name)
		}
	}

	candidate := *current
	patch.Apply(&candidate)
	fields := validation.ValidateUser(&candidate)
	if patch.Password != nil {
		fields = append(fields, validation.ValidatePassword(*patch.Password)...)
	}
	if len(fields) > 0 {
		return nil, errs.NewValidationError(fields)
	}

	if patch.Password != nil {
		hash, err := s.hasher.Hash(*patch.Password)
		if err != nil {
			return nil, errs.Wrap(err, "hash password")
		}
		patch.PasswordHash = &hash
		patch.Password = nil
	}

	updated, err := s.store.Users.Update(ctx, id, patch)
	switch {
	case errors.Is(err, repository.ErrDuplicate):
		return nil, errs.NewDuplicate("Email already registered")
	case err != nil:
		return nil, lookup(err, "User")
	}
	s.log.Info().Str("user_id", id).Str("actor_id", actorID(actor)).Msg("user updated")
	s.emit(ctx, queue.UserUpdated, id, actor)
	return updated, nil
}

func restrictedField(p model.UserPatch) string {
	switch {
	case p.Email != nil:
		return "email"
	case p.Password != nil:
		return "password"
	default:
		return "is_admin"
	}
}

// Authenticate checks credentials and returns the matching user. Unknown
// emails and wrong passwords fail the same way.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	invalid := errs.NewAuthentication("Invalid credentials")
	u, found, err := exists(ctx, s.store.Users, "email", normalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if !found || !s.hasher.Verify(password, u.PasswordHash) {
		return nil, invalid
	}
	return u, nil
}

// SetAdmin grants or revokes the admin flag without an acting identity.
// It backs the startup admin seed.
func (s *Service) SetAdmin(ctx context.Context, id string, admin bool) (*model.User, error) {
	return s.updateUser(ctx, nil, id, model.UserPatch{IsAdmin: &admin})
}

// EnsureAdmin makes sure an admin account with email exists. An existing
// account is promoted; otherwise one is created with password.
func (s *Service) EnsureAdmin(ctx context.Context, in model.UserInput) (*model.User, error) {
	existing, found, err := exists(ctx, s.store.Users, "email", normalizeEmail(in.Email))
	if err != nil {
		return nil, err
	}
	if found {
		if existing.IsAdmin {
			return existing, nil
		}
		return s.SetAdmin(ctx, existing.ID, true)
	}
	in.IsAdmin = true
	return s.createUser(ctx, nil, in)
}
