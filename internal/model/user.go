package model

// User represents an account as stored in the `users` table. The
// password hash is never serialised; handlers return the struct as is.
//
// Fields:
//
//	FirstName    – given name, at most 50 characters.
//	LastName     – family name, at most 50 characters.
//	Email        – login identifier, unique ignoring case.
//	PasswordHash – bcrypt hash of the password.
//	IsAdmin      – grants the admin-only routes.
type User struct {
	Base
	FirstName    string `json:"first_name" db:"first_name" validate:"notblank,max=50"`
	LastName     string `json:"last_name" db:"last_name" validate:"notblank,max=50"`
	Email        string `json:"email" db:"email" validate:"notblank,max=120,email_address"`
	PasswordHash string `json:"-" db:"password"`
	IsAdmin      bool   `json:"is_admin" db:"is_admin"`
}

func (u *User) Attribute(name string) (any, bool) {
	switch name {
	case "first_name":
		return u.FirstName, true
	case "last_name":
		return u.LastName, true
	case "email":
		return u.Email, true
	case "is_admin":
		return u.IsAdmin, true
	}
	return u.Base.attribute(name)
}

// UserInput is the payload accepted when creating a user.
type UserInput struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	IsAdmin   bool   `json:"is_admin"`
}

// UserPatch lists the user fields an update may change. A nil field was
// not provided. PasswordHash is filled by the service after hashing
// Password and is never read from a request body.
type UserPatch struct {
	FirstName    *string `json:"first_name"`
	LastName     *string `json:"last_name"`
	Email        *string `json:"email"`
	Password     *string `json:"password"`
	IsAdmin      *bool   `json:"is_admin"`
	PasswordHash *string `json:"-"`
}

func (p UserPatch) Apply(u *User) {
	if p.FirstName != nil {
		u.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		u.LastName = *p.LastName
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.IsAdmin != nil {
		u.IsAdmin = *p.IsAdmin
	}
	if p.PasswordHash != nil {
		u.PasswordHash = *p.PasswordHash
	}
}

// OwnerView is the nested user shown inside place responses. Email is
// only filled on the detail view.
type OwnerView struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email,omitempty"`
}
