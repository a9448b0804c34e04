package models

import (
	"vilolog/common"
	"vilolog/docstore"
)

// UserVersion is the current user schema version tag.
const UserVersion = 0

const (
	RoleAdmin       = "admin"
	RoleAuthor      = "author"
	RoleDeactivated = "deactivated"
)

// User is the typed form of a persisted "user" document. The JSON tags match
// the document shape; the raw password is never stored, only its bcrypt hash.
type User struct {
	ID           string `json:"_id" validate:"required"`
	BlogID       string `json:"blogId"`
	Version      int    `json:"version"`
	Type         string `json:"type" validate:"required,eq=user"`
	Name         string `json:"name" validate:"required"`
	Email        string `json:"email" validate:"required,looseemail"`
	PasswordHash string `json:"hpw" validate:"required"`
	CreatedAt    int64  `json:"createdAt" validate:"required"`
	Role         string `json:"role" validate:"required,oneof=admin author deactivated"`
}

func ValidateUser(u *User, blogID string) error {
	if u.BlogID != blogID {
		return &common.SchemaError{Entity: "user", Detail: "blogId mismatch"}
	}
	if u.Version != UserVersion {
		return &common.SchemaError{Entity: "user", Detail: "unexpected schema version"}
	}
	if err := validate.Struct(u); err != nil {
		return &common.SchemaError{Entity: "user", Detail: err.Error()}
	}
	return nil
}

// BuildUser constructs a new, unsaved, valid user with a fresh id, hashed
// password and current timestamp.
func BuildUser(name, email, password, role, blogID string) (*User, error) {
	hpw, err := common.HashPassword(password)
	if err != nil {
		return nil, err
	}
	u := &User{
		ID:           common.GenerateID(),
		BlogID:       blogID,
		Version:      UserVersion,
		Type:         "user",
		Name:         name,
		Email:        email,
		PasswordHash: hpw,
		CreatedAt:    common.Now(),
		Role:         role,
	}
	if err := ValidateUser(u, blogID); err != nil {
		return nil, err
	}
	return u, nil
}

func InsertUser(s *docstore.Store, u *User, blogID string) error {
	if err := ValidateUser(u, blogID); err != nil {
		return err
	}
	return s.InsertOne(u.ID, u)
}

func ReplaceUser(s *docstore.Store, u *User, blogID string) error {
	if err := ValidateUser(u, blogID); err != nil {
		return err
	}
	return s.ReplaceOne(u.ID, u)
}

// There is no single-user delete: accounts are deactivated via role change,
// never removed.

func userFilter(blogID string, extra docstore.Filter) docstore.Filter {
	f := docstore.Filter{"type": "user", "blogId": blogID}
	for k, v := range extra {
		f[k] = v
	}
	return f
}

func getUser(s *docstore.Store, extra docstore.Filter, blogID string) (*User, error) {
	var u User
	found, err := s.FindOne(userFilter(blogID, extra), &u)
	if err != nil || !found {
		return nil, err
	}
	if u.Version != UserVersion {
		return nil, &common.SchemaError{Entity: "user", Detail: "unexpected schema version"}
	}
	return &u, nil
}

// GetUserByID returns nil without error when no such user exists.
func GetUserByID(s *docstore.Store, id, blogID string) (*User, error) {
	return getUser(s, docstore.Filter{"_id": id}, blogID)
}

func GetUserByEmail(s *docstore.Store, email, blogID string) (*User, error) {
	return getUser(s, docstore.Filter{"email": email}, blogID)
}

// GetAnyUser returns an arbitrary user of the tenant, or nil when the tenant
// has none. Setup relies on this.
func GetAnyUser(s *docstore.Store, blogID string) (*User, error) {
	return getUser(s, docstore.Filter{}, blogID)
}

func GetAllUsers(s *docstore.Store, blogID string) ([]User, error) {
	var users []User
	err := s.Find(userFilter(blogID, nil), &users)
	return users, err
}

// DeleteAllUsers bulk-deletes every user of the tenant. Used only by the
// full-reset operation.
func DeleteAllUsers(s *docstore.Store, blogID string) error {
	users, err := GetAllUsers(s, blogID)
	if err != nil {
		return err
	}
	for _, u := range users {
		if err := s.DeleteOne(u.ID); err != nil {
			return err
		}
	}
	return nil
}
