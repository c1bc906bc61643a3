package service

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"contacts-api/internal/model"
	"contacts-api/internal/store"
)

// UserService is CRUD over user accounts. Deleting a user cascades to
// their contacts at the store level.
type UserService struct {
	users *store.UserStore
}

func NewUserService(users *store.UserStore) *UserService {
	return &UserService{users: users}
}

func (s *UserService) Create(name, email, password string) (*model.User, error) {
	taken, err := s.users.EmailTaken(email, "")
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if taken {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(name, email, string(hash))
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (s *UserService) List() ([]model.User, error) {
	users, err := s.users.List()
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	if users == nil {
		users = []model.User{}
	}
	return users, nil
}

func (s *UserService) Get(id string) (*model.User, error) {
	user, err := s.users.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// Update applies a partial update: empty fields keep their current value.
// A changed email must not collide with another account; a new password is
// re-hashed.
func (s *UserService) Update(id, name, email, password string) (*model.User, error) {
	existing, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if name == "" {
		name = existing.Name
	}
	if email == "" {
		email = existing.Email
	}
	if email != existing.Email {
		taken, err := s.users.EmailTaken(email, id)
		if err != nil {
			return nil, fmt.Errorf("check email: %w", err)
		}
		if taken {
			return nil, ErrEmailTaken
		}
	}

	passwordHash := existing.Password
	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		passwordHash = string(hash)
	}

	user, err := s.users.Update(id, name, email, passwordHash)
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

// Delete removes the user and returns the deleted record.
func (s *UserService) Delete(id string) (*model.User, error) {
	existing, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := s.users.Delete(id); err != nil {
		return nil, fmt.Errorf("delete user: %w", err)
	}
	return existing, nil
}
