package auth

import (
	"context"

	"github.com/google/uuid"

	"github.com/avasquez/tally/internal/models"
	"github.com/avasquez/tally/internal/storage"
)

// Ensure UserStore implements UserStorage
var _ UserStorage = (*UserStore)(nil)

// UserStore persists users in the "users" collection.
type UserStore struct {
	users *storage.Records[models.User]
}

// NewUserStore creates a user store over the given record store.
func NewUserStore(store storage.Store) *UserStore {
	return &UserStore{
		users: storage.NewRecords[models.User](store, storage.CollectionUsers),
	}
}

// CreateUser appends a new user to the collection, assigning an ID if unset.
func (s *UserStore) CreateUser(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}

	_, err := s.users.Update(ctx, func(users []models.User) ([]models.User, error) {
		return append(users, *user), nil
	})
	return err
}

// GetUserByEmail retrieves a user by email address.
// Returns nil without an error if no user matches.
func (s *UserStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	users, err := s.users.Load(ctx)
	if err != nil {
		return nil, err
	}

	for i := range users {
		if users[i].Email == email {
			return &users[i], nil
		}
	}
	return nil, nil
}

// GetUserByID retrieves a user by ID.
// Returns nil without an error if no user matches.
func (s *UserStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	users, err := s.users.Load(ctx)
	if err != nil {
		return nil, err
	}

	for i := range users {
		if users[i].ID == id {
			return &users[i], nil
		}
	}
	return nil, nil
}
