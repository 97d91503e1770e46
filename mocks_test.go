package auth_test

import (
	"context"
	"sync"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"

	auth "github.com/webshopd/go-auth"
)

// memStore is an in-memory UserStore used across the test suite. It mirrors
// the store contract: lookups report missing records with a not-found error
// and creation enforces email uniqueness.
type memStore struct {
	mu      sync.Mutex
	byEmail map[string]*auth.User
	byID    map[string]*auth.User
	creates int
}

func newMemStore() *memStore {
	return &memStore{
		byEmail: map[string]*auth.User{},
		byID:    map[string]*auth.User{},
	}
}

func (s *memStore) FindByEmail(ctx context.Context, email string) (*auth.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.byEmail[email]
	if !ok {
		return nil, auth.ErrIdentityNotFound
	}

	clone := *user
	return &clone, nil
}

func (s *memStore) FindByID(ctx context.Context, id string) (*auth.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.byID[id]
	if !ok {
		return nil, auth.ErrIdentityNotFound
	}

	clone := *user
	return &clone, nil
}

func (s *memStore) Create(ctx context.Context, record *auth.User) (*auth.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byEmail[record.Email]; ok {
		return nil, goerrors.New("email already taken", goerrors.CategoryConflict)
	}

	clone := *record
	if clone.ID == uuid.Nil {
		clone.ID = uuid.New()
	}
	clone.EnsureRole()

	s.byEmail[clone.Email] = &clone
	s.byID[clone.ID.String()] = &clone
	s.creates++

	out := clone
	return &out, nil
}

func (s *memStore) UpdatePasswordHash(ctx context.Context, email, passwordHash string) (*auth.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.byEmail[email]
	if !ok {
		return nil, auth.ErrIdentityNotFound
	}

	user.PasswordHash = passwordHash

	clone := *user
	return &clone, nil
}

func (s *memStore) delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user, ok := s.byID[id]; ok {
		delete(s.byEmail, user.Email)
		delete(s.byID, id)
	}
}

// faultyStore simulates an unavailable store: every operation fails with an
// infrastructure error.
type faultyStore struct{}

func (faultyStore) FindByEmail(ctx context.Context, email string) (*auth.User, error) {
	return nil, goerrors.New("store unavailable", goerrors.CategoryInternal)
}

func (faultyStore) FindByID(ctx context.Context, id string) (*auth.User, error) {
	return nil, goerrors.New("store unavailable", goerrors.CategoryInternal)
}

func (faultyStore) Create(ctx context.Context, record *auth.User) (*auth.User, error) {
	return nil, goerrors.New("store unavailable", goerrors.CategoryInternal)
}

func (faultyStore) UpdatePasswordHash(ctx context.Context, email, passwordHash string) (*auth.User, error) {
	return nil, goerrors.New("store unavailable", goerrors.CategoryInternal)
}

// testIdentity is a minimal Identity implementation for token tests.
type testIdentity struct {
	id    string
	email string
	role  string
}

func (t testIdentity) ID() string    { return t.id }
func (t testIdentity) Email() string { return t.email }
func (t testIdentity) Role() string  { return t.role }

func testConfig() auth.Config {
	return auth.Config{
		SigningKey: "test-signing-key",
		TokenTTL:   auth.DefaultTokenTTL,
		Issuer:     "test-issuer",
	}
}

func seedUser(s *memStore, email, password string, role auth.UserRole) *auth.User {
	hash, err := auth.HashPassword(password)
	if err != nil {
		panic(err)
	}

	user, err := s.Create(context.Background(), &auth.User{
		Email:        email,
		FirstName:    "Seed",
		LastName:     "User",
		Gender:       "F",
		PasswordHash: hash,
		Role:         role,
	})
	if err != nil {
		panic(err)
	}

	return user
}
