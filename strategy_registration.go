package auth

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/goliatone/go-errors"
)

// RegistrationInput is the raw payload for a local registration.
type RegistrationInput struct {
	Email     string `form:"email" json:"email"`
	Password  string `form:"password" json:"password"`
	FirstName string `form:"first_name" json:"first_name"`
	LastName  string `form:"last_name" json:"last_name"`
	Gender    string `form:"gender" json:"gender"`
}

// Validate will validate the payload
func (r RegistrationInput) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, validation.Length(6, 100), is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(4, 100)),
		validation.Field(&r.FirstName, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.LastName, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Gender, validation.Required, validation.Length(1, 30)),
	)
}

// RegistrationStrategy verifies local registrations: it rejects duplicate
// emails and otherwise persists a new record with a hashed password.
type RegistrationStrategy struct {
	store  UserStore
	logger Logger
}

// NewRegistrationStrategy constructs the strategy with its store handle.
func NewRegistrationStrategy(store UserStore) *RegistrationStrategy {
	return &RegistrationStrategy{store: store, logger: defLogger{}}
}

func (s *RegistrationStrategy) WithLogger(l Logger) *RegistrationStrategy {
	s.logger = l
	return s
}

func (s *RegistrationStrategy) Name() string { return "registration" }

// Verify runs one registration attempt. Rejections come back as a Verdict;
// the error return is reserved for store faults.
func (s *RegistrationStrategy) Verify(ctx context.Context, input RegistrationInput) (Verdict, error) {
	if err := input.Validate(); err != nil {
		return rejected(OutcomeValidationFailed,
			errors.Wrap(err, errors.CategoryValidation, "invalid registration payload")), nil
	}

	if _, err := s.store.FindByEmail(ctx, input.Email); err == nil {
		return rejected(OutcomeAlreadyExists, ErrIdentityExists), nil
	} else if !errors.IsNotFound(err) {
		return Verdict{}, errors.Wrap(err, errors.CategoryInternal, "registration lookup failed")
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		return Verdict{}, errors.Wrap(err, errors.CategoryInternal, "failed to hash password")
	}

	user := &User{
		Email:        input.Email,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Gender:       input.Gender,
		PasswordHash: hash,
		Role:         RoleStandard,
	}

	created, err := s.store.Create(ctx, user)
	if err != nil {
		return Verdict{}, errors.Wrap(err, errors.CategoryInternal, "could not create user")
	}

	return accepted(OutcomeCreated, created), nil
}
