package auth

import (
	"context"

	"github.com/goliatone/go-errors"
)

// RestorationInput is the raw payload for a password restoration.
type RestorationInput struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

// RestorationStrategy overwrites the stored password hash for an existing
// account. Knowing the email is the only proof required; no old-password
// check is performed, matching the surrounding restore flow.
type RestorationStrategy struct {
	store  UserStore
	logger Logger
}

// NewRestorationStrategy constructs the strategy with its store handle.
func NewRestorationStrategy(store UserStore) *RestorationStrategy {
	return &RestorationStrategy{store: store, logger: defLogger{}}
}

func (s *RestorationStrategy) WithLogger(l Logger) *RestorationStrategy {
	s.logger = l
	return s
}

func (s *RestorationStrategy) Name() string { return "restoration" }

// Verify runs one restoration attempt for the given email and new password.
func (s *RestorationStrategy) Verify(ctx context.Context, input RestorationInput) (Verdict, error) {
	if input.Email == "" || input.Password == "" {
		return rejected(OutcomeValidationFailed,
			errors.New("email and password are required", errors.CategoryValidation)), nil
	}

	if _, err := s.store.FindByEmail(ctx, input.Email); err != nil {
		if errors.IsNotFound(err) {
			return rejected(OutcomeNotFound, ErrIdentityNotFound), nil
		}
		return Verdict{}, errors.Wrap(err, errors.CategoryInternal, "restoration lookup failed")
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		return Verdict{}, errors.Wrap(err, errors.CategoryInternal, "failed to hash password")
	}

	updated, err := s.store.UpdatePasswordHash(ctx, input.Email, hash)
	if err != nil {
		if errors.IsNotFound(err) {
			// Record vanished between lookup and update.
			return rejected(OutcomeNotFound, ErrIdentityNotFound), nil
		}
		return Verdict{}, errors.Wrap(err, errors.CategoryInternal, "could not update password")
	}

	return accepted(OutcomeUpdated, updated), nil
}
