package auth

import (
	"context"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/goliatone/go-errors"
)

// FederatedProfile is the identity claim asserted by an external OAuth
// provider. The provider email is treated as authoritative; no secondary
// proof is requested.
type FederatedProfile struct {
	Provider       string `json:"provider"`
	ProviderUserID string `json:"provider_user_id"`
	Email          string `json:"email"`
	DisplayName    string `json:"display_name"`
}

// Validate will validate the profile
func (p FederatedProfile) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Provider, validation.Required),
		validation.Field(&p.Email, validation.Required, is.Email),
	)
}

// SplitDisplayName breaks a provider display name into first and last name:
// first whitespace token becomes the first name, the remainder the last
// name, empty when absent.
func SplitDisplayName(name string) (first, last string) {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

// FederatedStrategy verifies provider-asserted profiles. Unknown emails get
// a fresh record with an unusable password hash; known emails return the
// existing record unchanged, with no profile sync on repeat logins.
type FederatedStrategy struct {
	store  UserStore
	logger Logger
}

// NewFederatedStrategy constructs the strategy with its store handle.
func NewFederatedStrategy(store UserStore) *FederatedStrategy {
	return &FederatedStrategy{store: store, logger: defLogger{}}
}

func (s *FederatedStrategy) WithLogger(l Logger) *FederatedStrategy {
	s.logger = l
	return s
}

func (s *FederatedStrategy) Name() string { return "federated" }

// Verify runs one federated login for the given provider profile.
func (s *FederatedStrategy) Verify(ctx context.Context, profile FederatedProfile) (Verdict, error) {
	if err := profile.Validate(); err != nil {
		return rejected(OutcomeValidationFailed,
			errors.Wrap(err, errors.CategoryValidation, "invalid federated profile")), nil
	}

	user, err := s.store.FindByEmail(ctx, profile.Email)
	if err == nil {
		return accepted(OutcomeVerified, user), nil
	}
	if !errors.IsNotFound(err) {
		return Verdict{}, errors.Wrap(err, errors.CategoryInternal, "federated lookup failed")
	}

	first, last := SplitDisplayName(profile.DisplayName)

	record := &User{
		Email:        profile.Email,
		FirstName:    first,
		LastName:     last,
		Gender:       GenderNotApplicable,
		PasswordHash: UnusablePasswordHash,
		Role:         RoleStandard,
	}

	created, err := s.store.Create(ctx, record)
	if err != nil {
		return Verdict{}, errors.Wrap(err, errors.CategoryInternal, "could not create federated user")
	}

	s.logger.Info("created user from %s profile", profile.Provider)
	return accepted(OutcomeCreated, created), nil
}
