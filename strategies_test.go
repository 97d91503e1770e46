package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	auth "github.com/webshopd/go-auth"
)

func validRegistration() auth.RegistrationInput {
	return auth.RegistrationInput{
		Email:     "grace@example.com",
		Password:  "s3cret-password",
		FirstName: "Grace",
		LastName:  "Hopper",
		Gender:    "F",
	}
}

func TestRegistrationStrategy(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a new user", func(t *testing.T) {
		store := newMemStore()
		strategy := auth.NewRegistrationStrategy(store)

		verdict, err := strategy.Verify(ctx, validRegistration())
		require.NoError(t, err)

		assert.Equal(t, auth.OutcomeCreated, verdict.Outcome)
		assert.False(t, verdict.Rejected())
		require.NotNil(t, verdict.User)
		assert.Equal(t, "grace@example.com", verdict.User.Email)
		assert.Equal(t, auth.RoleStandard, verdict.User.Role)

		assert.NotEqual(t, "s3cret-password", verdict.User.PasswordHash)
		assert.NoError(t, auth.ComparePasswordAndHash("s3cret-password", verdict.User.PasswordHash))
	})

	t.Run("duplicate email rejected as already exists", func(t *testing.T) {
		store := newMemStore()
		strategy := auth.NewRegistrationStrategy(store)

		_, err := strategy.Verify(ctx, validRegistration())
		require.NoError(t, err)

		verdict, err := strategy.Verify(ctx, validRegistration())
		require.NoError(t, err)

		assert.Equal(t, auth.OutcomeAlreadyExists, verdict.Outcome)
		assert.True(t, verdict.Rejected())
		assert.Nil(t, verdict.User)
		assert.ErrorIs(t, verdict.Reason, auth.ErrIdentityExists)
		assert.Equal(t, 1, store.creates)
	})

	t.Run("missing fields rejected structurally", func(t *testing.T) {
		store := newMemStore()
		strategy := auth.NewRegistrationStrategy(store)

		for name, mutate := range map[string]func(*auth.RegistrationInput){
			"email":      func(in *auth.RegistrationInput) { in.Email = "" },
			"password":   func(in *auth.RegistrationInput) { in.Password = "" },
			"first name": func(in *auth.RegistrationInput) { in.FirstName = "" },
			"last name":  func(in *auth.RegistrationInput) { in.LastName = "" },
			"gender":     func(in *auth.RegistrationInput) { in.Gender = "" },
		} {
			t.Run("missing "+name, func(t *testing.T) {
				input := validRegistration()
				mutate(&input)

				verdict, err := strategy.Verify(ctx, input)
				require.NoError(t, err)

				assert.Equal(t, auth.OutcomeValidationFailed, verdict.Outcome)
				assert.True(t, auth.IsValidationError(verdict.Reason))
			})
		}
		assert.Equal(t, 0, store.creates)
	})

	t.Run("store fault surfaces as error, not verdict", func(t *testing.T) {
		strategy := auth.NewRegistrationStrategy(faultyStore{})

		_, err := strategy.Verify(ctx, validRegistration())
		require.Error(t, err)
		assert.False(t, auth.IsAuthRejection(err))
	})
}

func TestRestorationStrategy(t *testing.T) {
	ctx := context.Background()

	t.Run("overwrites the stored hash", func(t *testing.T) {
		store := newMemStore()
		seedUser(store, "grace@example.com", "old-password", auth.RoleStandard)

		strategy := auth.NewRestorationStrategy(store)
		verdict, err := strategy.Verify(ctx, auth.RestorationInput{
			Email:    "grace@example.com",
			Password: "new-password",
		})
		require.NoError(t, err)

		assert.Equal(t, auth.OutcomeUpdated, verdict.Outcome)
		require.NotNil(t, verdict.User)

		stored, err := store.FindByEmail(ctx, "grace@example.com")
		require.NoError(t, err)
		assert.NoError(t, auth.ComparePasswordAndHash("new-password", stored.PasswordHash))
		assert.Error(t, auth.ComparePasswordAndHash("old-password", stored.PasswordHash))
	})

	t.Run("unknown email rejected as not found", func(t *testing.T) {
		strategy := auth.NewRestorationStrategy(newMemStore())

		verdict, err := strategy.Verify(ctx, auth.RestorationInput{
			Email:    "nobody@example.com",
			Password: "new-password",
		})
		require.NoError(t, err)

		assert.Equal(t, auth.OutcomeNotFound, verdict.Outcome)
		assert.ErrorIs(t, verdict.Reason, auth.ErrIdentityNotFound)
	})

	t.Run("empty input rejected structurally", func(t *testing.T) {
		strategy := auth.NewRestorationStrategy(newMemStore())

		for name, input := range map[string]auth.RestorationInput{
			"empty email":    {Password: "new-password"},
			"empty password": {Email: "grace@example.com"},
		} {
			t.Run(name, func(t *testing.T) {
				verdict, err := strategy.Verify(ctx, input)
				require.NoError(t, err)
				assert.Equal(t, auth.OutcomeValidationFailed, verdict.Outcome)
			})
		}
	})

	t.Run("store fault surfaces as error", func(t *testing.T) {
		strategy := auth.NewRestorationStrategy(faultyStore{})

		_, err := strategy.Verify(ctx, auth.RestorationInput{
			Email:    "grace@example.com",
			Password: "new-password",
		})
		require.Error(t, err)
		assert.False(t, auth.IsAuthRejection(err))
	})
}

func TestFederatedStrategy(t *testing.T) {
	ctx := context.Background()

	profile := auth.FederatedProfile{
		Provider:       "github",
		ProviderUserID: "1234",
		Email:          "octo@example.com",
		DisplayName:    "Octo Cat",
	}

	t.Run("first login creates the record", func(t *testing.T) {
		store := newMemStore()
		strategy := auth.NewFederatedStrategy(store)

		verdict, err := strategy.Verify(ctx, profile)
		require.NoError(t, err)

		assert.Equal(t, auth.OutcomeCreated, verdict.Outcome)
		require.NotNil(t, verdict.User)
		assert.Equal(t, "Octo", verdict.User.FirstName)
		assert.Equal(t, "Cat", verdict.User.LastName)
		assert.Equal(t, auth.GenderNotApplicable, verdict.User.Gender)
		assert.Equal(t, auth.UnusablePasswordHash, verdict.User.PasswordHash)
		assert.True(t, verdict.User.IsFederatedOnly())
	})

	t.Run("repeat login returns same record without duplicate", func(t *testing.T) {
		store := newMemStore()
		strategy := auth.NewFederatedStrategy(store)

		first, err := strategy.Verify(ctx, profile)
		require.NoError(t, err)

		changed := profile
		changed.DisplayName = "A Different Name"

		second, err := strategy.Verify(ctx, changed)
		require.NoError(t, err)

		assert.Equal(t, auth.OutcomeVerified, second.Outcome)
		assert.Equal(t, first.User.ID, second.User.ID)
		// No profile sync on repeat logins.
		assert.Equal(t, "Octo", second.User.FirstName)
		assert.Equal(t, 1, store.creates)
	})

	t.Run("profile without email rejected", func(t *testing.T) {
		strategy := auth.NewFederatedStrategy(newMemStore())

		invalid := profile
		invalid.Email = ""

		verdict, err := strategy.Verify(ctx, invalid)
		require.NoError(t, err)
		assert.Equal(t, auth.OutcomeValidationFailed, verdict.Outcome)
	})

	t.Run("store fault surfaces as error", func(t *testing.T) {
		strategy := auth.NewFederatedStrategy(faultyStore{})

		_, err := strategy.Verify(ctx, profile)
		require.Error(t, err)
	})
}

func TestSplitDisplayName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		first string
		last  string
	}{
		{"two tokens", "Octo Cat", "Octo", "Cat"},
		{"single token", "Octo", "Octo", ""},
		{"many tokens", "Ada Augusta King Lovelace", "Ada", "Augusta King Lovelace"},
		{"empty", "", "", ""},
		{"whitespace only", "   ", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, last := auth.SplitDisplayName(tt.input)
			assert.Equal(t, tt.first, first)
			assert.Equal(t, tt.last, last)
		})
	}
}
