package auth

import "context"

// Outcome tags the result of a verification strategy. Rejections are
// explicit variants rather than a nil-user/no-error ambiguity.
type Outcome string

const (
	// OutcomeCreated means a new user record was persisted.
	OutcomeCreated Outcome = "created"
	// OutcomeUpdated means an existing record was modified.
	OutcomeUpdated Outcome = "updated"
	// OutcomeVerified means an existing record matched unchanged.
	OutcomeVerified Outcome = "verified"
	// OutcomeAlreadyExists rejects a registration for a taken email.
	OutcomeAlreadyExists Outcome = "already-exists"
	// OutcomeNotFound rejects an operation against an unknown email.
	OutcomeNotFound Outcome = "not-found"
	// OutcomeValidationFailed rejects structurally invalid input.
	OutcomeValidationFailed Outcome = "validation-failed"
)

// Verdict is the uniform result of a verification strategy. Exactly one of
// User or Reason is set: accepted verdicts carry the user record, rejected
// ones carry the rejection reason. Infrastructure faults never appear here;
// strategies return those through their error value.
type Verdict struct {
	Outcome Outcome
	User    *User
	Reason  error
}

// Rejected reports whether the verdict denies authentication.
func (v Verdict) Rejected() bool {
	switch v.Outcome {
	case OutcomeAlreadyExists, OutcomeNotFound, OutcomeValidationFailed:
		return true
	default:
		return false
	}
}

func accepted(outcome Outcome, user *User) Verdict {
	return Verdict{Outcome: outcome, User: user}
}

func rejected(outcome Outcome, reason error) Verdict {
	return Verdict{Outcome: outcome, Reason: reason}
}

// Strategy is a named verification procedure mapping raw input to an
// identity outcome. Each call is independent; strategies keep no state
// between invocations.
type Strategy[T any] interface {
	Name() string
	Verify(ctx context.Context, input T) (Verdict, error)
}

var (
	_ Strategy[RegistrationInput] = (*RegistrationStrategy)(nil)
	_ Strategy[RestorationInput]  = (*RestorationStrategy)(nil)
	_ Strategy[FederatedProfile]  = (*FederatedStrategy)(nil)
)
