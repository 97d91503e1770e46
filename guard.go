package auth

// Decision is the three-way outcome of an authorization check.
type Decision int

const (
	// DecisionAllow lets the request proceed.
	DecisionAllow Decision = iota
	// DecisionUnauthenticated denies because no principal was established.
	DecisionUnauthenticated
	// DecisionForbidden denies an authenticated principal with an
	// insufficient role.
	DecisionForbidden
)

// Allowed reports whether the request may proceed.
func (d Decision) Allowed() bool {
	return d == DecisionAllow
}

// Err maps the decision to the corresponding rejection error, nil on allow.
func (d Decision) Err() error {
	switch d {
	case DecisionUnauthenticated:
		return ErrNotAuthorized
	case DecisionForbidden:
		return ErrForbidden
	default:
		return nil
	}
}

func (d Decision) String() string {
	switch d {
	case DecisionAllow:
		return "allow"
	case DecisionUnauthenticated:
		return "unauthenticated"
	case DecisionForbidden:
		return "forbidden"
	default:
		return "unknown"
	}
}

// roleHolder is the subset of a principal the guard inspects.
type roleHolder interface {
	Role() string
}

// Authorize gates an established principal against a required role. There
// is no role hierarchy; the match is exact against the required role.
func Authorize(principal roleHolder, required UserRole) Decision {
	if principal == nil {
		return DecisionUnauthenticated
	}

	if required == "" || principal.Role() == required {
		return DecisionAllow
	}

	return DecisionForbidden
}
