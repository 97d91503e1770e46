package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

var _ Session = &SessionObject{}

// SessionObject is the principal attached to a request after a token has
// been validated. It carries only what the claims encode.
type SessionObject struct {
	UserID         string         `json:"user_id,omitempty"`
	Audience       []string       `json:"audience,omitempty"`
	Issuer         string         `json:"issuer,omitempty"`
	IssuedAt       *time.Time     `json:"issued_at,omitempty"`
	ExpirationDate *time.Time     `json:"expiration_date,omitempty"`
	Data           map[string]any `json:"data,omitempty"`
}

func (s *SessionObject) GetUserID() string {
	return s.UserID
}

func (s *SessionObject) GetUserUUID() (uuid.UUID, error) {
	return uuid.Parse(s.UserID)
}

func (s *SessionObject) GetAudience() []string {
	return s.Audience
}

func (s *SessionObject) GetIssuer() string {
	return s.Issuer
}

func (s *SessionObject) GetIssuedAt() *time.Time {
	return s.IssuedAt
}

func (s *SessionObject) GetData() map[string]any {
	return s.Data
}

// Role returns the role recorded in the session data, defaulting to the
// standard role.
func (s *SessionObject) Role() UserRole {
	if s.Data != nil {
		if roleData, exists := s.Data["role"]; exists {
			if roleStr, ok := roleData.(string); ok {
				if role, valid := ParseRole(roleStr); valid {
					return role
				}
			}
		}
	}
	return RoleStandard
}

// TODO: enable only in development!
func (s SessionObject) String() string {
	issuedAt := "<nil>"
	if s.IssuedAt != nil {
		issuedAt = s.IssuedAt.Format(time.RFC1123)
	}
	return fmt.Sprintf(
		"user=%s aud=%v iss=%s iat=%s data=%v",
		s.UserID,
		s.Audience,
		s.Issuer,
		issuedAt,
		s.Data,
	)
}

// sessionFromAuthClaims creates a SessionObject from validated claims
func sessionFromAuthClaims(claims AuthClaims) (*SessionObject, error) {
	if claims == nil {
		return nil, ErrUnableToDecodeSession
	}

	data := map[string]any{
		"role":  claims.Role(),
		"email": claims.Subject(),
	}

	var audience []string
	var issuer string
	if jwtClaims, ok := claims.(*JWTClaims); ok {
		audience = append(audience, jwtClaims.RegisteredClaims.Audience...)
		issuer = jwtClaims.RegisteredClaims.Issuer
	}

	issuedAt := claims.IssuedAt()
	expiresAt := claims.Expires()

	return &SessionObject{
		UserID:         claims.UserID(),
		Audience:       audience,
		Issuer:         issuer,
		Data:           data,
		IssuedAt:       &issuedAt,
		ExpirationDate: &expiresAt,
	}, nil
}

// SessionAdapter maps verified identities to and from the minimal
// identifier that survives in a session.
type SessionAdapter struct {
	store  UserStore
	logger Logger
}

// NewSessionAdapter constructs the adapter with its store handle.
func NewSessionAdapter(store UserStore) *SessionAdapter {
	return &SessionAdapter{store: store, logger: defLogger{}}
}

func (a *SessionAdapter) WithLogger(l Logger) *SessionAdapter {
	a.logger = l
	return a
}

// SerializeUser captures just the durable identifier, keeping the session
// payload minimal.
func (a *SessionAdapter) SerializeUser(user *User) (string, error) {
	if user == nil || user.ID == uuid.Nil {
		return "", errors.New("cannot serialize a user without an id", errors.CategoryBadInput)
	}
	return user.ID.String(), nil
}

// DeserializeUser rehydrates the full record on each request. When the
// underlying record is gone it reports ErrIdentityNotFound and the caller
// must invalidate the session.
func (a *SessionAdapter) DeserializeUser(ctx context.Context, id string) (*User, error) {
	user, err := a.store.FindByID(ctx, id)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, ErrIdentityNotFound
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to rehydrate session user")
	}
	return user, nil
}
