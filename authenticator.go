package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-errors"
)

// LoginResult is the credential handed back on a successful login.
type LoginResult struct {
	Token string        `json:"token"`
	TTL   time.Duration `json:"ttl"`
}

// Auther wires the verification strategies, the token service, and the
// session adapter into the externally observable operations. Each instance
// is constructed with its own store handle; there is no shared registry.
type Auther struct {
	store        UserStore
	registration *RegistrationStrategy
	restoration  *RestorationStrategy
	federated    *FederatedStrategy
	sessions     *SessionAdapter
	tokenService TokenService
	tokenTTL     time.Duration
	logger       Logger
}

// NewAuthenticator returns a new Authenticator backed by the given store.
func NewAuthenticator(store UserStore, cfg Config) *Auther {
	ttl := cfg.GetTokenTTL()
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}

	logger := defLogger{}
	tokenService := NewTokenService(
		[]byte(cfg.GetSigningKey()),
		cfg.GetIssuer(),
		jwt.ClaimStrings(cfg.GetAudience()),
		logger,
	)

	return &Auther{
		store:        store,
		registration: NewRegistrationStrategy(store),
		restoration:  NewRestorationStrategy(store),
		federated:    NewFederatedStrategy(store),
		sessions:     NewSessionAdapter(store),
		tokenService: tokenService,
		tokenTTL:     ttl,
		logger:       logger,
	}
}

func (s *Auther) WithLogger(logger Logger) *Auther {
	s.logger = logger
	s.registration.WithLogger(logger)
	s.restoration.WithLogger(logger)
	s.federated.WithLogger(logger)
	s.sessions.WithLogger(logger)
	return s
}

// TokenService returns the TokenService instance used by this Authenticator
func (s *Auther) TokenService() TokenService {
	return s.tokenService
}

// Sessions returns the session adapter used by this Authenticator
func (s *Auther) Sessions() *SessionAdapter {
	return s.sessions
}

// Login verifies local credentials and issues a bearer token. Unknown
// emails and wrong passwords are indistinguishable to the caller.
func (s *Auther) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if email == "" || password == "" {
		return nil, ErrMismatchedHashAndPassword
	}

	user, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, ErrMismatchedHashAndPassword
		}
		s.logger.Error("login lookup failed", "error", err)
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to retrieve user during verification")
	}

	// Federated-only accounts hold an unusable hash and always fail here.
	if err := ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		return nil, ErrMismatchedHashAndPassword
	}

	return s.IssueToken(user)
}

// IssueToken mints a login token for an already verified user.
func (s *Auther) IssueToken(user *User) (*LoginResult, error) {
	token, err := s.tokenService.Generate(NewIdentityFromUser(user), s.tokenTTL)
	if err != nil {
		s.logger.Error("token generation failed", "error", err)
		return nil, err
	}

	return &LoginResult{Token: token, TTL: s.tokenTTL}, nil
}

// Register runs the registration strategy.
func (s *Auther) Register(ctx context.Context, input RegistrationInput) (Verdict, error) {
	return s.registration.Verify(ctx, input)
}

// RestorePassword runs the restoration strategy with a new password.
func (s *Auther) RestorePassword(ctx context.Context, email, password string) (Verdict, error) {
	return s.restoration.Verify(ctx, RestorationInput{Email: email, Password: password})
}

// FederatedLogin runs the federated strategy for a provider profile.
func (s *Auther) FederatedLogin(ctx context.Context, profile FederatedProfile) (Verdict, error) {
	return s.federated.Verify(ctx, profile)
}

// SessionFromToken validates a raw token and converts its claims into a
// session principal.
func (s *Auther) SessionFromToken(raw string) (Session, error) {
	claims, err := s.tokenService.Validate(raw)
	if err != nil {
		s.logger.Error("SessionFromToken validation failed", "error", err)
		return nil, err
	}

	session, err := sessionFromAuthClaims(claims)
	if err != nil {
		s.logger.Error("SessionFromToken failed to create session from claims", "error", err)
		return nil, err
	}

	return session, nil
}

// IdentityFromSession rehydrates the user record behind a session.
func (s *Auther) IdentityFromSession(ctx context.Context, session Session) (*User, error) {
	if session == nil {
		return nil, ErrNotAuthorized
	}
	return s.sessions.DeserializeUser(ctx, session.GetUserID())
}

var _ Authenticator = (*Auther)(nil)
