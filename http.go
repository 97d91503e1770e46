package auth

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/google/uuid"

	"github.com/webshopd/go-auth/provider/github"
)

const (
	// ClaimsContextKey is where the token middleware stores validated claims.
	ClaimsContextKey = "auth_claims"
	// TokenCookieName is the cookie set on login for browser clients.
	TokenCookieName = "access_token"

	oauthStateCookie = "oauth_state"
)

// LoginPayload is the login form payload
type LoginPayload struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

// Validate will validate the payload
func (r LoginPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

// AuthController exposes the authentication operations over HTTP. It is
// thin glue: it binds payloads, delegates to the Auther, and maps verdicts
// and errors to status codes.
type AuthController struct {
	Auther *Auther
	Github *github.Provider
	Logger Logger
}

// AuthControllerOption configures the controller.
type AuthControllerOption func(*AuthController) *AuthController

// WithGithubProvider enables the federated login routes.
func WithGithubProvider(provider *github.Provider) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Github = provider
		return c
	}
}

// WithControllerLogger overrides the controller logger.
func WithControllerLogger(logger Logger) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Logger = logger
		return c
	}
}

// NewAuthController creates a controller bound to an Auther.
func NewAuthController(auther *Auther, opts ...AuthControllerOption) *AuthController {
	c := &AuthController{
		Auther: auther,
		Logger: defLogger{},
	}

	for _, opt := range opts {
		if opt != nil {
			c = opt(c)
		}
	}

	return c
}

// RegisterAuthRoutes mounts the session routes on the app.
func RegisterAuthRoutes(app fiber.Router, controller *AuthController) {
	sessions := app.Group("/api/sessions")

	sessions.Post("/login", controller.LoginPost)
	sessions.Get("/logout", controller.Logout)
	sessions.Post("/register", controller.RegisterPost)
	sessions.Post("/restore", controller.RestorePost)

	sessions.Get("/github", controller.GithubRedirect)
	sessions.Get("/githubcallback", controller.GithubCallback)

	sessions.Get("/current", controller.RequireToken(), controller.Current)
	sessions.Get("/admin", controller.RequireToken(), controller.RequireRole(RoleAdmin), controller.Admin)
}

// LoginPost verifies credentials and returns a bearer token.
func (a *AuthController) LoginPost(c *fiber.Ctx) error {
	payload := new(LoginPayload)

	if err := c.BodyParser(payload); err != nil {
		a.Logger.Error("login parse payload", "error", err)
		return respondErr(c, fiber.StatusBadRequest, "failed to parse body")
	}

	if err := payload.Validate(); err != nil {
		return respondErr(c, fiber.StatusBadRequest, err.Error())
	}

	result, err := a.Auther.Login(c.Context(), payload.Email, payload.Password)
	if err != nil {
		if IsAuthRejection(err) {
			// Uniform rejection; no hint whether the email exists.
			return respondErr(c, fiber.StatusUnauthorized, "authentication failed")
		}
		a.Logger.Error("login error", "error", err)
		return respondErr(c, fiber.StatusInternalServerError, "server error")
	}

	a.setTokenCookie(c, result)

	return respondOK(c, fiber.StatusOK, fiber.Map{
		"token": result.Token,
		"ttl":   result.TTL.Seconds(),
	})
}

// Logout destroys the cookie-held credential.
func (a *AuthController) Logout(c *fiber.Ctx) error {
	a.clearCookie(c, TokenCookieName)
	return respondOK(c, fiber.StatusOK, "session closed")
}

// RegisterPost runs the registration strategy.
func (a *AuthController) RegisterPost(c *fiber.Ctx) error {
	payload := new(RegistrationInput)

	if err := c.BodyParser(payload); err != nil {
		a.Logger.Error("register parse payload", "error", err)
		return respondErr(c, fiber.StatusBadRequest, "failed to parse body")
	}

	verdict, err := a.Auther.Register(c.Context(), *payload)
	if err != nil {
		a.Logger.Error("register error", "error", err)
		return respondErr(c, fiber.StatusInternalServerError, "server error")
	}

	if verdict.Rejected() {
		return respondErr(c, verdictStatus(verdict), verdict.Reason.Error())
	}

	return respondOK(c, verdictStatus(verdict), verdict.User)
}

// RestorePost runs the restoration strategy with a new password.
func (a *AuthController) RestorePost(c *fiber.Ctx) error {
	payload := new(RestorationInput)

	if err := c.BodyParser(payload); err != nil {
		a.Logger.Error("restore parse payload", "error", err)
		return respondErr(c, fiber.StatusBadRequest, "failed to parse body")
	}

	verdict, err := a.Auther.RestorePassword(c.Context(), payload.Email, payload.Password)
	if err != nil {
		a.Logger.Error("restore error", "error", err)
		return respondErr(c, fiber.StatusInternalServerError, "server error")
	}

	if verdict.Rejected() {
		return respondErr(c, verdictStatus(verdict), verdict.Reason.Error())
	}

	return respondOK(c, verdictStatus(verdict), "password updated")
}

// GithubRedirect starts the authorization-code flow.
func (a *AuthController) GithubRedirect(c *fiber.Ctx) error {
	if a.Github == nil {
		return respondErr(c, fiber.StatusServiceUnavailable, "federated login not configured")
	}

	state := uuid.NewString()
	c.Cookie(&fiber.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Expires:  time.Now().Add(5 * time.Minute),
		HTTPOnly: true,
		SameSite: "Lax",
	})

	return c.Redirect(a.Github.AuthCodeURL(state), fiber.StatusTemporaryRedirect)
}

// GithubCallback finishes the flow: code exchange, profile fetch, federated
// verification, token issuance.
func (a *AuthController) GithubCallback(c *fiber.Ctx) error {
	if a.Github == nil {
		return respondErr(c, fiber.StatusServiceUnavailable, "federated login not configured")
	}

	state := c.Query("state")
	expected := c.Cookies(oauthStateCookie)
	a.clearCookie(c, oauthStateCookie)

	if state == "" || state != expected {
		return respondErr(c, fiber.StatusUnauthorized, "state mismatch")
	}

	code := c.Query("code")
	if code == "" {
		return respondErr(c, fiber.StatusBadRequest, "missing authorization code")
	}

	token, err := a.Github.Exchange(c.Context(), code)
	if err != nil {
		a.Logger.Error("github exchange failed", "error", err)
		return respondErr(c, fiber.StatusBadGateway, "provider exchange failed")
	}

	profile, err := a.Github.UserInfo(c.Context(), token)
	if err != nil {
		a.Logger.Error("github profile fetch failed", "error", err)
		return respondErr(c, fiber.StatusBadGateway, "provider profile failed")
	}

	verdict, err := a.Auther.FederatedLogin(c.Context(), FederatedProfile{
		Provider:       a.Github.Name(),
		ProviderUserID: profile.ProviderUserID,
		Email:          profile.Email,
		DisplayName:    profile.Name,
	})
	if err != nil {
		a.Logger.Error("federated login error", "error", err)
		return respondErr(c, fiber.StatusInternalServerError, "server error")
	}

	if verdict.Rejected() {
		return respondErr(c, fiber.StatusUnauthorized, "authentication failed")
	}

	result, err := a.Auther.IssueToken(verdict.User)
	if err != nil {
		a.Logger.Error("federated token issuance failed", "error", err)
		return respondErr(c, fiber.StatusInternalServerError, "server error")
	}

	a.setTokenCookie(c, result)

	return respondOK(c, fiber.StatusOK, fiber.Map{
		"token": result.Token,
		"ttl":   result.TTL.Seconds(),
	})
}

// Current returns the rehydrated record behind the request principal. A
// stale principal whose record is gone invalidates the cookie.
func (a *AuthController) Current(c *fiber.Ctx) error {
	claims, err := ClaimsFromContext(c)
	if err != nil {
		return respondErr(c, fiber.StatusUnauthorized, "not authorized")
	}

	user, err := a.Auther.Sessions().DeserializeUser(c.Context(), claims.UserID())
	if err != nil {
		if errors.IsNotFound(err) || IsAuthRejection(err) {
			a.clearCookie(c, TokenCookieName)
			return respondErr(c, fiber.StatusUnauthorized, "not authorized")
		}
		a.Logger.Error("current user rehydration failed", "error", err)
		return respondErr(c, fiber.StatusInternalServerError, "server error")
	}

	return respondOK(c, fiber.StatusOK, user)
}

// Admin is the admin-only probe endpoint.
func (a *AuthController) Admin(c *fiber.Ctx) error {
	claims, err := ClaimsFromContext(c)
	if err != nil {
		return respondErr(c, fiber.StatusUnauthorized, "not authorized")
	}

	return respondOK(c, fiber.StatusOK, fiber.Map{
		"subject": claims.Subject(),
		"role":    claims.Role(),
	})
}

// RequireToken extracts and validates the bearer credential. The explicit
// Authorization header wins over the query string; the login cookie is the
// final fallback for browser clients.
func (a *AuthController) RequireToken() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw, err := ExtractToken(c.Get(fiber.HeaderAuthorization), c.Query(QueryTokenParam))
		if err != nil {
			cookie := c.Cookies(TokenCookieName)
			if !IsMalformedError(err) && cookie != "" {
				raw = cookie
			} else {
				return respondErr(c, fiber.StatusUnauthorized, "not authenticated")
			}
		}

		claims, err := a.Auther.TokenService().Validate(raw)
		if err != nil {
			return respondErr(c, fiber.StatusUnauthorized, "not authorized")
		}

		c.Locals(ClaimsContextKey, claims)
		return c.Next()
	}
}

// RequireRole gates the request on the guard's three-way decision.
func (a *AuthController) RequireRole(role UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var principal roleHolder
		if claims, err := ClaimsFromContext(c); err == nil {
			principal = claims
		}

		decision := Authorize(principal, role)
		switch decision {
		case DecisionAllow:
			return c.Next()
		case DecisionForbidden:
			return respondErr(c, fiber.StatusForbidden, "forbidden")
		default:
			return respondErr(c, fiber.StatusUnauthorized, "not authorized")
		}
	}
}

// ClaimsFromContext returns the claims stored by RequireToken.
func ClaimsFromContext(c *fiber.Ctx) (AuthClaims, error) {
	v := c.Locals(ClaimsContextKey)
	if v == nil {
		return nil, ErrNotAuthorized
	}

	claims, ok := v.(AuthClaims)
	if !ok {
		return nil, ErrUnableToDecodeSession
	}

	return claims, nil
}

func (a *AuthController) setTokenCookie(c *fiber.Ctx, result *LoginResult) {
	c.Cookie(&fiber.Cookie{
		Name:     TokenCookieName,
		Value:    result.Token,
		Expires:  time.Now().Add(result.TTL),
		HTTPOnly: true,
		SameSite: "Lax",
	})
}

func (a *AuthController) clearCookie(c *fiber.Ctx, name string) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
	})
}

func verdictStatus(v Verdict) int {
	switch v.Outcome {
	case OutcomeCreated:
		return fiber.StatusCreated
	case OutcomeAlreadyExists:
		return fiber.StatusConflict
	case OutcomeNotFound:
		return fiber.StatusNotFound
	case OutcomeValidationFailed:
		return fiber.StatusBadRequest
	default:
		return fiber.StatusOK
	}
}

func respondOK(c *fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(fiber.Map{"status": "OK", "data": data})
}

func respondErr(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"status": "ERR", "data": message})
}
