package github

import "strconv"

// Profile is the normalized identity claim GitHub asserts for a user.
type Profile struct {
	ProviderUserID string
	Login          string
	Name           string
	Email          string
	EmailVerified  bool
	AvatarURL      string
}

type githubUser struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
}

type githubEmail struct {
	Email    string `json:"email"`
	Primary  bool   `json:"primary"`
	Verified bool   `json:"verified"`
}

func mapProfile(user *githubUser, email string, emailVerified bool) *Profile {
	name := user.Name
	if name == "" {
		name = user.Login
	}

	return &Profile{
		ProviderUserID: strconv.FormatInt(user.ID, 10),
		Login:          user.Login,
		Name:           name,
		Email:          email,
		EmailVerified:  emailVerified,
		AvatarURL:      user.AvatarURL,
	}
}
