package auth

import "strings"

// QueryTokenParam is the query-string parameter inspected when no
// Authorization header is present.
const QueryTokenParam = "access_token"

// ExtractToken selects the bearer credential from an inbound request. An
// explicit Authorization header takes priority over a query-string token;
// when neither is present it reports ErrNoToken so callers can tell "no
// credential supplied" apart from "invalid credential".
func ExtractToken(authorization, queryToken string) (string, error) {
	if authorization != "" {
		parts := strings.SplitN(authorization, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			return "", ErrTokenMalformed
		}
		return parts[1], nil
	}

	if queryToken != "" {
		return queryToken, nil
	}

	return "", ErrNoToken
}
