package auth

import "strings"

// ParseAuthorizationHeader splits an Authorization header value into
// its scheme and credential parts, e.g. "Bearer abc" into ("Bearer",
// "abc"). It fails on empty values and values without a scheme.
func ParseAuthorizationHeader(value string) (scheme, credential string, err error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", "", strategyErrf("authorization header is empty")
	}

	scheme, credential, found := strings.Cut(value, " ")
	if !found || strings.TrimSpace(credential) == "" {
		return "", "", strategyErrf("authorization header %q has no credential", value)
	}

	return scheme, strings.TrimSpace(credential), nil
}

// BearerToken recovers the bearer token from a prepared header map.
// It is the inverse of a bearer strategy's PrepareHeaders and fails
// when the Authorization header is missing or uses another scheme.
func BearerToken(headers map[string]string) (string, error) {
	value, ok := headers["Authorization"]
	if !ok {
		return "", strategyErrf("no Authorization header prepared")
	}

	scheme, credential, err := ParseAuthorizationHeader(value)
	if err != nil {
		return "", err
	}
	if !strings.EqualFold(scheme, "Bearer") {
		return "", strategyErrf("authorization scheme %q is not Bearer", scheme)
	}

	return credential, nil
}
