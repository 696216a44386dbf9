package helpers

import (
	"net/url"
)

// GetURLQueryParam returns the value of the query parameter key of rawURL, or "" when it
// is not set. rawURL must be an absolute http or https URL.
func GetURLQueryParam(rawURL interface{}, key interface{}) (string, error) {
	s, ok := rawURL.(string)
	if !ok || !isValidURL(s) {
		return "", invalid("getURLQueryParam", "invalid URL")
	}
	k, ok := key.(string)
	if !ok {
		return "", invalid("getURLQueryParam", "invalid query parameter key")
	}

	u, _ := url.Parse(s)
	return u.Query().Get(k), nil
}

func isValidURL(s string) bool {
	u, err := url.ParseRequestURI(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
