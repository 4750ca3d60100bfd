package logicapp

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/awantoch/foundryflow/constants"
)

// Callback is a parsed trigger callback URL.
type Callback struct {
	Scheme string
	Host   string
	// Path has any trailing /invoke removed.
	Path         string
	Signature    string
	HasSignature bool
}

// BaseURL is scheme://host/path, the server URL an OpenAPI document should point at.
func (c Callback) BaseURL() string {
	return c.Scheme + "://" + c.Host + c.Path
}

// ParseCallbackURL splits a signed callback URL into the base URL and the sig value.
// A missing sig is not an error; HasSignature reports it.
func ParseCallbackURL(raw string) (Callback, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Callback{}, fmt.Errorf("parse callback url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return Callback{}, fmt.Errorf("parse callback url: %q is not absolute", raw)
	}
	cb := Callback{
		Scheme: u.Scheme,
		Host:   u.Host,
		Path:   strings.TrimSuffix(u.EscapedPath(), constants.CallbackInvokeSuffix),
	}
	if sigs, ok := u.Query()[constants.CallbackSignatureParam]; ok && len(sigs) > 0 {
		cb.Signature = sigs[0]
		cb.HasSignature = true
	}
	return cb, nil
}
