package http

import (
	"errors"
	"strings"
)

// hawkScheme is the Authorization scheme carrying a credential id and request MAC.
const hawkScheme = "hawk"

var (
	errMissingAuthorization = errors.New("missing authorization header")
	errNotHawkScheme        = errors.New("authorization scheme is not hawk")
	errMalformedHawkHeader  = errors.New("malformed hawk authorization header")
)

// hawkAttributes lists the attribute names a Hawk header may carry.
var hawkAttributes = map[string]bool{
	"id":    true,
	"ts":    true,
	"nonce": true,
	"hash":  true,
	"ext":   true,
	"mac":   true,
	"app":   true,
	"dlg":   true,
}

// HawkHeader holds the parsed attributes of a Hawk Authorization header.
type HawkHeader struct {
	ID        string
	Timestamp string
	Nonce     string
	Hash      string
	Ext       string
	MAC       string
}

// ParseHawkHeader parses `Hawk id="..", ts="..", nonce="..", mac=".."`.
// id, ts, nonce and mac are required; unknown or repeated attributes are rejected.
func ParseHawkHeader(header string) (*HawkHeader, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return nil, errMissingAuthorization
	}

	scheme, rest, found := strings.Cut(header, " ")
	if !strings.EqualFold(scheme, hawkScheme) {
		return nil, errNotHawkScheme
	}
	if !found {
		return nil, errMalformedHawkHeader
	}

	attrs := make(map[string]string)
	rest = strings.TrimSpace(rest)
	for rest != "" {
		name, value, remainder, err := nextHawkAttribute(rest)
		if err != nil {
			return nil, err
		}
		if !hawkAttributes[name] {
			return nil, errMalformedHawkHeader
		}
		if _, dup := attrs[name]; dup {
			return nil, errMalformedHawkHeader
		}
		attrs[name] = value
		rest = remainder
	}

	h := &HawkHeader{
		ID:        attrs["id"],
		Timestamp: attrs["ts"],
		Nonce:     attrs["nonce"],
		Hash:      attrs["hash"],
		Ext:       attrs["ext"],
		MAC:       attrs["mac"],
	}
	if h.ID == "" || h.Timestamp == "" || h.Nonce == "" || h.MAC == "" {
		return nil, errMalformedHawkHeader
	}
	return h, nil
}

// nextHawkAttribute consumes one `name="value"` pair and an optional trailing comma.
func nextHawkAttribute(s string) (name, value, rest string, err error) {
	eq := strings.IndexByte(s, '=')
	if eq <= 0 {
		return "", "", "", errMalformedHawkHeader
	}
	name = strings.TrimSpace(s[:eq])
	s = strings.TrimLeft(s[eq+1:], " ")
	if !strings.HasPrefix(s, `"`) {
		return "", "", "", errMalformedHawkHeader
	}

	end := strings.IndexByte(s[1:], '"')
	if end < 0 {
		return "", "", "", errMalformedHawkHeader
	}
	value = s[1 : end+1]
	if strings.ContainsRune(value, '\\') {
		return "", "", "", errMalformedHawkHeader
	}

	rest = strings.TrimSpace(s[end+2:])
	if rest != "" {
		if rest[0] != ',' {
			return "", "", "", errMalformedHawkHeader
		}
		rest = strings.TrimSpace(rest[1:])
	}
	return name, value, rest, nil
}
