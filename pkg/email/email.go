package email

import "regexp"

// addressPattern accepts the usual local@domain.tld shape. It is intentionally
// permissive inside the local part; the point is to reject obvious typos, not
// to chase RFC 5322 corner cases.
var addressPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Valid reports whether s looks like a deliverable email address.
func Valid(s string) bool {
	return addressPattern.MatchString(s)
}
