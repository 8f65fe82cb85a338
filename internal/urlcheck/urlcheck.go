// Package urlcheck validates the shape of http(s) URLs for link resources.
package urlcheck

import "regexp"

// Accepts http/https with a dotted domain, localhost, or an IPv4 address,
// an optional port, and an optional path or query.
var urlPattern = regexp.MustCompile(`(?i)^https?://` +
	`(?:(?:[A-Z0-9](?:[A-Z0-9-]{0,61}[A-Z0-9])?\.)+[A-Z]{2,6}\.?|localhost|\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3})` +
	`(?::\d+)?` +
	`(?:/?|[/?]\S+)$`)

// Valid reports whether raw looks like an http or https URL.
func Valid(raw string) bool {
	return urlPattern.MatchString(raw)
}
