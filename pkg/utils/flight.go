package utils

import (
	"errors"
	"regexp"
	"strings"
)

// ErrInvalidFlightNumber is returned for identifiers that do not look like a
// carrier designator followed by a flight number.
var ErrInvalidFlightNumber = errors.New("invalid flight number")

// IATA designator: two alphanumeric characters with at least one letter,
// then a 1-4 digit number and an optional operational suffix.
var flightNumberRe = regexp.MustCompile(`^([A-Z][A-Z0-9]|[0-9][A-Z])([0-9]{1,4})([A-Z]?)$`)

// NormalizeFlightNumber uppercases the identifier, strips whitespace and
// validates the carrier-code + number shape. Malformed identifiers fail
// before any network call is made.
func NormalizeFlightNumber(raw string) (string, error) {
	cleaned := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(raw), " ", ""))
	if !flightNumberRe.MatchString(cleaned) {
		return "", ErrInvalidFlightNumber
	}
	return cleaned, nil
}

// CarrierCode returns the two-character carrier designator of a normalized
// flight number.
func CarrierCode(flightNumber string) string {
	if len(flightNumber) < 2 {
		return flightNumber
	}
	return flightNumber[:2]
}
