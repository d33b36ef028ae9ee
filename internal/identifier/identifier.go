// Package identifier validates Dutch statutory identifiers (BSN, RSIN,
// loonheffingennummer, KvK number). All validators are pure and report
// malformed input through Result rather than panicking.
package identifier

import (
	"fmt"
	"strings"
)

// Reason classifies why a value was rejected.
type Reason string

const (
	ReasonNone     Reason = ""
	ReasonEmpty    Reason = "empty"
	ReasonLength   Reason = "length"
	ReasonFormat   Reason = "format"
	ReasonRepeated Reason = "repeated_digits"
	ReasonChecksum Reason = "checksum"
)

// Kind names an identifier type.
type Kind string

const (
	KindBSN                 Kind = "bsn"
	KindRSIN                Kind = "rsin"
	KindLoonheffingennummer Kind = "loonheffingennummer"
	KindKvK                 Kind = "kvk"
)

// Kinds lists the supported identifier kinds.
func Kinds() []Kind {
	return []Kind{KindBSN, KindRSIN, KindLoonheffingennummer, KindKvK}
}

// Result is the outcome of validating one identifier.
type Result struct {
	Kind      Kind   `json:"kind"`
	Valid     bool   `json:"valid"`
	Formatted string `json:"formatted,omitempty"`
	Reason    Reason `json:"reason,omitempty"`
}

// Err returns nil for a valid result and an *InvalidError otherwise.
func (r Result) Err() error {
	if r.Valid {
		return nil
	}
	return &InvalidError{Kind: r.Kind, Reason: r.Reason}
}

// InvalidError describes a rejected identifier.
type InvalidError struct {
	Kind   Kind
	Reason Reason
}

func (e *InvalidError) Error() string {
	switch e.Reason {
	case ReasonEmpty:
		return fmt.Sprintf("%s is empty", e.Kind)
	case ReasonLength:
		return fmt.Sprintf("%s has the wrong number of digits", e.Kind)
	case ReasonFormat:
		return fmt.Sprintf("%s has an invalid format", e.Kind)
	case ReasonRepeated:
		return fmt.Sprintf("%s consists of a single repeated digit", e.Kind)
	case ReasonChecksum:
		return fmt.Sprintf("%s fails the checksum", e.Kind)
	default:
		return fmt.Sprintf("%s is invalid", e.Kind)
	}
}

// Validate dispatches on kind. Unknown kinds return an error.
func Validate(kind Kind, value string) (Result, error) {
	switch Kind(strings.ToLower(string(kind))) {
	case KindBSN:
		return ValidateBSN(value), nil
	case KindRSIN:
		return ValidateRSIN(value), nil
	case KindLoonheffingennummer:
		return ValidateLoonheffingennummer(value), nil
	case KindKvK:
		if ValidateKvKNumber(value) {
			return Result{Kind: KindKvK, Valid: true, Formatted: stripAny(value, " -")}, nil
		}
		if strings.TrimSpace(value) == "" {
			return reject(KindKvK, ReasonEmpty), nil
		}
		return reject(KindKvK, ReasonFormat), nil
	default:
		return Result{}, fmt.Errorf("unknown identifier kind %q", kind)
	}
}

func reject(kind Kind, reason Reason) Result {
	return Result{Kind: kind, Reason: reason}
}

func accept(kind Kind, formatted string) Result {
	return Result{Kind: kind, Valid: true, Formatted: formatted}
}

// digitsOnly drops every rune that is not an ASCII digit.
func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// stripAny removes every occurrence of the given runes.
func stripAny(s, cutset string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(cutset, r) {
			return -1
		}
		return r
	}, s)
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

func repeatedDigit(s string) bool {
	return s != "" && strings.Count(s, s[:1]) == len(s)
}

// weightedSum multiplies each digit by a descending weight starting at
// firstWeight.
func weightedSum(digits string, firstWeight int) int {
	sum := 0
	for i := 0; i < len(digits); i++ {
		sum += int(digits[i]-'0') * (firstWeight - i)
	}
	return sum
}
