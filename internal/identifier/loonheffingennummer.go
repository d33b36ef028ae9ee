package identifier

import (
	"regexp"
	"strings"
)

var loonheffingennummerPattern = regexp.MustCompile(`^\d{9}L\d{2}$`)

// ValidateLoonheffingennummer checks the payroll tax number format
// 9 digits + "L" + 2 digits. Matching is case-insensitive and ignores spaces.
// A valid number is formatted as "XXX XXX XXXLXX".
func ValidateLoonheffingennummer(value string) Result {
	cleaned := strings.ToUpper(stripAny(value, " \t"))
	if cleaned == "" {
		return reject(KindLoonheffingennummer, ReasonEmpty)
	}
	if !loonheffingennummerPattern.MatchString(cleaned) {
		return reject(KindLoonheffingennummer, ReasonFormat)
	}
	body := cleaned[:9]
	if repeatedDigit(body) {
		return reject(KindLoonheffingennummer, ReasonRepeated)
	}
	return accept(KindLoonheffingennummer, body[:3]+" "+body[3:6]+" "+body[6:]+cleaned[9:])
}
