package identifier

import "strings"

// ValidateRSIN checks an 8-digit RSIN. Spaces and dots are allowed as
// separators; a valid number is formatted as "XXXX XXXX".
func ValidateRSIN(value string) Result {
	cleaned := stripAny(strings.TrimSpace(value), " .")
	if cleaned == "" {
		return reject(KindRSIN, ReasonEmpty)
	}
	if !isDigits(cleaned) {
		return reject(KindRSIN, ReasonFormat)
	}
	if len(cleaned) != 8 {
		return reject(KindRSIN, ReasonLength)
	}
	if repeatedDigit(cleaned) {
		return reject(KindRSIN, ReasonRepeated)
	}

	remainder := weightedSum(cleaned[:7], 8) % 11
	check := remainder
	if remainder >= 2 {
		check = 11 - remainder
	}
	if int(cleaned[7]-'0') != check {
		return reject(KindRSIN, ReasonChecksum)
	}
	return accept(KindRSIN, cleaned[:4]+" "+cleaned[4:])
}
