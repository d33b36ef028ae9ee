package identifier

import "strings"

// ValidateBSN checks a burgerservicenummer with the 11-proof. Non-digits are
// ignored, 8-digit numbers are left-padded with a zero.
func ValidateBSN(value string) Result {
	if strings.TrimSpace(value) == "" {
		return reject(KindBSN, ReasonEmpty)
	}
	digits := digitsOnly(value)
	if len(digits) < 8 || len(digits) > 9 {
		return reject(KindBSN, ReasonLength)
	}
	if len(digits) == 8 {
		digits = "0" + digits
	}

	// weights 9..2 on the first eight digits, the ninth counts as -1
	sum := weightedSum(digits[:8], 9) - int(digits[8]-'0')
	if sum%11 != 0 {
		return reject(KindBSN, ReasonChecksum)
	}
	return accept(KindBSN, digits)
}
