package identifier

// ValidateKvKNumber reports whether value is an 8-digit Chamber of Commerce
// number once spaces and dashes are removed.
func ValidateKvKNumber(value string) bool {
	cleaned := stripAny(value, " -")
	return len(cleaned) == 8 && isDigits(cleaned)
}
