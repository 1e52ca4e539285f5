package formaterror

import "strings"

// FormatError maps raw database constraint messages to the stable strings
// the frontend keys on. Anything unrecognized falls through to a generic
// message so driver internals never leak to callers.
func FormatError(err string) map[string]string {
	errMap := make(map[string]string)

	if strings.Contains(err, "username") {
		errMap["Taken_username"] = "Username Already Taken"
		return errMap
	}
	if strings.Contains(err, "email") {
		errMap["Taken_email"] = "Email Already Taken"
		return errMap
	}
	if strings.Contains(err, "hashedPassword") || strings.Contains(err, "crypto") {
		errMap["Incorrect_password"] = "Incorrect Password"
		return errMap
	}
	if strings.Contains(err, "record not found") {
		errMap["No_record"] = "No Record Found"
		return errMap
	}

	errMap["Incorrect_details"] = "Incorrect Details"
	return errMap
}

// IsUniqueTaken reports whether a formatted error represents a uniqueness
// conflict, so handlers can answer 409 instead of 500.
func IsUniqueTaken(formatted map[string]string) bool {
	_, username := formatted["Taken_username"]
	_, email := formatted["Taken_email"]
	return username || email
}
