package vars

import "strings"

// StrToBool parses a boolean flag argument. Unknown words are false.
func StrToBool(str string) bool {
	str = strings.ToLower(str)
	switch str {
	case "true", "t", "yes", "y":
		return true
	case "false", "f", "no", "n":
		return false
	}
	return false
}
