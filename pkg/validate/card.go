package validate

import (
	"strings"

	"github.com/ShiraazMoollatjie/goluhn"
)

var cardSeparators = strings.NewReplacer(" ", "", "-", "")

// IsCardNumber reports whether s passes the Luhn check. Spaces and dashes
// between digit groups are ignored.
func IsCardNumber(s string) bool {
	return goluhn.Validate(cardSeparators.Replace(s)) == nil
}
