package phone

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/exposure-verify-api/internal/domain"
	"github.com/nyaruka/phonenumbers"
)

// Normalize canonicalizes a raw phone number into E.164 form.
//
// Rewrite rules, applied in order, first match wins:
//  1. a leading "00" international prefix becomes "+"
//  2. a single leading "0" means the number is national, in defaultRegion
//  3. a bare number whose leading digits are a known country calling code
//     gets "+" prepended
//
// The rewritten value is then parsed and validated; anything that does not
// come out as a valid, dialable number is a validation error. Callers must
// treat an empty input as "no delivery requested" and not call Normalize.
func Normalize(raw, defaultRegion string) (string, error) {
	value := strings.TrimSpace(raw)
	region := ""

	switch {
	case strings.HasPrefix(value, "00"):
		value = "+" + value[2:]
	case strings.HasPrefix(value, "0"):
		region = defaultRegion
	case !strings.HasPrefix(value, "+") && startsWithCallingCode(value):
		value = "+" + value
	}

	num, err := phonenumbers.Parse(value, region)
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return "", fmt.Errorf("invalid mobile number: %w", domain.ErrValidation)
	}
	return phonenumbers.Format(num, phonenumbers.E164), nil
}

// startsWithCallingCode reports whether the leading digits of value match a
// known country calling code (calling codes are 1 to 3 digits long).
func startsWithCallingCode(value string) bool {
	codes := phonenumbers.GetSupportedCallingCodes()
	for l := 1; l <= 3 && l <= len(value); l++ {
		prefix, err := strconv.Atoi(value[:l])
		if err != nil {
			return false
		}
		if codes[prefix] {
			return true
		}
	}
	return false
}
