package catalog

import (
	"github.com/retailpos/backend/internal/domain/shared"
)

// Barcode is a validated GTIN-12/13/14 product code
type Barcode string

// ErrInvalidBarcode is returned when a product code fails validation
var ErrInvalidBarcode = shared.NewDomainError("INVALID_CODE", "Product code must be a valid GTIN-12/13/14 barcode")

// ParseBarcode validates a product code string. A valid code is 12 to 14
// digits long and its last digit is the GS1 check digit of the rest.
func ParseBarcode(code string) (Barcode, error) {
	if len(code) < 12 || len(code) > 14 {
		return "", ErrInvalidBarcode
	}
	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return "", ErrInvalidBarcode
		}
	}
	if !checkDigitValid(code) {
		return "", ErrInvalidBarcode
	}
	return Barcode(code), nil
}

// String returns the barcode as a plain string
func (b Barcode) String() string {
	return string(b)
}

// checkDigitValid verifies the GS1 check digit: digits are weighted 3 and 1
// alternately from the position next to the check digit, and the check digit
// must bring the weighted sum to a multiple of ten.
func checkDigitValid(code string) bool {
	sum := 0
	weight := 3
	for i := len(code) - 2; i >= 0; i-- {
		sum += int(code[i]-'0') * weight
		if weight == 3 {
			weight = 1
		} else {
			weight = 3
		}
	}
	check := (10 - sum%10) % 10
	return int(code[len(code)-1]-'0') == check
}
