package valueobject

import "errors"

// CreditCard is a value object wrapping a validated card number.
// A card number is accepted only if it is a digits-only string of plausible
// length that passes the Luhn checksum.
type CreditCard struct {
	number string
}

// ErrInvalidCreditCard is returned when a card number fails validation
var ErrInvalidCreditCard = errors.New("invalid credit card number")

// NewCreditCard validates and wraps a card number
func NewCreditCard(number string) (CreditCard, error) {
	if !ValidateLuhn(number) {
		return CreditCard{}, ErrInvalidCreditCard
	}
	return CreditCard{number: number}, nil
}

// Number returns the raw card number
func (c CreditCard) Number() string {
	return c.number
}

// Masked returns the card number with all but the last four digits hidden
func (c CreditCard) Masked() string {
	if len(c.number) <= 4 {
		return c.number
	}
	masked := make([]byte, len(c.number))
	for i := range masked {
		masked[i] = '*'
	}
	copy(masked[len(masked)-4:], c.number[len(c.number)-4:])
	return string(masked)
}

// ValidateLuhn reports whether a digits-only string of 8 to 19 characters
// satisfies the Luhn checksum.
func ValidateLuhn(number string) bool {
	if len(number) < 8 || len(number) > 19 {
		return false
	}
	sum := 0
	double := false
	for i := len(number) - 1; i >= 0; i-- {
		ch := number[i]
		if ch < '0' || ch > '9' {
			return false
		}
		digit := int(ch - '0')
		if double {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}
		sum += digit
		double = !double
	}
	return sum%10 == 0
}
