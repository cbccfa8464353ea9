// Package payment holds card checks and the payment gateway used at checkout.
package payment

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Domenick1991/skyseats/internal/domain"
)

type Card struct {
	Number     string `json:"cardNumber" binding:"required"`
	Expiry     string `json:"expiryDate" binding:"required"`
	CVV        string `json:"cvv" binding:"required"`
	HolderName string `json:"cardholderName"`
}

// Last4 is safe to log.
func (c Card) Last4() string {
	digits := normalizeNumber(c.Number)
	if len(digits) < 4 {
		return digits
	}
	return digits[len(digits)-4:]
}

// ValidateCard checks number length and checksum, expiry (MM/YY, not past)
// and CVV. It does not contact any issuer.
func ValidateCard(card Card, now time.Time) error {
	number := normalizeNumber(card.Number)
	if len(number) < 13 || len(number) > 19 || !allDigits(number) {
		return invalid("card number must contain 13 to 19 digits")
	}
	if !luhn(number) {
		return invalid("card number is invalid")
	}

	month, year, err := parseExpiry(card.Expiry)
	if err != nil {
		return invalid("expiry date must be in MM/YY format")
	}
	// a card is valid through the last day of its expiry month
	expires := time.Date(year, time.Month(month)+1, 1, 0, 0, 0, 0, time.UTC)
	if !now.Before(expires) {
		return invalid("card has expired")
	}

	if l := len(card.CVV); (l != 3 && l != 4) || !allDigits(card.CVV) {
		return invalid("CVV must be 3 or 4 digits")
	}
	return nil
}

func invalid(msg string) error {
	return fmt.Errorf("%s: %w", msg, domain.ErrInvalidInput)
}

func normalizeNumber(n string) string {
	return strings.NewReplacer(" ", "", "-", "").Replace(n)
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

func luhn(number string) bool {
	sum := 0
	double := false
	for i := len(number) - 1; i >= 0; i-- {
		d := int(number[i] - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}

func parseExpiry(expiry string) (int, int, error) {
	parts := strings.Split(strings.TrimSpace(expiry), "/")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, 0, fmt.Errorf("bad expiry %q", expiry)
	}
	month, err := strconv.Atoi(parts[0])
	if err != nil || month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("bad month %q", parts[0])
	}
	year, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("bad year %q", parts[1])
	}
	return month, 2000 + year, nil
}
