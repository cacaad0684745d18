package proposals

import (
	"math/rand/v2"
	"strings"

	"github.com/google/uuid"
)

const (
	base36Digits       = "0123456789abcdefghijklmnopqrstuvwxyz"
	maxFragmentDigits  = 13
	maxTokenAttempts   = 8
	fallbackTokenChars = 24
)

// RandomSource yields uniformly distributed values in [0, 1).
type RandomSource interface {
	Float64() float64
}

type globalSource struct{}

func (globalSource) Float64() float64 {
	return rand.Float64()
}

// DefaultRandomSource returns a goroutine-safe source backed by math/rand/v2.
func DefaultRandomSource() RandomSource {
	return globalSource{}
}

// newToken concatenates two base-36 fragments drawn from independent random values.
func newToken(random RandomSource) string {
	return base36Fragment(random.Float64()) + base36Fragment(random.Float64())
}

// base36Fragment expands the fractional part of value in base 36, up to maxFragmentDigits digits.
func base36Fragment(value float64) string {
	var builder strings.Builder
	fraction := value
	for digits := 0; digits < maxFragmentDigits && fraction > 0; digits++ {
		fraction *= 36
		digit := int(fraction)
		if digit > 35 {
			digit = 35
		}
		builder.WriteByte(base36Digits[digit])
		fraction -= float64(digit)
	}
	return builder.String()
}

// fallbackToken derives a URL-safe token from a UUIDv7 when random draws keep colliding.
func fallbackToken() (string, error) {
	value, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	token := strings.ReplaceAll(value.String(), "-", "")
	if len(token) > fallbackTokenChars {
		token = token[len(token)-fallbackTokenChars:]
	}
	return token, nil
}
