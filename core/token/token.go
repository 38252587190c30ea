package token

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Size is the length of a token in bytes.
const Size = 16

// TextSize is the length of the canonical textual form.
const TextSize = 2 * Size

// ErrMalformed is returned when a string is not a valid token.
var ErrMalformed = errors.New("malformed token")

// Token is a 128-bit opaque identifier.
type Token [Size]byte

// Zero is the all-zero token, used as the empty slot sentinel.
var Zero Token

// Parse decodes the 32 character hex form of a token.
func Parse(s string) (Token, error) {
	if len(s) != TextSize {
		return Zero, fmt.Errorf("%w: %q has length %d, want %d", ErrMalformed, s, len(s), TextSize)
	}
	// uuid.Parse accepts the unhyphenated 32 character layout as well.
	u, err := uuid.Parse(s)
	if err != nil {
		return Zero, fmt.Errorf("%w: %q: %v", ErrMalformed, s, err)
	}
	return Token(u), nil
}

// MustParse is like Parse but panics on invalid input. Intended for tests and constants.
func MustParse(s string) Token {
	t, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}

// New returns a random token.
func New() Token {
	return Token(uuid.New())
}

// String returns the canonical lowercase hex form.
func (t Token) String() string {
	return hex.EncodeToString(t[:])
}

// IsZero reports whether t is the zero token.
func (t Token) IsZero() bool {
	return t == Zero
}

// MarshalText implements encoding.TextMarshaler.
func (t Token) MarshalText() ([]byte, error) {
	buf := make([]byte, TextSize)
	hex.Encode(buf, t[:])
	return buf, nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Token) UnmarshalText(b []byte) error {
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// UnmarshalJSON rejects null and empty strings; required references must be present.
func (t *Token) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return t.UnmarshalText([]byte(s))
}

// Strings encodes every token of ts.
func Strings(ts []Token) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.String()
	}
	return out
}
