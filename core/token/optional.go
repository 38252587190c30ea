package token

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Optional is a token reference that may be absent.
type Optional struct {
	Token Token
	Valid bool
}

// Some wraps a present token.
func Some(t Token) Optional {
	return Optional{Token: t, Valid: true}
}

// None is the absent reference.
var None = Optional{}

// ParseOptional decodes s, treating the empty string as absent.
func ParseOptional(s string) (Optional, error) {
	if s == "" {
		return None, nil
	}
	t, err := Parse(s)
	if err != nil {
		return None, err
	}
	return Some(t), nil
}

// Get returns the token and whether it is present.
func (o Optional) Get() (Token, bool) {
	return o.Token, o.Valid
}

// String returns the hex form, or "" when absent.
func (o Optional) String() string {
	if !o.Valid {
		return ""
	}
	return o.Token.String()
}

// MarshalJSON encodes an absent reference as "".
func (o Optional) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.String())
}

// UnmarshalJSON accepts a token string, "" or null.
func (o *Optional) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*o = None
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	parsed, err := ParseOptional(s)
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}
