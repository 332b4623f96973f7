package converter

import (
	"encoding/hex"
	"fmt"
	"unicode/utf8"

	"golang.org/x/crypto/blake2b"
)

// Password returns a converter that replaces a plain-text password with the
// hex encoded keyed BLAKE2b-256 digest of it. The key (pepper) makes digests
// application specific; the same input always yields the same digest.
//
// minLength is checked against the plain text before hashing, because length
// validators can only ever see the digest. Keys longer than 64 bytes panic.
func Password(pepper []byte, minLength int) Converter {
	if len(pepper) > blake2b.Size {
		panic(fmt.Sprintf("converter: password pepper must be at most %d bytes, got %d", blake2b.Size, len(pepper)))
	}
	key := make([]byte, len(pepper))
	copy(key, pepper)
	return passwordConverter{key: key, minLength: minLength}
}

type passwordConverter struct {
	key       []byte
	minLength int
}

func (c passwordConverter) Convert(raw any) (any, error) {
	var plain string
	switch v := raw.(type) {
	case nil:
		return nil, nilError("password")
	case string:
		plain = v
	case []byte:
		plain = string(v)
	default:
		return nil, unsupportedError("password", raw)
	}

	if utf8.RuneCountInString(plain) < c.minLength {
		return nil, newError(
			"conversion.password_length",
			fmt.Sprintf("must be at least %d characters long", c.minLength),
			map[string]any{"min": c.minLength},
			nil,
		)
	}

	h, err := blake2b.New256(c.key)
	if err != nil {
		return nil, newError("conversion.password", "cannot hash password", nil, err)
	}
	h.Write([]byte(plain))
	return hex.EncodeToString(h.Sum(nil)), nil
}
