// internal/app/membership/joincode.go
package membership

import (
	"context"
	"crypto/rand"
	"fmt"
)

// CodeAlphabet is the 32-symbol set join codes are drawn from: uppercase
// letters and digits with visually confusable glyphs (0, O, 1, I) removed,
// so codes survive being read aloud or copied from a whiteboard.
const CodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// CodeLength is the number of symbols in a join code. 32^6 is roughly 1.07
// billion possible codes.
const CodeLength = 6

// maxCodeAttempts bounds the uniqueness retry loop.
const maxCodeAttempts = 10

// NewCode returns a random join code. Each position is drawn independently
// and uniformly from CodeAlphabet. The alphabet size divides 256, so
// reducing random bytes modulo the alphabet introduces no bias.
func NewCode() (string, error) {
	buf := make([]byte, CodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	out := make([]byte, CodeLength)
	for i, b := range buf {
		out[i] = CodeAlphabet[int(b)%len(CodeAlphabet)]
	}
	return string(out), nil
}

// codeExistsFunc reports whether a candidate code is already taken. The
// joincodes store provides the production implementation.
type codeExistsFunc func(ctx context.Context, code string) (bool, error)

// uniqueCode generates a candidate and checks it against the store,
// regenerating on collision up to maxCodeAttempts times. This check is
// best-effort (two concurrent callers can both pass it); the join-code
// document's primary key is the hard backstop at write time.
func uniqueCode(ctx context.Context, exists codeExistsFunc) (string, error) {
	for i := 0; i < maxCodeAttempts; i++ {
		code, err := NewCode()
		if err != nil {
			return "", err
		}
		taken, err := exists(ctx, code)
		if err != nil {
			return "", wrap("check join code", err)
		}
		if !taken {
			return code, nil
		}
	}
	return "", ErrGenerationExhausted
}
