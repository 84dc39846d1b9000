package membership

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestNewCodeShape(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		code, err := NewCode()
		if err != nil {
			t.Fatalf("NewCode: %v", err)
		}
		if len(code) != CodeLength {
			t.Fatalf("code %q has length %d, want %d", code, len(code), CodeLength)
		}
		for _, r := range code {
			if !strings.ContainsRune(CodeAlphabet, r) {
				t.Fatalf("code %q contains %q, not in alphabet", code, r)
			}
		}
		seen[code] = true
	}
	// 200 draws from a 32^6 space should essentially never collide.
	if len(seen) < 190 {
		t.Errorf("only %d distinct codes in 200 draws", len(seen))
	}
}

func TestCodeAlphabetExcludesAmbiguousGlyphs(t *testing.T) {
	for _, r := range "0O1I" {
		if strings.ContainsRune(CodeAlphabet, r) {
			t.Errorf("alphabet contains ambiguous glyph %q", r)
		}
	}
	if len(CodeAlphabet) != 32 {
		t.Errorf("alphabet has %d symbols, want 32", len(CodeAlphabet))
	}
}

func TestUniqueCodeFirstTry(t *testing.T) {
	code, err := uniqueCode(context.Background(), func(context.Context, string) (bool, error) {
		return false, nil
	})
	if err != nil {
		t.Fatalf("uniqueCode: %v", err)
	}
	if len(code) != CodeLength {
		t.Errorf("code %q has length %d, want %d", code, len(code), CodeLength)
	}
}

func TestUniqueCodeRetriesOnCollision(t *testing.T) {
	calls := 0
	code, err := uniqueCode(context.Background(), func(context.Context, string) (bool, error) {
		calls++
		return calls < 3, nil
	})
	if err != nil {
		t.Fatalf("uniqueCode: %v", err)
	}
	if code == "" {
		t.Error("expected a code after retries")
	}
	if calls != 3 {
		t.Errorf("exists called %d times, want 3", calls)
	}
}

func TestUniqueCodeExhaustion(t *testing.T) {
	calls := 0
	_, err := uniqueCode(context.Background(), func(context.Context, string) (bool, error) {
		calls++
		return true, nil
	})
	if !errors.Is(err, ErrGenerationExhausted) {
		t.Fatalf("got %v, want ErrGenerationExhausted", err)
	}
	if CodeOf(err) != CodeGenerationExhausted {
		t.Errorf("CodeOf = %q, want %q", CodeOf(err), CodeGenerationExhausted)
	}
	if calls != maxCodeAttempts {
		t.Errorf("exists called %d times, want %d", calls, maxCodeAttempts)
	}
}

func TestUniqueCodePropagatesLookupError(t *testing.T) {
	boom := errors.New("boom")
	_, err := uniqueCode(context.Background(), func(context.Context, string) (bool, error) {
		return false, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("got %v, want wrapped lookup error", err)
	}
	if errors.Is(err, ErrGenerationExhausted) {
		t.Error("lookup failure must not report exhaustion")
	}
}

func TestCodeOfNonMembershipError(t *testing.T) {
	if got := CodeOf(errors.New("plain")); got != "" {
		t.Errorf("CodeOf(plain error) = %q, want empty", got)
	}
}
