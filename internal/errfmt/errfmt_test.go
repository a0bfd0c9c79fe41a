package errfmt

import (
	"errors"
	"strings"
	"testing"
)

func TestTruncate_ShortPassthrough(t *testing.T) {
	result := Truncate("short message")
	if result != "short message" {
		t.Errorf("Truncate() = %q, want %q", result, "short message")
	}
}

func TestTruncate_LongMessage(t *testing.T) {
	longMsg := strings.Repeat("x", MaxLen+500)
	result := Truncate(longMsg)
	if len(result) != MaxLen {
		t.Errorf("len(result) = %d, want %d", len(result), MaxLen)
	}
}

func TestTruncate_UTF8Boundary(t *testing.T) {
	prefix := strings.Repeat("x", MaxLen-2)
	result := Truncate(prefix + "\U0001F600") // 4-byte rune straddles the cap
	if result != prefix {
		t.Errorf("Truncate() kept %d bytes, want %d", len(result), len(prefix))
	}
}

func TestInline(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"plain", errors.New("exec: not found"), "exec: not found"},
		{"newlines", errors.New("open /dev/ptmx:\nno such device"), "open /dev/ptmx: no such device"},
		{"tab", errors.New("a\tb"), "a b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Inline(tt.err); got != tt.want {
				t.Errorf("Inline() = %q, want %q", got, tt.want)
			}
		})
	}
}
