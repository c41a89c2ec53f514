package errors

import (
	stderrors "errors"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "without cause",
			err:  New(ErrCodeInvalidChord, "unknown chord %q", "Hm9"),
			want: `INVALID_CHORD: unknown chord "Hm9"`,
		},
		{
			name: "with cause",
			err:  Wrap(ErrCodeConfig, stderrors.New("no such file"), "load %s", "tuning.toml"),
			want: "CONFIG_ERROR: load tuning.toml: no such file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeInvalidPitch, "bad pitch")

	if !Is(err, ErrCodeInvalidPitch) {
		t.Error("Is() = false for matching code")
	}
	if Is(err, ErrCodeInternal) {
		t.Error("Is() = true for non-matching code")
	}
	if Is(stderrors.New("plain"), ErrCodeInternal) {
		t.Error("Is() = true for non-structured error")
	}
}

func TestIsUnwrapsChain(t *testing.T) {
	inner := New(ErrCodeNotFound, "no snapshot")
	outer := Wrap(ErrCodeInternal, inner, "publish failed")

	// The outermost code wins.
	if !Is(outer, ErrCodeInternal) {
		t.Error("Is() did not match outer code")
	}
	if !stderrors.Is(outer, inner) {
		t.Error("errors.Is did not find wrapped cause")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeInvalidKey, "x")); got != ErrCodeInvalidKey {
		t.Errorf("GetCode() = %q, want %q", got, ErrCodeInvalidKey)
	}
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode() = %q for plain error, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeInvalidChord, "unknown chord")); got != "unknown chord" {
		t.Errorf("UserMessage() = %q", got)
	}
	if got := UserMessage(stderrors.New("plain")); got != "plain" {
		t.Errorf("UserMessage() = %q", got)
	}
}
