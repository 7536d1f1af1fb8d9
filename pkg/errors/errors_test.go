package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidParameter, "num_nodes must be >= 1, got %d", 0)

	if err.Code != ErrCodeInvalidParameter {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidParameter)
	}
	if want := "INVALID_PARAMETER: num_nodes must be >= 1, got 0"; err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}
}

func TestWrap(t *testing.T) {
	err := Wrap(ErrCodeFileNotFound, fs.ErrNotExist, "read graph %s", "g.json")

	if err.Code != ErrCodeFileNotFound {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeFileNotFound)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Error("errors.Is(err, fs.ErrNotExist) = false, want true")
	}
	if want := "FILE_NOT_FOUND: read graph g.json: file does not exist"; err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{"matching code", New(ErrCodeNodeNotFound, "start"), ErrCodeNodeNotFound, true},
		{"non-matching code", New(ErrCodeNodeNotFound, "start"), ErrCodeInvalidParameter, false},
		{"outer code wins", Wrap(ErrCodeNetwork, New(ErrCodeInvalidInput, "inner"), "outer"), ErrCodeNetwork, true},
		{"inner code hidden", Wrap(ErrCodeNetwork, New(ErrCodeInvalidInput, "inner"), "outer"), ErrCodeInvalidInput, false},
		{"fmt wrapped", fmt.Errorf("preset %q: %w", "tiny", New(ErrCodeInvalidParameter, "fanout")), ErrCodeInvalidParameter, true},
		{"plain error", errors.New("plain error"), ErrCodeInvalidInput, false},
		{"nil error", nil, ErrCodeInvalidInput, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{"Error type", New(ErrCodeUnsupported, "rsvg-convert not found"), ErrCodeUnsupported},
		{"validator", ValidateNodeRange("goal", 7, 6), ErrCodeNodeNotFound},
		{"empty graph", ValidateNodeRange("start", 1, 0), ErrCodeInvalidParameter},
		{"fmt wrapped", fmt.Errorf("load config: %w", New(ErrCodeInvalidFormat, "bad toml")), ErrCodeInvalidFormat},
		{"plain error", errors.New("plain"), ""},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"Error type", New(ErrCodePresetNotFound, "no preset named %q", "huge"), `no preset named "huge"`},
		{"validator", ValidateNodeRange("start", 0, 500), "start must be between 1 and 500, got 0"},
		{"cause not shown", Wrap(ErrCodeNetwork, errors.New("dial tcp: refused"), "redis get"), "redis get"},
		{"fmt context dropped", fmt.Errorf("preset %q: %w", "tiny", New(ErrCodeInvalidParameter, "fanout must be >= 0")), "fanout must be >= 0"},
		{"plain error", errors.New("plain error"), "plain error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}
