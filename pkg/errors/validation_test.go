package errors

import (
	"strings"
	"testing"
)

func TestValidateDimension(t *testing.T) {
	tests := []struct {
		name    string
		input   int
		wantErr bool
	}{
		{"one", 1, false},
		{"typical", 500, false},
		{"max", maxDimension, false},

		{"zero", 0, true},
		{"negative", -5, true},
		{"too large", maxDimension + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDimension("panel width", tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDimension(%d) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidConfig) {
				t.Errorf("code = %v, want %v", GetCode(err), ErrCodeInvalidConfig)
			}
		})
	}
}

func TestValidateFits(t *testing.T) {
	tests := []struct {
		name           string
		pw, ph, bw, bh int
		wantErr        bool
	}{
		{"fits", 500, 500, 80, 30, false},
		{"exact", 80, 30, 80, 30, false},
		{"too wide", 50, 500, 80, 30, true},
		{"too tall", 500, 20, 80, 30, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFits(tt.pw, tt.ph, tt.bw, tt.bh)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFits() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateLabel(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"default", "drag me!", false},
		{"unicode", "zieh mich ↔", false},

		{"empty", "", true},
		{"too long", strings.Repeat("x", 65), true},
		{"newline", "drag\nme", true},
		{"tab", "drag\tme", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLabel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateLabel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateDataPath(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantCode Code
	}{
		{"toml", "panel.toml", ""},
		{"yaml", "scripts/drag.yaml", ""},
		{"yml upper", "/tmp/DRAG.YML", ""},

		{"empty", "", ErrCodeInvalidPath},
		{"null byte", "a\x00.toml", ErrCodeInvalidPath},
		{"json", "panel.json", ErrCodeInvalidFormat},
		{"no extension", "panel", ErrCodeInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDataPath(tt.input)
			if got := GetCode(err); got != tt.wantCode {
				t.Errorf("ValidateDataPath(%q) code = %q, want %q", tt.input, got, tt.wantCode)
			}
		})
	}
}
