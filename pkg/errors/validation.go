package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// maxDimension bounds panel and block sizes. Anything larger is a typo.
const maxDimension = 100000

// ValidateDimension checks that a named size is positive and sane.
func ValidateDimension(name string, v int) error {
	if v <= 0 {
		return New(ErrCodeInvalidConfig, "%s must be positive, got %d", name, v)
	}
	if v > maxDimension {
		return New(ErrCodeInvalidConfig, "%s too large (max %d), got %d", name, maxDimension, v)
	}
	return nil
}

// ValidateFits checks that a block of blockW x blockH fits inside a panel of
// panelW x panelH. A block larger than its panel has no valid position.
func ValidateFits(panelW, panelH, blockW, blockH int) error {
	if blockW > panelW {
		return New(ErrCodeInvalidConfig, "block width %d exceeds panel width %d", blockW, panelW)
	}
	if blockH > panelH {
		return New(ErrCodeInvalidConfig, "block height %d exceeds panel height %d", blockH, panelH)
	}
	return nil
}

// ValidateLabel validates the block label.
//
// Validation rules:
//   - Label cannot be empty
//   - Maximum length of 64 characters
//   - No control characters (the label is drawn on a single line)
func ValidateLabel(label string) error {
	if label == "" {
		return New(ErrCodeInvalidConfig, "block label cannot be empty")
	}

	const maxLabelLength = 64
	if len([]rune(label)) > maxLabelLength {
		return New(ErrCodeInvalidConfig, "block label too long (max %d characters)", maxLabelLength)
	}

	for _, r := range label {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidConfig, "block label contains control characters")
		}
	}

	return nil
}

// supportedExts lists the file formats for configs and scripts.
var supportedExts = map[string]bool{".toml": true, ".yaml": true, ".yml": true}

// ValidateDataPath validates a config or script path.
//
// Validation rules:
//   - Path cannot be empty
//   - No null bytes or control characters
//   - Extension must be .toml, .yaml or .yml
func ValidateDataPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	ext := strings.ToLower(filepath.Ext(path))
	if !supportedExts[ext] {
		return New(ErrCodeInvalidFormat, "unsupported file type %q (want .toml, .yaml or .yml)", ext)
	}

	return nil
}
