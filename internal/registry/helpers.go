package registry

import (
	"crypto/rand"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

const (
	presetIDMaxLength      = 64
	randomIDSuffixLength   = 8
	randomIDSuffixFallback = "abcdefgh"
)

var (
	presetIDPattern     = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]*[a-z0-9])?$`)
	nonAlphanumericExpr = regexp.MustCompile(`[^a-z0-9]+`)
)

// GeneratePresetID converts a configuration path into a sanitized preset ID.
func GeneratePresetID(path string) string {
	base := filepath.Base(path)
	if ext := filepath.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}

	id := sanitizeFilename(base)
	if len(id) > presetIDMaxLength {
		id = strings.Trim(id[:presetIDMaxLength], "-")
	}
	if id == "" {
		id = fmt.Sprintf("preset-%s", randomIDSuffix(randomIDSuffixLength))
	}

	return id
}

// ValidatePresetID ensures the provided ID matches the allowed pattern.
func ValidatePresetID(id string) error {
	if id == "" {
		return fmt.Errorf("preset ID cannot be empty")
	}

	if len(id) > presetIDMaxLength {
		return fmt.Errorf("preset ID %q is too long: maximum length is %d characters", id, presetIDMaxLength)
	}

	if !presetIDPattern.MatchString(id) {
		return fmt.Errorf("invalid preset ID %q: must match %s", id, presetIDPattern.String())
	}

	return nil
}

func sanitizeFilename(name string) string {
	lowered := strings.ToLower(name)
	sanitized := nonAlphanumericExpr.ReplaceAllString(lowered, "-")
	return strings.Trim(sanitized, "-")
}

func randomIDSuffix(length int) string {
	const alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

	if length <= 0 {
		return ""
	}

	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return randomIDSuffixFallback
	}

	for i := range buf {
		buf[i] = alphabet[int(buf[i])%len(alphabet)]
	}

	return string(buf)
}
