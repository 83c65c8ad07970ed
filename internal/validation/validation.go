// Package validation checks values that end up as arguments of host commands.
//
// Probe lines are split on whitespace and built commands pass each value as
// one argument, so a value that must stay a single argument may not contain
// whitespace, and no value may carry control characters.
package validation

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"unicode"
)

// Common validation errors.
var (
	ErrEmptyInput         = errors.New("input cannot be empty")
	ErrInvalidPackageSpec = errors.New("invalid package spec")
	ErrInvalidURL         = errors.New("invalid URL")
	ErrInvalidPath        = errors.New("invalid path")
	ErrNewlineInjection   = errors.New("newline injection detected")
	ErrControlCharacter   = errors.New("control character detected")
	ErrWhitespace         = errors.New("value must be a single word")
)

// ValidatePackageSpec validates a package spec passed to the package tool.
// Anything dnf resolves is accepted (names, NEVRAs, globs, file paths,
// provides such as "pkgconfig(gtk+-3.0)") as long as it stays one argument
// and cannot be read as an option.
func ValidatePackageSpec(spec string) error {
	if spec == "" {
		return ErrEmptyInput
	}

	if len(spec) > 256 {
		return fmt.Errorf("%w: spec too long (max 256 characters)", ErrInvalidPackageSpec)
	}

	if err := ValidateWord(spec); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidPackageSpec, err)
	}

	if strings.HasPrefix(spec, "-") {
		return fmt.Errorf("%w: %q starts with '-'", ErrInvalidPackageSpec, spec)
	}

	return nil
}

// ValidateURL validates an absolute http or https URL.
func ValidateURL(raw string) error {
	if raw == "" {
		return ErrEmptyInput
	}

	if len(raw) > 2048 {
		return fmt.Errorf("%w: URL too long", ErrInvalidURL)
	}

	if err := ValidateWord(raw); err != nil {
		return err
	}

	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: %q must use http or https", ErrInvalidURL, raw)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: %q has no host", ErrInvalidURL, raw)
	}

	return nil
}

// ValidateCommandLine validates a single-line command such as a probe.
func ValidateCommandLine(line string) error {
	if strings.TrimSpace(line) == "" {
		return ErrEmptyInput
	}

	if strings.ContainsAny(line, "\n\r") {
		return fmt.Errorf("%w: %q spans more than one line", ErrNewlineInjection, line)
	}

	if containsControl(line, true) {
		return fmt.Errorf("%w: %q", ErrControlCharacter, line)
	}

	return nil
}

// ValidatePath validates a filesystem path. Spaces are allowed.
func ValidatePath(path string) error {
	if path == "" {
		return ErrEmptyInput
	}

	if strings.Contains(path, "\x00") {
		return fmt.Errorf("%w: path contains null byte", ErrInvalidPath)
	}

	if containsControl(path, false) {
		return fmt.Errorf("%w: %q", ErrControlCharacter, path)
	}

	return nil
}

// ValidateWord validates a value that must remain one argument after
// whitespace splitting.
func ValidateWord(s string) error {
	if s == "" {
		return ErrEmptyInput
	}

	if containsControl(s, false) {
		return fmt.Errorf("%w: %q", ErrControlCharacter, s)
	}

	if strings.IndexFunc(s, unicode.IsSpace) >= 0 {
		return fmt.Errorf("%w: %q contains whitespace", ErrWhitespace, s)
	}

	return nil
}

// containsControl reports whether s has control characters.
// Tabs are tolerated when allowTab is set.
func containsControl(s string, allowTab bool) bool {
	return strings.IndexFunc(s, func(r rune) bool {
		if allowTab && r == '\t' {
			return false
		}
		return unicode.IsControl(r)
	}) >= 0
}
