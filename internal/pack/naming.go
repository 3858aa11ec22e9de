package pack

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	nameRE        = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)
	nonAlnum      = regexp.MustCompile(`[^a-zA-Z0-9]+`)
	suffixAllowed = regexp.MustCompile(`[a-f0-9]+`)
)

// ValidateName enforces the pack/table name shape: lowercase alphanumeric
// starting with a letter or digit, dashes and underscores inside.
func ValidateName(name string) error {
	if name == "" {
		return errEmptyName
	}
	if !nameRE.MatchString(name) {
		return fmt.Errorf("%w: %q", errBadName, name)
	}

	return nil
}

func Slugify(input string) string {
	if input == "" {
		return "pack"
	}
	s := nonAlnum.ReplaceAllString(input, "_")
	s = strings.Trim(s, "_")
	s = strings.ToLower(s)
	if s == "" {
		return "pack"
	}

	return s
}

func WithSuffix(base, digest string) string {
	if len(digest) > 7 {
		digest = digest[:7]
	}
	digest = sanitizeSuffix(digest)
	base = Slugify(base)
	if digest == "" {
		return base
	}
	if strings.HasSuffix(base, digest) {
		return base
	}

	return base + "_" + digest
}

func sanitizeSuffix(digest string) string {
	digest = strings.ToLower(digest)
	if matches := suffixAllowed.FindAllString(digest, -1); len(matches) > 0 {
		return matches[0]
	}

	return ""
}
