// Package refname turns raw git ref names into identifiers that are safe to
// use as URL path segments, directory names, and switcher registry keys.
package refname

import (
	"regexp"
	"strconv"
	"strings"
)

// disallowed matches every character that may not appear in a sanitized
// version identifier.
var disallowed = regexp.MustCompile(`[^A-Za-z0-9._-]`)

// Sanitize replaces every disallowed character in a raw ref name with an
// underscore. The mapping is total and stable: the same input always yields
// the same output.
func Sanitize(raw string) string {
	return disallowed.ReplaceAllString(raw, "_")
}

// Valid reports whether s is a non-empty, already-sanitized version
// identifier.
func Valid(s string) bool {
	return s != "" && !disallowed.MatchString(s)
}

// Compare orders two version identifiers semver-style and returns -1, 0, or
// 1. Identifiers are split into a release part and an optional prerelease
// part at the first '-'. Release parts are compared segment by segment on
// '.' boundaries, numerically where both segments are numeric and
// lexically otherwise; a missing segment sorts before any present segment.
// A version with a prerelease sorts before the same release without one.
//
// Identifiers here are looser than strict semver (branch names, "v"-prefixed
// tags, date stamps), so Compare never fails: anything non-numeric simply
// falls back to lexical ordering within its segment.
func Compare(a, b string) int {
	ra, pa := splitPrerelease(strings.TrimPrefix(a, "v"))
	rb, pb := splitPrerelease(strings.TrimPrefix(b, "v"))

	if c := compareRelease(ra, rb); c != 0 {
		return c
	}

	switch {
	case pa == pb:
		return 0
	case pa == "":
		return 1 // release > prerelease
	case pb == "":
		return -1
	default:
		return compareRelease(pa, pb)
	}
}

func splitPrerelease(s string) (release, prerelease string) {
	if i := strings.IndexByte(s, '-'); i >= 0 {
		return s[:i], s[i+1:]
	}
	return s, ""
}

func compareRelease(a, b string) int {
	as := strings.Split(a, ".")
	bs := strings.Split(b, ".")

	for i := 0; i < len(as) || i < len(bs); i++ {
		switch {
		case i >= len(as):
			return -1
		case i >= len(bs):
			return 1
		}

		an, aNum := atoi(as[i])
		bn, bNum := atoi(bs[i])

		switch {
		case aNum && bNum:
			if an != bn {
				return sign(an - bn)
			}
		case aNum:
			return -1 // numeric segments sort before alphanumeric ones
		case bNum:
			return 1
		default:
			if c := strings.Compare(as[i], bs[i]); c != 0 {
				return c
			}
		}
	}
	return 0
}

func atoi(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	return n, err == nil
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}
