// Package vpath parses and normalizes slash separated virtual paths.
// Nothing here touches a tree, so every function succeeds for paths that
// do not exist.
package vpath

import (
	"regexp"
	"strings"
)

var separators = regexp.MustCompile(`/+`)

// Parse splits p into its segments. Each segment is trimmed, empty and "."
// segments are dropped and ".." pops the previously collected segment.
// ".." never climbs above the root; extra ones are ignored.
func Parse(p string) []string {
	segs := make([]string, 0, strings.Count(p, "/")+1)
	for _, term := range separators.Split(p, -1) {
		term = strings.TrimSpace(term)
		switch term {
		case "", ".":
			continue
		case "..":
			if len(segs) > 0 {
				segs = segs[:len(segs)-1]
			}
		default:
			segs = append(segs, term)
		}
	}
	return segs
}

// Normalize returns the canonical absolute form of p.
func Normalize(p string) string {
	return Format(Parse(p))
}

// Format assembles segments into an absolute path.
func Format(segs []string) string {
	return "/" + strings.Join(segs, "/")
}

// Dirname returns the normalized parent of p. The parent of the root is
// the root.
func Dirname(p string) string {
	segs := Parse(p)
	if len(segs) == 0 {
		return "/"
	}
	return Format(segs[:len(segs)-1])
}

// Basename returns the last segment of p, or "" for the root.
func Basename(p string) string {
	segs := Parse(p)
	if len(segs) == 0 {
		return ""
	}
	return segs[len(segs)-1]
}

// Join joins parts with the separator and normalizes the result. The
// result is absolute only when the first part starts with a separator.
func Join(parts ...string) string {
	if len(parts) == 0 {
		return ""
	}
	joined := strings.Join(Parse(strings.Join(parts, "/")), "/")
	if strings.HasPrefix(parts[0], "/") {
		return "/" + joined
	}
	return joined
}

// Split separates segs into the parent segments and the final name.
// name is "" when segs is empty.
func Split(segs []string) (parent []string, name string) {
	if len(segs) == 0 {
		return segs, ""
	}
	return segs[:len(segs)-1], segs[len(segs)-1]
}

// HasPrefix reports whether prefix is a proper ancestor of segs.
func HasPrefix(segs, prefix []string) bool {
	if len(prefix) >= len(segs) {
		return false
	}
	for i := range prefix {
		if segs[i] != prefix[i] {
			return false
		}
	}
	return true
}
