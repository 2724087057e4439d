package authgate

import "strings"

// WildcardMarker terminates an exclusion rule that matches by prefix.
const WildcardMarker = "*"

// RequireAuth decides whether a request path needs authentication given the
// configured exclusion rules. It is a pure function: deterministic, no side
// effects, and rule order never changes the boolean result.
//
// The policy fails closed: an empty path requires auth, and an empty
// exclusion list protects everything. Paths are normalized to a trailing
// slash before comparison, so "/status" and "/status/" are equivalent. A rule
// ending in "*" matches every normalized path that starts with the rule minus
// the marker; any other rule must match the normalized path exactly.
func RequireAuth(path string, excluded []string) bool {
	if path == "" {
		return true
	}
	if len(excluded) == 0 {
		return true
	}

	normalized := normalizePath(path)

	for _, rule := range excluded {
		if rule == "" {
			continue
		}
		if strings.HasSuffix(rule, WildcardMarker) {
			prefix := strings.TrimSuffix(rule, WildcardMarker)
			if strings.HasPrefix(normalized, prefix) {
				return false
			}
			continue
		}
		if normalized == normalizePath(rule) {
			return false
		}
	}

	return true
}

func normalizePath(path string) string {
	if strings.HasSuffix(path, "/") {
		return path
	}
	return path + "/"
}
