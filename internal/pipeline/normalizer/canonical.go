package normalizer

import (
	"net/url"
	"path"
	"strings"
)

// NormalizeToken lowers a native vocabulary label and collapses every
// non-alphanumeric run into a single underscore, so "Cross-Site Scripting
// (Reflected)" and "cross_site_scripting_reflected" compare equal.
func NormalizeToken(s string) string {
	var b strings.Builder
	lastUnderscore := true
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}

// CanonicalPath normalizes separators, cleans the path and strips any
// configured repository-root prefix, so the same file reported by different
// tools ends up with an identical relative path.
func CanonicalPath(p string, rootPrefixes []string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return ""
	}

	p = strings.ReplaceAll(p, "\\", "/")
	p = path.Clean(p)
	if p == "." || p == "/" {
		return ""
	}

	for _, prefix := range rootPrefixes {
		prefix = strings.ReplaceAll(prefix, "\\", "/")
		if trimmed, ok := strings.CutPrefix(p, prefix); ok {
			p = trimmed
			break
		}
	}

	return strings.TrimPrefix(p, "/")
}

// CanonicalURL strips the query string and fragment, lower-cases the scheme
// and host and trims a trailing slash, so probe variants of the same endpoint
// compare equal.
func CanonicalURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	u, err := url.Parse(raw)
	if err != nil {
		// Not parseable as a URL; fall back to textual cleanup.
		if i := strings.IndexByte(raw, '?'); i >= 0 {
			raw = raw[:i]
		}
		return strings.TrimSuffix(raw, "/")
	}

	u.RawQuery = ""
	u.Fragment = ""
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Path = strings.TrimSuffix(u.Path, "/")
	return u.String()
}
