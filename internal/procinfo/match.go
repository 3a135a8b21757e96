package procinfo

import (
	"strings"
	"unicode/utf8"
)

// HasPrefixFold reports whether name starts with prefix, ignoring case.
// Characters are compared one at a time under simple Unicode case folding,
// so the result never depends on the host locale and a prefix matches even
// when its folded form has a different UTF-8 length ("ſ" matches "S").
// Invalid UTF-8 bytes match only themselves.
func HasPrefixFold(name, prefix string) bool {
	for prefix != "" {
		if name == "" {
			return false
		}
		pr, pn := utf8.DecodeRuneInString(prefix)
		nr, nn := utf8.DecodeRuneInString(name)
		if pr == utf8.RuneError || nr == utf8.RuneError {
			if prefix[:pn] != name[:nn] {
				return false
			}
		} else if !strings.EqualFold(prefix[:pn], name[:nn]) {
			return false
		}
		prefix, name = prefix[pn:], name[nn:]
	}
	return true
}

// ImageName strips a trailing ".exe" from an executable name, ignoring case.
func ImageName(name string) string {
	const ext = ".exe"
	if len(name) > len(ext) && strings.EqualFold(name[len(name)-len(ext):], ext) {
		return name[:len(name)-len(ext)]
	}
	return name
}
