package database

import "strings"

// Slugify derives a presentation id from its title. The title is lowercased;
// ASCII letters, digits and lowercase Cyrillic letters are kept; every other
// run of characters becomes a single hyphen; edge hyphens are dropped.
// A title with nothing to keep yields "".
func Slugify(title string) string {
	var b strings.Builder
	pendingSep := false
	for _, r := range strings.ToLower(title) {
		if !isSlugRune(r) {
			pendingSep = true
			continue
		}
		if pendingSep && b.Len() > 0 {
			b.WriteByte('-')
		}
		pendingSep = false
		b.WriteRune(r)
	}
	return b.String()
}

func isSlugRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r >= '0' && r <= '9':
		return true
	case r >= 'а' && r <= 'я':
		return true
	case r == 'ё':
		return true
	}
	return false
}
