package blog

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// translit maps Cyrillic letters to their Latin spellings. Titles are
// lowercased before lookup, so only lowercase keys appear. Hard and soft
// signs map to nothing.
var translit = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d",
	'е': "e", 'ё': "yo", 'ж': "zh", 'з': "z", 'и': "i",
	'й': "y", 'к': "k", 'л': "l", 'м': "m", 'н': "n",
	'о': "o", 'п': "p", 'р': "r", 'с': "s", 'т': "t",
	'у': "u", 'ф': "f", 'х': "h", 'ц': "ts", 'ч': "ch",
	'ш': "sh", 'щ': "sch", 'ъ': "", 'ы': "y", 'ь': "",
	'э': "e", 'ю': "yu", 'я': "ya", 'і': "i", 'ї': "yi",
}

// Slugify converts a post title to a URL-safe ASCII slug: lowercase,
// transliterate Cyrillic, decompose anything else non-ASCII and keep the
// ASCII base letter, drop the rest, then hyphenate whitespace runs.
// Identical input always yields an identical slug.
func Slugify(title string) string {
	lower := strings.ToLower(title)

	var b strings.Builder
	b.Grow(len(lower))
	for _, r := range lower {
		if s, ok := translit[r]; ok {
			b.WriteString(s)
			continue
		}
		if r < 128 {
			b.WriteRune(r)
			continue
		}
		// Generic fallback: NFD-decompose and keep an ASCII base letter
		// if one falls out. Combining marks and unmapped letters are
		// dropped, not replaced.
		for _, d := range norm.NFD.String(string(r)) {
			if d < 128 {
				b.WriteRune(d)
			}
		}
	}

	cleaned := make([]rune, 0, b.Len())
	for _, r := range b.String() {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			cleaned = append(cleaned, r)
		case unicode.IsSpace(r):
			cleaned = append(cleaned, ' ')
		}
	}

	slug := strings.Join(strings.Fields(string(cleaned)), "-")
	return strings.Trim(slug, "-")
}
