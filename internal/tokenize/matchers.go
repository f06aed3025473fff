package tokenize

import (
	"strings"
	"unicode/utf8"
)

const (
	// Characters allowed inside a URL besides letters, digits and %XX.
	urlPunct = "_~:/#[]@$&'*+;=-(),.?!"
	// URL characters that may not end a URL; they usually belong to the
	// surrounding prose.
	urlTrailing = "),.?!"
	// Single characters that may join two letter runs inside a word.
	wordJoiners = ".&'’-"
	// Single characters that may join two digit runs inside a number.
	numberJoiners = ".,-"
	// Closing quotes and brackets that may follow a terminator.
	closers = "\"”'’)]"
)

// isLetter accepts ASCII letters and the Latin-1 supplement letters
// (À-Ö, Ø-ÿ).
func isLetter(r rune) bool {
	return ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') ||
		(0xC0 <= r && r <= 0xF6) || (0xF8 <= r && r <= 0xFF)
}

func isDigit(r rune) bool { return '0' <= r && r <= '9' }

func isHex(b byte) bool {
	return ('0' <= b && b <= '9') || ('a' <= b && b <= 'f') || ('A' <= b && b <= 'F')
}

func runeAt(s string, i int) (rune, int) {
	if i >= len(s) {
		return utf8.RuneError, 0
	}
	return utf8.DecodeRuneInString(s[i:])
}

// run returns the byte length of the longest prefix of s[i:] whose runes
// all satisfy ok.
func run(s string, i int, ok func(rune) bool) int {
	j := i
	for j < len(s) {
		r, size := utf8.DecodeRuneInString(s[j:])
		if !ok(r) {
			break
		}
		j += size
	}
	return j - i
}

// matchURL matches http:// or https:// followed by URL characters, giving
// back trailing characters from urlTrailing.
func matchURL(s string) int {
	var i int
	switch {
	case strings.HasPrefix(s, "http://"):
		i = len("http://")
	case strings.HasPrefix(s, "https://"):
		i = len("https://")
	default:
		return 0
	}
	end := 0
	for i < len(s) {
		c := s[i]
		switch {
		case c == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]):
			i += 3
			end = i
			continue
		case isASCIIAlnum(c) || strings.IndexByte(urlPunct, c) >= 0:
			i++
			if strings.IndexByte(urlTrailing, c) < 0 {
				end = i
			}
			continue
		}
		break
	}
	return end
}

func isASCIIAlnum(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}

// matchWord matches letter runs joined by single characters from
// wordJoiners. A word never ends on a joiner.
func matchWord(s string) int {
	return joinedRuns(s, 0, isLetter, wordJoiners)
}

// matchNumber matches an optional leading dot and digit runs joined by
// single characters from numberJoiners. A trailing dot is left alone.
func matchNumber(s string) int {
	i := 0
	if strings.HasPrefix(s, ".") {
		i = 1
	}
	n := joinedRuns(s, i, isDigit, numberJoiners)
	if n == 0 {
		return 0
	}
	return i + n
}

func joinedRuns(s string, i int, ok func(rune) bool, joiners string) int {
	n := run(s, i, ok)
	if n == 0 {
		return 0
	}
	end := i + n
	for {
		j, size := runeAt(s, end)
		if size == 0 || !strings.ContainsRune(joiners, j) {
			break
		}
		m := run(s, end+size, ok)
		if m == 0 {
			break
		}
		end += size + m
	}
	return end - i
}

// matchBangRun matches one or more ! or ? and at most one closer.
func matchBangRun(s string) int {
	n := run(s, 0, func(r rune) bool { return r == '!' || r == '?' })
	if n == 0 {
		return 0
	}
	if r, size := runeAt(s, n); size > 0 && strings.ContainsRune(closers, r) {
		n += size
	}
	return n
}

// matchDots matches, in order of preference: an ellipsis of three or more
// dots, exactly two dots, a dot before a possessive 's, or one dot
// followed by any closers.
func matchDots(s string) int {
	if !strings.HasPrefix(s, ".") {
		return 0
	}
	dots := run(s, 0, func(r rune) bool { return r == '.' })
	switch {
	case dots >= 3:
		return dots
	case dots == 2:
		return 2
	case strings.HasPrefix(s, ".'s"):
		return len(".'s")
	case strings.HasPrefix(s, ".’s"):
		return len(".’s")
	}
	return 1 + run(s, 1, func(r rune) bool { return strings.ContainsRune(closers, r) })
}
