package chatroom

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const maskToken = "***"

// MaskWords replaces every case-insensitive occurrence of each configured
// word with the mask token. Words apply sequentially in configured order;
// the stored message keeps the original text, only the displayed copy is
// masked.
func MaskWords(text string, words []string) string {
	for _, word := range words {
		if word == "" {
			continue
		}
		text = replaceFold(text, word, maskToken)
	}
	return text
}

// replaceFold is a case-insensitive replace. Matching walks runes in the
// original text; byte offsets into a case-folded copy cannot be used
// because folding changes the byte length of many runes.
func replaceFold(text, word, mask string) string {
	var out strings.Builder
	for i := 0; i < len(text); {
		if n := foldPrefixLen(text[i:], word); n > 0 {
			out.WriteString(mask)
			i += n
			continue
		}
		_, size := utf8.DecodeRuneInString(text[i:])
		out.WriteString(text[i : i+size])
		i += size
	}
	return out.String()
}

// foldPrefixLen reports the byte length of the prefix of text that
// case-folds equal to word, or 0 when there is no match.
func foldPrefixLen(text, word string) int {
	i := 0
	for _, wr := range word {
		tr, size := utf8.DecodeRuneInString(text[i:])
		if size == 0 {
			return 0
		}
		if tr != wr && unicode.ToLower(tr) != unicode.ToLower(wr) {
			return 0
		}
		i += size
	}
	return i
}
