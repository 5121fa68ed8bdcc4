package keggurl

import "strings"

const upperhex = "0123456789ABCDEF"

// Escape percent-encodes s the way browsers encode a URI component: every
// byte except ASCII letters, digits and -_.!~*'() is written as %XX.
// net/url has no mode with this exact unreserved set; QueryEscape turns
// spaces into "+" and PathEscape leaves ",", ";" and "=" alone, all of
// which change the meaning of a KEGG colouring link.
func Escape(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if unreserved(c) {
			sb.WriteByte(c)
			continue
		}
		sb.WriteByte('%')
		sb.WriteByte(upperhex[c>>4])
		sb.WriteByte(upperhex[c&15])
	}
	return sb.String()
}

func unreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}
