package main

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// CLiteral renders s as a double-quoted C/C++ string literal whose value is
// exactly the bytes of s. Valid UTF-8 is copied through; control bytes and
// bytes that are not part of a valid UTF-8 sequence become three-digit octal
// escapes, which cannot absorb a following digit. The result is also
// accepted by strconv.Unquote.
func CLiteral(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for i := 0; i < len(s); {
		c := s[i]
		if c >= utf8.RuneSelf {
			r, size := utf8.DecodeRuneInString(s[i:])
			if r == utf8.RuneError && size == 1 {
				fmt.Fprintf(&b, `\%03o`, c)
			} else {
				b.WriteString(s[i : i+size])
			}
			i += size
			continue
		}

		switch c {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		case '\v':
			b.WriteString(`\v`)
		default:
			if c < 0x20 || c == 0x7f {
				fmt.Fprintf(&b, `\%03o`, c)
			} else {
				b.WriteByte(c)
			}
		}
		i++
	}
	b.WriteByte('"')
	return b.String()
}
