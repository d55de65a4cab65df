package pdftext

import (
	"strings"
)

// textFromContent scrapes the text-showing operators out of a raw PDF page
// content stream. Literal strings are collected in stream order; the
// text-positioning operators (Td, TD, T*) and ET end the current output
// line. Strings inside a TJ kerning array are joined directly since the
// splits fall inside words; separate literals are joined with a space.
func textFromContent(content []byte) string {
	var lines []string
	var line strings.Builder
	inArray := false
	firstInArray := false

	flush := func() {
		if s := strings.TrimSpace(line.String()); s != "" {
			lines = append(lines, s)
		}
		line.Reset()
	}

	n := len(content)
	for i := 0; i < n; {
		c := content[i]
		switch {
		case c == '(':
			s, next := literalString(content, i+1)
			if inArray && !firstInArray {
				line.WriteString(s)
			} else {
				writeSeparated(&line, s)
			}
			firstInArray = false
			i = next
		case c == '[':
			inArray = true
			firstInArray = true
			i++
		case c == ']':
			inArray = false
			i++
		case c == '%':
			for i < n && content[i] != '\n' {
				i++
			}
		case c == 'T' && i+1 < n && (content[i+1] == 'd' || content[i+1] == 'D' || content[i+1] == '*'):
			flush()
			i += 2
		case c == 'E' && i+1 < n && content[i+1] == 'T':
			flush()
			i += 2
		default:
			i++
		}
	}
	flush()

	return strings.Join(lines, "\n")
}

// writeSeparated appends s to line with a single separating space unless
// the line is empty or already ends in whitespace.
func writeSeparated(line *strings.Builder, s string) {
	if line.Len() > 0 && !strings.HasSuffix(line.String(), " ") {
		line.WriteByte(' ')
	}
	line.WriteString(s)
}

// literalString reads a PDF literal string starting just after its opening
// parenthesis, honoring escapes and balanced nested parentheses. It returns
// the decoded bytes and the index just past the closing parenthesis.
func literalString(content []byte, start int) (string, int) {
	var b strings.Builder
	depth := 1

	for i := start; i < len(content); i++ {
		c := content[i]
		switch c {
		case '\\':
			if i+1 >= len(content) {
				return b.String(), i + 1
			}
			i++
			switch e := content[i]; {
			case e == 'n':
				b.WriteByte('\n')
			case e == 'r':
				b.WriteByte('\r')
			case e == 't':
				b.WriteByte('\t')
			case e == '(' || e == ')' || e == '\\':
				b.WriteByte(e)
			case e >= '0' && e <= '7':
				v := int(e - '0')
				for k := 0; k < 2 && i+1 < len(content) && content[i+1] >= '0' && content[i+1] <= '7'; k++ {
					i++
					v = v*8 + int(content[i]-'0')
				}
				b.WriteByte(byte(v))
			}
		case '(':
			depth++
			b.WriteByte(c)
		case ')':
			depth--
			if depth == 0 {
				return b.String(), i + 1
			}
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
	}
	return b.String(), len(content)
}
