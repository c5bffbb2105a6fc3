package scanner

// scanRegexp implements §4.4. Called with curr standing on the opening '/'.
// Tracks one boolean (inside a character class) toggled by unescaped '['
// and ']'; a backslash escapes the following byte unconditionally,
// including a newline. Terminates at the first unescaped '/' outside a
// character class, then consumes a maximal run of ASCII alphanumeric flag
// characters. Running off the end of the buffer before termination is not
// an error — the run so far is emitted as REGEXP.
func (s *Scanner) scanRegexp(start, line int) Token {
	s.curr++ // consume opening '/'

	inClass := false
	for s.curr < len(s.buf) {
		ch := s.buf[s.curr]
		if ch == '\\' {
			s.curr++
			if s.curr < len(s.buf) {
				if s.buf[s.curr] == '\n' {
					s.line++
				}
				s.curr++
			}
			continue
		}
		if ch == '[' {
			inClass = true
			s.curr++
			continue
		}
		if ch == ']' {
			inClass = false
			s.curr++
			continue
		}
		if ch == '/' && !inClass {
			s.curr++
			break
		}
		if ch == '\n' {
			s.line++
		}
		s.curr++
	}

	for s.curr < len(s.buf) {
		ch := s.buf[s.curr]
		if ch >= 128 {
			break
		}
		if isDigit[ch] || ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z') {
			s.curr++
			continue
		}
		break
	}

	return Token{Kind: REGEXP, Offset: start, Length: s.curr - start, Line: line}
}
