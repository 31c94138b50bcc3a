package extract

// sanitize returns a copy of text with comment bodies and string/char
// literal interiors replaced by spaces. Offsets, newlines, and literal
// delimiters are preserved, so spans computed on the sanitized text are
// valid in the original and literal lengths stay measurable.
//
// The second return value reports whether a block comment was left
// unterminated at end of input.
func sanitize(text string) (string, bool) {
	out := []byte(text)

	const (
		stCode = iota
		stLine
		stBlock
		stString
		stChar
	)

	state := stCode
	for i := 0; i < len(out); i++ {
		c := out[i]

		switch state {
		case stCode:
			switch {
			case c == '/' && i+1 < len(out) && out[i+1] == '/':
				state = stLine
				out[i] = ' '
			case c == '/' && i+1 < len(out) && out[i+1] == '*':
				state = stBlock
				out[i] = ' '
			case c == '"':
				state = stString
			case c == '\'':
				state = stChar
			}

		case stLine:
			if c == '\n' {
				state = stCode
			} else {
				out[i] = ' '
			}

		case stBlock:
			if c == '*' && i+1 < len(out) && out[i+1] == '/' {
				out[i] = ' '
				out[i+1] = ' '
				i++
				state = stCode
			} else if c != '\n' {
				out[i] = ' '
			}

		case stString:
			switch {
			case c == '\\' && i+1 < len(out):
				out[i] = ' '
				if out[i+1] != '\n' {
					out[i+1] = ' '
				}
				i++
			case c == '"':
				state = stCode
			case c == '\n':
				// Unterminated literal on this line; stop blanking.
				state = stCode
			default:
				out[i] = ' '
			}

		case stChar:
			switch {
			case c == '\\' && i+1 < len(out):
				out[i] = ' '
				out[i+1] = ' '
				i++
			case c == '\'':
				state = stCode
			case c == '\n':
				state = stCode
			default:
				out[i] = ' '
			}
		}
	}

	return string(out), state == stBlock
}
