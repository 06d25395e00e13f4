package parser

// Objects returns every balanced top-level {...} span of text in order of
// appearance. Braces inside JSON string literals are ignored. An opening
// brace that never closes is skipped and scanning resumes after it.
func Objects(text string) []string {
	var spans []string

	for start := 0; start < len(text); start++ {
		if text[start] != '{' {
			continue
		}

		end := matchObject(text, start)
		if end < 0 {
			continue
		}

		spans = append(spans, text[start:end+1])
		start = end
	}

	return spans
}

// matchObject returns the index of the brace closing the one at start, or -1.
func matchObject(text string, start int) int {
	var (
		depth    int
		inString bool
		escaped  bool
	)

	for i := start; i < len(text); i++ {
		c := text[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}

	return -1
}
