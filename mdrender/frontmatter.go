package mdrender

import "strings"

// splitFrontmatter detects a leading block fenced by a "---" line and closed
// by a "---" or "..." line. It returns the text between the fences and the
// offset where the markdown body starts.
func splitFrontmatter(source string) (string, int, bool) {
	first, rest, ok := cutLine(source)
	if !ok || strings.TrimRight(first, " \t\r") != "---" {
		return "", 0, false
	}

	start := len(source) - len(rest)
	offset := start
	for rest != "" {
		line, next, _ := cutLine(rest)
		trimmed := strings.TrimRight(line, " \t\r")
		lineStart := offset
		offset += len(rest) - len(next)
		if trimmed == "---" || trimmed == "..." {
			return source[start:lineStart], offset, true
		}
		rest = next
	}
	return "", 0, false
}

// cutLine splits off the first line without its newline. ok is false when
// source has no newline at all.
func cutLine(source string) (line, rest string, ok bool) {
	idx := strings.IndexByte(source, '\n')
	if idx < 0 {
		return source, "", false
	}
	return source[:idx], source[idx+1:], true
}
