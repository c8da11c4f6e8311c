package mdrender

import (
	"strings"

	"golang.org/x/net/html"
)

type customTag struct {
	Name        string
	Attrs       map[string]string
	SelfClosing bool
	Closing     bool
	// Len is the length of the tag text including both angle brackets.
	Len int
}

// parseCustomTag reads the tag at the start of raw. Names and attribute
// names keep their case.
func parseCustomTag(raw string) (customTag, bool) {
	if len(raw) < 3 || raw[0] != '<' {
		return customTag{}, false
	}

	tag := customTag{}
	idx := 1
	if raw[idx] == '/' {
		tag.Closing = true
		idx++
	}

	nameStart := idx
	if idx >= len(raw) || !isTagNameStart(raw[idx]) {
		return customTag{}, false
	}
	for idx < len(raw) && isTagNameChar(raw[idx]) {
		idx++
	}
	tag.Name = raw[nameStart:idx]

	if tag.Closing {
		idx = skipTagSpace(raw, idx)
		if idx >= len(raw) || raw[idx] != '>' {
			return customTag{}, false
		}
		tag.Len = idx + 1
		return tag, true
	}

	tag.Attrs = map[string]string{}
	for {
		spaced := idx
		idx = skipTagSpace(raw, idx)
		if idx >= len(raw) {
			return customTag{}, false
		}
		switch {
		case raw[idx] == '>':
			tag.Len = idx + 1
			return tag, true
		case strings.HasPrefix(raw[idx:], "/>"):
			tag.SelfClosing = true
			tag.Len = idx + 2
			return tag, true
		case spaced == idx:
			// attributes must be separated from the name and each other
			return customTag{}, false
		}

		keyStart := idx
		for idx < len(raw) && isAttrNameChar(raw[idx]) {
			idx++
		}
		if keyStart == idx {
			return customTag{}, false
		}
		key := raw[keyStart:idx]

		valueStart := skipTagSpace(raw, idx)
		if valueStart >= len(raw) || raw[valueStart] != '=' {
			tag.Attrs[key] = ""
			continue
		}
		idx = skipTagSpace(raw, valueStart+1)
		if idx >= len(raw) {
			return customTag{}, false
		}

		if quote := raw[idx]; quote == '"' || quote == '\'' {
			end := strings.IndexByte(raw[idx+1:], quote)
			if end < 0 {
				return customTag{}, false
			}
			tag.Attrs[key] = html.UnescapeString(raw[idx+1 : idx+1+end])
			idx += end + 2
			continue
		}

		unquotedStart := idx
		for idx < len(raw) && !isTagSpace(raw[idx]) && raw[idx] != '>' && !strings.HasPrefix(raw[idx:], "/>") {
			if raw[idx] == '"' || raw[idx] == '\'' || raw[idx] == '<' || raw[idx] == '=' || raw[idx] == '`' {
				return customTag{}, false
			}
			idx++
		}
		if unquotedStart == idx {
			return customTag{}, false
		}
		tag.Attrs[key] = html.UnescapeString(raw[unquotedStart:idx])
	}
}

type tagMatch struct {
	pos int
	tag customTag
}

// findTags returns every tag named name in raw, in order.
func findTags(raw, name string) []tagMatch {
	var matches []tagMatch
	for idx := 0; idx < len(raw); {
		next := strings.IndexByte(raw[idx:], '<')
		if next < 0 {
			break
		}
		idx += next
		tag, ok := parseCustomTag(raw[idx:])
		if !ok || tag.Name != name {
			idx++
			continue
		}
		matches = append(matches, tagMatch{pos: idx, tag: tag})
		idx += tag.Len
	}
	return matches
}

// tagBalance is the number of opening minus closing tags named name in raw.
func tagBalance(raw, name string) int {
	balance := 0
	for _, match := range findTags(raw, name) {
		switch {
		case match.tag.Closing:
			balance--
		case !match.tag.SelfClosing:
			balance++
		}
	}
	return balance
}

func skipTagSpace(raw string, idx int) int {
	for idx < len(raw) && isTagSpace(raw[idx]) {
		idx++
	}
	return idx
}

func isTagSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' || ch == '\f'
}

func isTagNameStart(ch byte) bool {
	return ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z'
}

func isTagNameChar(ch byte) bool {
	return isTagNameStart(ch) || ch >= '0' && ch <= '9' || ch == '-' || ch == '_' || ch == '.' || ch == ':'
}

func isAttrNameChar(ch byte) bool {
	return !isTagSpace(ch) && ch != '=' && ch != '>' && ch != '/' && ch != '"' && ch != '\'' && ch != '<'
}
