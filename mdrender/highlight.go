package mdrender

import (
	"bytes"
	"crypto/sha512"
	"encoding/base64"
	"errors"
	"fmt"
	"sync"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// ErrUnknownTheme is returned for a highlighting theme chroma does not know.
var ErrUnknownTheme = errors.New("unknown highlighting theme")

// HighlightClass is the class carried by highlighted pre elements. The
// theme stylesheet scopes its rules under it.
const HighlightClass = "chroma"

var themeCSS sync.Map // theme name -> []byte

// ThemeNames lists the themes accepted by ThemeCSS.
func ThemeNames() []string {
	return styles.Names()
}

// ThemeCSS returns the stylesheet for the named chroma theme.
func ThemeCSS(name string) ([]byte, error) {
	if cached, ok := themeCSS.Load(name); ok {
		return cached.([]byte), nil
	}
	style, ok := styles.Registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTheme, name)
	}

	var buf bytes.Buffer
	if err := chromahtml.New(chromahtml.WithClasses(true)).WriteCSS(&buf, style); err != nil {
		return nil, fmt.Errorf("failed to write theme css: %w", err)
	}
	css := buf.Bytes()
	themeCSS.Store(name, css)
	return css, nil
}

// themeLink returns the href and subresource-integrity value of a data URL
// carrying the theme stylesheet.
func themeLink(name string) (href, integrity string, err error) {
	css, err := ThemeCSS(name)
	if err != nil {
		return "", "", err
	}
	sum := sha512.Sum384(css)
	href = "data:text/css;base64," + base64.StdEncoding.EncodeToString(css)
	integrity = "sha384-" + base64.StdEncoding.EncodeToString(sum[:])
	return href, integrity, nil
}

type codeToken struct {
	class string
	value string
}

// highlight tokenizes code with the lexer registered for language. ok is
// false when chroma has no such lexer.
func highlight(language, code string) ([]codeToken, bool) {
	if language == "" {
		return nil, false
	}
	lexer := lexers.Get(language)
	if lexer == nil {
		return nil, false
	}
	iterator, err := chroma.Coalesce(lexer).Tokenise(nil, code)
	if err != nil {
		return nil, false
	}

	var tokens []codeToken
	for _, token := range iterator.Tokens() {
		tokens = append(tokens, codeToken{
			class: chroma.StandardTypes[token.Type],
			value: token.Value,
		})
	}
	return tokens, true
}
