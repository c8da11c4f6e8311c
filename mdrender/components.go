package mdrender

import (
	"encoding"
	"errors"
	"fmt"
	"sort"
	"strconv"
)

// ErrMissingAttribute is returned by GetParsed when the attribute is absent.
var ErrMissingAttribute = errors.New("missing attribute")

var errUnsupportedType = errors.New("unsupported attribute type")

// AttributeParseError reports an attribute value that could not be parsed
// into the requested type.
type AttributeParseError struct {
	Name  string
	Value string
	Err   error
}

func (e *AttributeParseError) Error() string {
	return fmt.Sprintf("attribute %q: cannot parse %q: %v", e.Name, e.Value, e.Err)
}

func (e *AttributeParseError) Unwrap() error {
	return e.Err
}

// MdComponentProps is what a custom component receives: the attributes of
// its tag and its rendered children.
type MdComponentProps[V any] struct {
	// Name is the tag name as written in the source.
	Name       string
	Attributes map[string]string
	Children   V
}

func (p MdComponentProps[V]) GetAttribute(name string) (string, bool) {
	value, ok := p.Attributes[name]
	return value, ok
}

// AttributeOr returns the attribute value or def when the attribute is absent.
func (p MdComponentProps[V]) AttributeOr(name, def string) string {
	if value, ok := p.Attributes[name]; ok {
		return value
	}
	return def
}

// GetParsed parses the named attribute as T. Supported types are int, int64,
// uint, float64, bool, string and anything implementing
// encoding.TextUnmarshaler through a pointer.
func GetParsed[T, V any](props MdComponentProps[V], name string) (T, error) {
	value, ok, err := GetParsedOptional[T](props, name)
	if err != nil {
		return value, err
	}
	if !ok {
		return value, fmt.Errorf("%w: %s", ErrMissingAttribute, name)
	}
	return value, nil
}

// GetParsedOptional is GetParsed for attributes that may be absent. A missing
// attribute returns the zero value and false.
func GetParsedOptional[T, V any](props MdComponentProps[V], name string) (T, bool, error) {
	var out T
	raw, ok := props.Attributes[name]
	if !ok {
		return out, false, nil
	}
	if err := parseAttributeValue(raw, &out); err != nil {
		return out, true, &AttributeParseError{Name: name, Value: raw, Err: err}
	}
	return out, true, nil
}

func parseAttributeValue(raw string, dst any) error {
	switch typed := dst.(type) {
	case *string:
		*typed = raw
	case *int:
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return err
		}
		*typed = parsed
	case *int64:
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return err
		}
		*typed = parsed
	case *uint:
		parsed, err := strconv.ParseUint(raw, 10, 0)
		if err != nil {
			return err
		}
		*typed = uint(parsed)
	case *float64:
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return err
		}
		*typed = parsed
	case *bool:
		// a bare attribute counts as true
		if raw == "" {
			*typed = true
			return nil
		}
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return err
		}
		*typed = parsed
	case encoding.TextUnmarshaler:
		return typed.UnmarshalText([]byte(raw))
	default:
		return fmt.Errorf("%w: %T", errUnsupportedType, dst)
	}
	return nil
}

// ComponentFunc renders a custom component. A returned error is rendered as
// an inline error placeholder.
type ComponentFunc[S, V any] func(scope S, props MdComponentProps[V]) (V, error)

// CustomComponents maps tag names to component functions. Names are case
// sensitive.
type CustomComponents[S, V any] struct {
	components map[string]ComponentFunc[S, V]
}

func NewCustomComponents[S, V any]() *CustomComponents[S, V] {
	return &CustomComponents[S, V]{components: map[string]ComponentFunc[S, V]{}}
}

// Register adds fn under name, replacing any previous registration.
func (c *CustomComponents[S, V]) Register(name string, fn ComponentFunc[S, V]) *CustomComponents[S, V] {
	if c.components == nil {
		c.components = map[string]ComponentFunc[S, V]{}
	}
	c.components[name] = fn
	return c
}

func (c *CustomComponents[S, V]) Get(name string) (ComponentFunc[S, V], bool) {
	if c == nil {
		return nil, false
	}
	fn, ok := c.components[name]
	return fn, ok
}

func (c *CustomComponents[S, V]) Has(name string) bool {
	_, ok := c.Get(name)
	return ok
}

// Names returns the registered names in sorted order.
func (c *CustomComponents[S, V]) Names() []string {
	if c == nil {
		return nil
	}
	names := make([]string, 0, len(c.components))
	for name := range c.components {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (c *CustomComponents[S, V]) Len() int {
	if c == nil {
		return 0
	}
	return len(c.components)
}
