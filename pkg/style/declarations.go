package style

import (
	"fmt"
	"strings"

	"github.com/aymerick/douceur/parser"
)

// Declaration is a single CSS property/value pair.
type Declaration struct {
	Property string
	Value    string
}

// Declarations is an ordered list of declarations. Later entries win.
type Declarations []Declaration

// Parse reads an inline style attribute value such as "color: red; padding: 4px".
func Parse(s string) (Declarations, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	// the parser drops a trailing declaration that has no terminator
	if t := strings.TrimSpace(s); !strings.HasSuffix(t, ";") {
		s = t + ";"
	}
	parsed, err := parser.ParseDeclarations(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDeclarations, err)
	}
	out := make(Declarations, 0, len(parsed))
	for _, d := range parsed {
		prop := strings.ToLower(strings.TrimSpace(d.Property))
		if prop == "" {
			continue
		}
		out = append(out, Declaration{Property: prop, Value: strings.TrimSpace(d.Value)})
	}
	return out, nil
}

// MustParse is like Parse but panics on malformed input.
// It is meant for package-level tables.
func MustParse(s string) Declarations {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Decl builds declarations from property/value pairs.
// It panics on an odd number of arguments.
func Decl(pairs ...string) Declarations {
	if len(pairs)%2 != 0 {
		panic("style.Decl: odd number of arguments")
	}
	out := make(Declarations, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		out = append(out, Declaration{Property: pairs[i], Value: pairs[i+1]})
	}
	return out
}

// String serializes the declarations as an inline style attribute value.
func (d Declarations) String() string {
	parts := make([]string, 0, len(d))
	for _, decl := range d {
		if decl.Property == "" {
			continue
		}
		parts = append(parts, decl.Property+": "+decl.Value)
	}
	return strings.Join(parts, "; ")
}

// Get returns the last value declared for prop.
func (d Declarations) Get(prop string) (string, bool) {
	for i := len(d) - 1; i >= 0; i-- {
		if d[i].Property == prop {
			return d[i].Value, true
		}
	}
	return "", false
}

// Has reports whether prop is declared.
func (d Declarations) Has(prop string) bool {
	_, ok := d.Get(prop)
	return ok
}

// Set returns a copy with prop set to value, replacing earlier declarations
// of the same property.
func (d Declarations) Set(prop, value string) Declarations {
	out := d.Without(prop)
	return append(out, Declaration{Property: prop, Value: value})
}

// Without returns a copy with every declaration of the given properties removed.
func (d Declarations) Without(props ...string) Declarations {
	out := make(Declarations, 0, len(d))
	for _, decl := range d {
		drop := false
		for _, p := range props {
			if decl.Property == p {
				drop = true
				break
			}
		}
		if !drop {
			out = append(out, decl)
		}
	}
	return out
}

// Clone returns an independent copy.
func (d Declarations) Clone() Declarations {
	if d == nil {
		return nil
	}
	out := make(Declarations, len(d))
	copy(out, d)
	return out
}
