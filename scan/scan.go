// Package scan extracts key-prefixed values from delimited strings, the way
// small devices pick fields out of telemetry or command lines.
//
// A Parser splits its input on a delimiter and offers every token to a list
// of bindings. A binding matches when the token starts with one of its key
// prefixes; the remainder of the token is then converted into the bound
// target. Numeric conversions mirror C's strtoul/strtod: the longest
// leading numeric run is used and trailing garbage is ignored.
//
//	var speed uint32
//	var param float64
//	p := scan.NewParser(",", "",
//	    scan.Bind(&speed, "speed:"),
//	    scan.Bind(&param, "param:"),
//	)
//	p.Parse("garbage,speed:120,param:3.14,more garbage")
//
// An optional arena supplies scratch copies of matched values, keeping the
// conversion path free of Go heap allocations.
package scan

import (
	"strconv"
	"strings"
	"unsafe"

	"github.com/joshuapare/embkit/arena"
)

// Binding matches a token by key prefix and converts the remainder into a
// caller-owned target. Create with Bind or BindFunc.
type Binding struct {
	keys   []string
	assign func(tok string) bool
}

// Bind creates a binding that stores a converted value into dst when a
// token starts with one of the keys. Supported targets: all fixed-size
// integer types, int, uint, bool, float32, float64, and string. A binding
// for any other type never matches.
func Bind[T any](dst *T, keys ...string) *Binding {
	b := &Binding{keys: keys}
	switch p := any(dst).(type) {
	case *bool:
		b.assign = func(tok string) bool { *p = prefixUint(tok) != 0; return true }
	case *uint8:
		b.assign = func(tok string) bool { *p = uint8(prefixUint(tok)); return true }
	case *uint16:
		b.assign = func(tok string) bool { *p = uint16(prefixUint(tok)); return true }
	case *uint32:
		b.assign = func(tok string) bool { *p = uint32(prefixUint(tok)); return true }
	case *uint64:
		b.assign = func(tok string) bool { *p = prefixUint(tok); return true }
	case *uint:
		b.assign = func(tok string) bool { *p = uint(prefixUint(tok)); return true }
	case *int8:
		b.assign = func(tok string) bool { *p = int8(prefixUint(tok)); return true }
	case *int16:
		b.assign = func(tok string) bool { *p = int16(prefixUint(tok)); return true }
	case *int32:
		b.assign = func(tok string) bool { *p = int32(prefixUint(tok)); return true }
	case *int64:
		b.assign = func(tok string) bool { *p = int64(prefixUint(tok)); return true }
	case *int:
		b.assign = func(tok string) bool { *p = int(prefixUint(tok)); return true }
	case *float32:
		b.assign = func(tok string) bool { *p = float32(prefixFloat(tok)); return true }
	case *float64:
		b.assign = func(tok string) bool { *p = prefixFloat(tok); return true }
	case *string:
		// Clone: tok may alias arena scratch that is released after assign.
		b.assign = func(tok string) bool { *p = strings.Clone(tok); return true }
	default:
		b.assign = func(string) bool { return false }
	}
	return b
}

// BindFunc creates a binding with a caller-supplied converter, for targets
// Bind does not cover. The converter reports whether the value was
// accepted; on false the parser keeps trying the binding's remaining keys.
func BindFunc[T any](dst *T, convert func(tok string, dst *T) bool, keys ...string) *Binding {
	return &Binding{
		keys:   keys,
		assign: func(tok string) bool { return convert(tok, dst) },
	}
}

// match offers tok to the binding's keys in order, converting on the first
// prefix whose conversion succeeds. The value after the key must be
// non-empty.
func (b *Binding) match(tok string, scratch *arena.Arena) bool {
	for _, k := range b.keys {
		if len(tok) <= len(k) || !strings.HasPrefix(tok, k) {
			continue
		}
		val := tok[len(k):]
		if scratch != nil {
			if buf, release, err := scratch.Scratch(len(val)); err == nil {
				n := copy(buf, val)
				ok := b.assign(unsafe.String(&buf[0], n))
				release()
				if ok {
					return true
				}
				continue
			}
			// Scratch exhausted; convert straight from the input.
		}
		if b.assign(val) {
			return true
		}
	}
	return false
}

// Parser splits input on a delimiter and applies bindings to each token.
type Parser struct {
	delim    string
	guard    string
	bindings []*Binding
	scratch  *arena.Arena
}

// NewParser creates a parser. delim may be a single character or a longer
// separator string; an empty delim treats the whole input as one token.
// A non-empty guard must appear somewhere in the input or Parse rejects it
// outright.
func NewParser(delim, guard string, bindings ...*Binding) *Parser {
	return &Parser{delim: delim, guard: guard, bindings: bindings}
}

// WithScratch routes per-token value copies through the arena instead of
// slicing the input directly.
func (p *Parser) WithScratch(a *arena.Arena) *Parser {
	p.scratch = a
	return p
}

// Parse walks the input token by token. Each token goes to the first
// binding that matches it; remaining bindings are skipped for that token.
// Returns true when the guard was found or any binding matched.
func (p *Parser) Parse(s string) bool {
	matched := false
	if p.guard != "" {
		if !strings.Contains(s, p.guard) {
			return false
		}
		matched = true
	}

	rest := s
	for len(rest) > 0 {
		var tok string
		if p.delim == "" {
			tok, rest = rest, ""
		} else if i := strings.Index(rest, p.delim); i >= 0 {
			tok, rest = rest[:i], rest[i+len(p.delim):]
		} else {
			tok, rest = rest, ""
		}
		for _, b := range p.bindings {
			if b.match(tok, p.scratch) {
				matched = true
				break
			}
		}
	}
	return matched
}

// prefixUint converts the longest leading decimal run of tok, after
// optional whitespace and sign, exactly as strtoul would: trailing
// non-digits are ignored and a minus sign wraps modulo 2^64.
func prefixUint(tok string) uint64 {
	i := 0
	for i < len(tok) && (tok[i] == ' ' || tok[i] == '\t') {
		i++
	}
	neg := false
	if i < len(tok) && (tok[i] == '+' || tok[i] == '-') {
		neg = tok[i] == '-'
		i++
	}
	var v uint64
	for i < len(tok) && tok[i] >= '0' && tok[i] <= '9' {
		v = v*10 + uint64(tok[i]-'0')
		i++
	}
	if neg {
		v = -v
	}
	return v
}

// prefixFloat converts the longest leading floating-point run of tok, as
// strtod would. Returns 0 when no valid prefix exists.
func prefixFloat(tok string) float64 {
	i := 0
	for i < len(tok) && (tok[i] == ' ' || tok[i] == '\t') {
		i++
	}
	start := i
	if i < len(tok) && (tok[i] == '+' || tok[i] == '-') {
		i++
	}
	digits := false
	for i < len(tok) && tok[i] >= '0' && tok[i] <= '9' {
		i++
		digits = true
	}
	if i < len(tok) && tok[i] == '.' {
		i++
		for i < len(tok) && tok[i] >= '0' && tok[i] <= '9' {
			i++
			digits = true
		}
	}
	if !digits {
		return 0
	}
	if i < len(tok) && (tok[i] == 'e' || tok[i] == 'E') {
		j := i + 1
		if j < len(tok) && (tok[j] == '+' || tok[j] == '-') {
			j++
		}
		expDigits := false
		for j < len(tok) && tok[j] >= '0' && tok[j] <= '9' {
			j++
			expDigits = true
		}
		if expDigits {
			i = j
		}
	}
	f, err := strconv.ParseFloat(tok[start:i], 64)
	if err != nil {
		return 0
	}
	return f
}
