package types

import (
	"bytes"
	"encoding"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Kind selects how a parameter set is canonicalized.
type Kind int

const (
	// KindRead renders params as a raw query string (GET).
	KindRead Kind = iota
	// KindWrite renders params as a JSON body (POST).
	KindWrite
)

func (k Kind) String() string {
	if k == KindWrite {
		return "write"
	}
	return "read"
}

// Params is an insertion-ordered request parameter set.
//
// The same Params value is rendered once by Canonical and the resulting bytes
// are both signed and transmitted, so key order is fixed by the order of the
// first Set/Add call for every key.
type Params struct {
	order  []string
	values map[string][]any
}

// NewParams creates an empty parameter set.
func NewParams() *Params {
	return &Params{
		order:  make([]string, 0),
		values: make(map[string][]any),
	}
}

// Set sets a single value for key, keeping the key's first position.
func (p *Params) Set(key string, value any) *Params {
	if _, exists := p.values[key]; !exists {
		p.order = append(p.order, key)
	}
	p.values[key] = []any{value}
	return p
}

// SetIf calls Set only when cond holds.
func (p *Params) SetIf(cond bool, key string, value any) *Params {
	if cond {
		p.Set(key, value)
	}
	return p
}

// Add appends a value for key. Repeated keys are emitted as repeated
// query pairs, or as a JSON array in write mode.
func (p *Params) Add(key string, value any) *Params {
	if _, exists := p.values[key]; !exists {
		p.order = append(p.order, key)
	}
	p.values[key] = append(p.values[key], value)
	return p
}

// Has reports whether key exists.
func (p *Params) Has(key string) bool {
	_, ok := p.values[key]
	return ok
}

// Get returns the first value for key.
func (p *Params) Get(key string) any {
	if vs := p.values[key]; len(vs) > 0 {
		return vs[0]
	}
	return nil
}

// Keys returns the keys in canonical order.
func (p *Params) Keys() []string {
	out := make([]string, len(p.order))
	copy(out, p.order)
	return out
}

// Len returns the number of distinct keys.
func (p *Params) Len() int {
	return len(p.order)
}

// Canonical returns the exact byte string that is signed and sent.
func (p *Params) Canonical(kind Kind) ([]byte, error) {
	if kind == KindWrite {
		return p.EncodeJSON()
	}
	q, err := p.EncodeQuery()
	if err != nil {
		return nil, err
	}
	return []byte(q), nil
}

// EncodeQuery renders key=value pairs joined with '&' in insertion order.
// Neither keys nor values are percent-escaped: the exchange signs the raw
// string, so the wire form must match it byte for byte.
func (p *Params) EncodeQuery() (string, error) {
	var buf strings.Builder
	for _, key := range p.order {
		for _, v := range p.values[key] {
			s, err := RenderValue(v)
			if err != nil {
				return "", fmt.Errorf("%w: %s: %v", ErrMalformedParameters, key, err)
			}
			if buf.Len() > 0 {
				buf.WriteByte('&')
			}
			buf.WriteString(key)
			buf.WriteByte('=')
			buf.WriteString(s)
		}
	}
	return buf.String(), nil
}

// EncodeJSON renders an ordered JSON object. Go maps marshal with sorted
// keys, so the object is written by hand to keep insertion order.
func (p *Params) EncodeJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range p.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := marshalNoEscape(key)
		if err != nil {
			return nil, fmt.Errorf("%w: key %q: %v", ErrMalformedParameters, key, err)
		}
		buf.Write(k)
		buf.WriteByte(':')

		vs := p.values[key]
		var v any = vs[0]
		if len(vs) > 1 {
			v = vs
		}
		b, err := marshalNoEscape(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrMalformedParameters, key, err)
		}
		buf.Write(b)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// JoinPath appends the raw query to path.
func (p *Params) JoinPath(path string) (string, error) {
	q, err := p.EncodeQuery()
	if err != nil {
		return "", err
	}
	if q == "" {
		return path, nil
	}
	if strings.Contains(path, "?") {
		return path + "&" + q, nil
	}
	return path + "?" + q, nil
}

// RenderValue turns a scalar into the plain string used in query strings.
func RenderValue(v any) (string, error) {
	switch val := v.(type) {
	case string:
		return val, nil
	case bool:
		return strconv.FormatBool(val), nil
	case int:
		return strconv.Itoa(val), nil
	case int8:
		return strconv.FormatInt(int64(val), 10), nil
	case int16:
		return strconv.FormatInt(int64(val), 10), nil
	case int32:
		return strconv.FormatInt(int64(val), 10), nil
	case int64:
		return strconv.FormatInt(val, 10), nil
	case uint:
		return strconv.FormatUint(uint64(val), 10), nil
	case uint8:
		return strconv.FormatUint(uint64(val), 10), nil
	case uint16:
		return strconv.FormatUint(uint64(val), 10), nil
	case uint32:
		return strconv.FormatUint(uint64(val), 10), nil
	case uint64:
		return strconv.FormatUint(val, 10), nil
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32), nil
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), nil
	case json.Number:
		return val.String(), nil
	case decimal.Decimal:
		return val.String(), nil
	case Number:
		return val.String(), nil
	case encoding.TextMarshaler:
		b, err := val.MarshalText()
		if err != nil {
			return "", err
		}
		return string(b), nil
	case fmt.Stringer:
		return val.String(), nil
	case nil:
		return "", fmt.Errorf("nil value")
	default:
		return "", fmt.Errorf("unsupported value type %T", v)
	}
}

func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
