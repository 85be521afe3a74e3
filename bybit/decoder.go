package bybit

import (
	"encoding"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"

	"github.com/buger/jsonparser"

	"github.com/lemconn/bybitlink/types"
)

// Envelope is the uniform response wrapper:
// {"retCode":0,"retMsg":"OK","result":{...},"retExtInfo":{},"time":1722030653718}
type Envelope struct {
	RetCode    int
	RetMsg     string
	Result     json.RawMessage
	RetExtInfo json.RawMessage
	Time       types.Time
}

// DecodeEnvelope parses the wrapper and checks retCode. A nonzero code is
// returned as *types.ExchangeError together with the envelope; Result is
// never inspected in that case.
func DecodeEnvelope(body []byte) (*Envelope, error) {
	if !json.Valid(body) {
		return nil, fmt.Errorf("%w: malformed json", types.ErrInvalidEnvelope)
	}
	_, typ, _, err := jsonparser.Get(body)
	if err != nil || typ != jsonparser.Object {
		return nil, fmt.Errorf("%w: top level is not an object", types.ErrInvalidEnvelope)
	}

	code, err := jsonparser.GetInt(body, "retCode")
	if err != nil {
		return nil, fmt.Errorf("%w: retCode: %v", types.ErrInvalidEnvelope, err)
	}
	msgRaw, msgTyp, _, err := jsonparser.Get(body, "retMsg")
	if err != nil || msgTyp != jsonparser.String {
		return nil, fmt.Errorf("%w: retMsg missing or not a string", types.ErrInvalidEnvelope)
	}
	msg, err := jsonparser.ParseString(msgRaw)
	if err != nil {
		return nil, fmt.Errorf("%w: retMsg: %v", types.ErrInvalidEnvelope, err)
	}
	result, resultTyp, _, err := jsonparser.Get(body, "result")
	if err != nil {
		return nil, fmt.Errorf("%w: result missing", types.ErrInvalidEnvelope)
	}

	env := &Envelope{
		RetCode: int(code),
		RetMsg:  msg,
		Result:  rawJSON(result, resultTyp),
	}
	if ext, extTyp, _, err := jsonparser.Get(body, "retExtInfo"); err == nil {
		env.RetExtInfo = rawJSON(ext, extTyp)
	}
	// time is informational; an absent or odd value never fails the envelope.
	if ms, err := jsonparser.GetInt(body, "time"); err == nil {
		env.Time = types.UnixMilli(ms)
	}

	if env.RetCode != types.CodeOK {
		return env, &types.ExchangeError{Code: env.RetCode, Message: env.RetMsg}
	}
	return env, nil
}

// DecodeResult decodes result into T.
func DecodeResult[T any](body []byte) (*T, error) {
	env, err := DecodeEnvelope(body)
	if err != nil {
		return nil, err
	}
	var out T
	if err := decodeRecord(env.Result, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DecodeList decodes result.list into []T. An empty list is a valid,
// empty result.
func DecodeList[T any](body []byte) ([]T, error) {
	env, err := DecodeEnvelope(body)
	if err != nil {
		return nil, err
	}
	list, typ, err := resultList(env.Result)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0)
	if err := decodeValue(list, typ, reflect.ValueOf(&out).Elem()); err != nil {
		return nil, withField(err, "list")
	}
	return out, nil
}

// DecodeFirst decodes result.list[0] into T; an empty list is ErrEmptyList.
func DecodeFirst[T any](body []byte) (*T, error) {
	env, err := DecodeEnvelope(body)
	if err != nil {
		return nil, err
	}
	list, _, err := resultList(env.Result)
	if err != nil {
		return nil, err
	}
	first, typ, _, err := jsonparser.Get(list, "[0]")
	if err != nil {
		return nil, fmt.Errorf("%w: result.list", types.ErrEmptyList)
	}
	var out T
	if err := decodeValue(first, typ, reflect.ValueOf(&out).Elem()); err != nil {
		return nil, withField(err, "list[0]")
	}
	return &out, nil
}

func resultList(result []byte) ([]byte, jsonparser.ValueType, error) {
	list, typ, _, err := jsonparser.Get(result, "list")
	if err != nil {
		return nil, typ, fmt.Errorf("%w: result.list", types.ErrMissingListField)
	}
	if typ != jsonparser.Array {
		return nil, typ, &types.FieldError{Kind: types.ErrSchemaMismatch, Field: "list", Reason: "expected array, got " + typ.String()}
	}
	return list, typ, nil
}

func decodeRecord(data []byte, dst any) error {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("decode target must be a non-nil pointer, got %T", dst)
	}
	value, typ, _, err := jsonparser.Get(data)
	if err != nil {
		return &types.FieldError{Kind: types.ErrSchemaMismatch, Reason: err.Error()}
	}
	return decodeValue(value, typ, rv.Elem())
}

var (
	jsonUnmarshalerType = reflect.TypeOf((*json.Unmarshaler)(nil)).Elem()
	textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
)

// decodeValue maps one JSON value (as returned by jsonparser, i.e. strings
// without their quotes) onto v. Struct fields tagged required:"true" must be
// present. Errors carry the dotted field path.
func decodeValue(raw []byte, typ jsonparser.ValueType, v reflect.Value) error {
	if v.CanAddr() {
		ptr := v.Addr()
		if ptr.Type().Implements(jsonUnmarshalerType) {
			err := ptr.Interface().(json.Unmarshaler).UnmarshalJSON(rawJSON(raw, typ))
			return asFieldError(err)
		}
		if ptr.Type().Implements(textUnmarshalerType) {
			if typ != jsonparser.String {
				return mismatch("expected string, got " + typ.String())
			}
			s, err := jsonparser.ParseString(raw)
			if err != nil {
				return mismatch(err.Error())
			}
			return asFieldError(ptr.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(s)))
		}
	}

	if typ == jsonparser.Null {
		switch v.Kind() {
		case reflect.Pointer, reflect.Slice, reflect.Map, reflect.Interface:
			v.Set(reflect.Zero(v.Type()))
			return nil
		}
		return mismatch("unexpected null for " + v.Type().String())
	}

	switch v.Kind() {
	case reflect.Struct:
		if typ != jsonparser.Object {
			return mismatch("expected object, got " + typ.String())
		}
		return decodeStruct(raw, v)
	case reflect.Slice:
		if typ != jsonparser.Array {
			return mismatch("expected array, got " + typ.String())
		}
		return decodeSlice(raw, v)
	case reflect.Pointer:
		elem := reflect.New(v.Type().Elem())
		if err := decodeValue(raw, typ, elem.Elem()); err != nil {
			return err
		}
		v.Set(elem)
		return nil
	case reflect.String:
		if typ != jsonparser.String {
			return mismatch("expected string, got " + typ.String())
		}
		s, err := jsonparser.ParseString(raw)
		if err != nil {
			return mismatch(err.Error())
		}
		v.SetString(s)
		return nil
	case reflect.Bool:
		if typ != jsonparser.Boolean {
			return mismatch("expected boolean, got " + typ.String())
		}
		b, err := jsonparser.ParseBoolean(raw)
		if err != nil {
			return mismatch(err.Error())
		}
		v.SetBool(b)
		return nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if typ != jsonparser.Number {
			return mismatch("expected integer, got " + typ.String())
		}
		n, err := strconv.ParseInt(string(raw), 10, v.Type().Bits())
		if err != nil {
			return mismatch(err.Error())
		}
		v.SetInt(n)
		return nil
	case reflect.Float32, reflect.Float64:
		if typ != jsonparser.Number {
			return mismatch("expected number, got " + typ.String())
		}
		f, err := strconv.ParseFloat(string(raw), v.Type().Bits())
		if err != nil {
			return mismatch(err.Error())
		}
		v.SetFloat(f)
		return nil
	default:
		if err := json.Unmarshal(rawJSON(raw, typ), v.Addr().Interface()); err != nil {
			return mismatch(err.Error())
		}
		return nil
	}
}

func decodeStruct(raw []byte, v reflect.Value) error {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name := fieldName(f)
		if name == "-" {
			continue
		}

		sub, subTyp, _, err := jsonparser.Get(raw, name)
		if err != nil {
			if errors.Is(err, jsonparser.KeyPathNotFoundError) {
				if f.Tag.Get("required") == "true" {
					return &types.FieldError{Kind: types.ErrSchemaMismatch, Field: name, Reason: "missing required field"}
				}
				continue
			}
			return &types.FieldError{Kind: types.ErrSchemaMismatch, Field: name, Reason: err.Error()}
		}
		if subTyp == jsonparser.Null && f.Tag.Get("required") == "true" && !acceptsNull(f.Type) {
			return &types.FieldError{Kind: types.ErrSchemaMismatch, Field: name, Reason: "required field is null"}
		}
		if err := decodeValue(sub, subTyp, v.Field(i)); err != nil {
			return withField(err, name)
		}
	}
	return nil
}

func decodeSlice(raw []byte, v reflect.Value) error {
	out := reflect.MakeSlice(v.Type(), 0, 0)
	var firstErr error
	idx := 0
	_, err := jsonparser.ArrayEach(raw, func(value []byte, typ jsonparser.ValueType, _ int, _ error) {
		if firstErr != nil {
			return
		}
		elem := reflect.New(v.Type().Elem()).Elem()
		if err := decodeValue(value, typ, elem); err != nil {
			firstErr = withField(err, "["+strconv.Itoa(idx)+"]")
			return
		}
		out = reflect.Append(out, elem)
		idx++
	})
	if firstErr != nil {
		return firstErr
	}
	if err != nil {
		return mismatch(err.Error())
	}
	v.Set(out)
	return nil
}

// acceptsNull reports whether the type decodes null itself, as types.Number does.
func acceptsNull(t reflect.Type) bool {
	return reflect.PointerTo(t).Implements(jsonUnmarshalerType)
}

func fieldName(f reflect.StructField) string {
	tag := f.Tag.Get("json")
	if tag == "" {
		return f.Name
	}
	for i := 0; i < len(tag); i++ {
		if tag[i] == ',' {
			tag = tag[:i]
			break
		}
	}
	if tag == "" {
		return f.Name
	}
	return tag
}

// rawJSON restores the quotes jsonparser strips from string values.
func rawJSON(raw []byte, typ jsonparser.ValueType) []byte {
	if typ != jsonparser.String {
		return raw
	}
	out := make([]byte, 0, len(raw)+2)
	out = append(out, '"')
	out = append(out, raw...)
	return append(out, '"')
}

func mismatch(reason string) error {
	return &types.FieldError{Kind: types.ErrSchemaMismatch, Reason: reason}
}

func asFieldError(err error) error {
	if err == nil {
		return nil
	}
	var fe *types.FieldError
	if errors.As(err, &fe) {
		return fe
	}
	return mismatch(err.Error())
}

func withField(err error, name string) error {
	var fe *types.FieldError
	if errors.As(err, &fe) {
		return fe.WithField(name)
	}
	return fmt.Errorf("%s: %w", name, err)
}
