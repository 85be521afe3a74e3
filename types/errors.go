package types

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingCredential API key 或 secret 缺失，属于调用方使用错误
	ErrMissingCredential = errors.New("missing credential")
	// ErrMalformedParameters 参数无法规范化
	ErrMalformedParameters = errors.New("malformed parameters")
	// ErrInvalidEnvelope 响应外层结构不符合 retCode/retMsg/result
	ErrInvalidEnvelope = errors.New("invalid envelope")
	// ErrSchemaMismatch 字段缺失或结构不兼容
	ErrSchemaMismatch = errors.New("schema mismatch")
	// ErrMissingListField result 中没有 list 字段
	ErrMissingListField = errors.New("missing list field")
	// ErrEmptyList result.list 为空
	ErrEmptyList = errors.New("empty list")
	// ErrInvalidNumericString 数值字符串无法解析
	ErrInvalidNumericString = errors.New("invalid numeric string")
	// ErrInvalidFieldType 数值字段既不是字符串、数字也不是 null
	ErrInvalidFieldType = errors.New("invalid field type")
	// ErrUnknownEnumVariant 枚举字段出现未知取值
	ErrUnknownEnumVariant = errors.New("unknown enum variant")
)

// FieldError carries the offending field path for decode failures.
// Kind is one of ErrSchemaMismatch, ErrInvalidNumericString,
// ErrInvalidFieldType or ErrUnknownEnumVariant.
type FieldError struct {
	Kind   error
	Field  string
	Value  string
	Reason string
}

func (e *FieldError) Error() string {
	msg := e.Kind.Error()
	if e.Field != "" {
		msg += fmt.Sprintf(" (field %q)", e.Field)
	}
	if e.Value != "" {
		msg += fmt.Sprintf(": value %q", e.Value)
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

func (e *FieldError) Unwrap() error {
	return e.Kind
}

// WithField prefixes the field path. Used while unwinding nested records.
func (e *FieldError) WithField(name string) *FieldError {
	switch {
	case name == "":
	case e.Field == "":
		e.Field = name
	case e.Field[0] == '[':
		e.Field = name + e.Field
	default:
		e.Field = name + "." + e.Field
	}
	return e
}

// ExchangeError 交易所理解了请求但拒绝执行（retCode != 0）
type ExchangeError struct {
	Code    int
	Message string
}

func (e *ExchangeError) Error() string {
	return fmt.Sprintf("bybit api error %d: %s", e.Code, e.Message)
}

// HTTPError 非 2xx 且响应体不是交易所错误信封
type HTTPError struct {
	StatusCode int
	Body       []byte
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("http error %d: %s", e.StatusCode, string(e.Body))
}

// Known exchange return codes.
const (
	CodeOK               = 0
	CodeParamsError      = 10001
	CodeInvalidAPIKey    = 10003
	CodeSignatureError   = 10004
	CodePermissionDenied = 10005
	CodeRateLimit        = 10006
	CodeUnmatchedIP      = 10010
	CodeOrderNotExist    = 110001
)
