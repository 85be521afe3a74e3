package types

import (
	"strconv"
	"time"
)

// Time 交易所时间戳字段，同时接受 "1722030653718" 与 1722030653718 两种写法
// 按位数识别秒/毫秒/微秒/纳秒；""、null、"0" 解析为零值
type Time struct {
	time.Time
}

// UnixMilli builds a Time from epoch milliseconds.
func UnixMilli(ms int64) Time {
	return Time{Time: time.UnixMilli(ms)}
}

// UnmarshalJSON 自定义 JSON 反序列化
func (t *Time) UnmarshalJSON(b []byte) error {
	s := string(b)
	switch {
	case s == "null" || s == `""` || s == "0" || s == `"0"`:
		t.Time = time.Time{}
		return nil
	case len(s) >= 2 && s[0] == '"':
		unq, err := strconv.Unquote(s)
		if err != nil {
			return &FieldError{Kind: ErrInvalidNumericString, Value: s, Reason: err.Error()}
		}
		return t.parse(unq, ErrInvalidNumericString)
	case len(s) > 0 && s[0] >= '0' && s[0] <= '9':
		return t.parse(s, ErrInvalidFieldType)
	default:
		return &FieldError{Kind: ErrInvalidFieldType, Value: s, Reason: "expected timestamp string or number"}
	}
}

func (t *Time) parse(s string, kind error) error {
	ts, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return &FieldError{Kind: kind, Value: s, Reason: err.Error()}
	}
	switch len(s) {
	case 10:
		t.Time = time.Unix(ts, 0)
	case 13:
		t.Time = time.UnixMilli(ts)
	case 16:
		t.Time = time.UnixMicro(ts)
	case 19:
		t.Time = time.Unix(0, ts)
	default:
		return &FieldError{Kind: kind, Value: s, Reason: "unsupported timestamp length " + strconv.Itoa(len(s))}
	}
	return nil
}

// MarshalJSON 序列化为毫秒字符串（交易所通用写法）
func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(strconv.Quote(strconv.FormatInt(t.UnixMilli(), 10))), nil
}
