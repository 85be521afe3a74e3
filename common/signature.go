package common

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// SignHMAC256 HMAC-SHA256签名（小写 hex 编码）
func SignHMAC256(message, secret []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write(message)
	return hex.EncodeToString(mac.Sum(nil))
}

// Clock 时间源，测试时可替换
type Clock func() time.Time

// SystemClock 系统时间
func SystemClock() time.Time {
	return time.Now()
}

// TimestampMillis 获取时间戳（毫秒）
func TimestampMillis(clock Clock) int64 {
	if clock == nil {
		clock = SystemClock
	}
	return clock().UnixMilli()
}
