package bybit

import (
	"fmt"
	"strconv"

	"github.com/lemconn/bybitlink/common"
	"github.com/lemconn/bybitlink/types"
)

// Signer Bybit v5 签名工具，构造后只读，可并发使用
type Signer struct {
	apiKey     string
	secretKey  []byte
	recvWindow string
}

// NewSigner 创建签名工具；空字符串表示未提供
func NewSigner(apiKey, secretKey, recvWindow string) *Signer {
	if recvWindow == "" {
		recvWindow = DefaultRecvWindow
	}
	return &Signer{
		apiKey:     apiKey,
		secretKey:  []byte(secretKey),
		recvWindow: recvWindow,
	}
}

// APIKey returns the key sent in X-BAPI-API-KEY.
func (s *Signer) APIKey() string {
	return s.apiKey
}

// RecvWindow returns the receive window sent in X-BAPI-RECV-WINDOW.
func (s *Signer) RecvWindow() string {
	return s.recvWindow
}

// Check reports ErrMissingCredential when the key or the secret is absent.
func (s *Signer) Check() error {
	if s.apiKey == "" {
		return fmt.Errorf("%w: api key", types.ErrMissingCredential)
	}
	if len(s.secretKey) == 0 {
		return fmt.Errorf("%w: api secret", types.ErrMissingCredential)
	}
	return nil
}

// Message builds timestamp + apiKey + recvWindow + payload, no separators.
func (s *Signer) Message(timestamp int64, payload []byte) []byte {
	ts := strconv.FormatInt(timestamp, 10)
	msg := make([]byte, 0, len(ts)+len(s.apiKey)+len(s.recvWindow)+len(payload))
	msg = append(msg, ts...)
	msg = append(msg, s.apiKey...)
	msg = append(msg, s.recvWindow...)
	msg = append(msg, payload...)
	return msg
}

// Sign returns the lowercase hex HMAC-SHA256 of Message(timestamp, payload).
func (s *Signer) Sign(timestamp int64, payload []byte) (string, error) {
	if err := s.Check(); err != nil {
		return "", err
	}
	return common.SignHMAC256(s.Message(timestamp, payload), s.secretKey), nil
}

// String never includes the secret.
func (s *Signer) String() string {
	return fmt.Sprintf("Signer{apiKey:%q recvWindow:%q}", s.apiKey, s.recvWindow)
}

// GoString keeps %#v from dumping the secret.
func (s *Signer) GoString() string {
	return s.String()
}
