package common

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultTimeout HTTP 请求默认超时
const DefaultTimeout = 30 * time.Second

// HTTPClient HTTP客户端，只负责收发字节；签名与解析由调用方完成
type HTTPClient struct {
	client *http.Client
	proxy  string
	debug  bool
	logger *logrus.Logger
}

// NewHTTPClient 创建HTTP客户端
func NewHTTPClient(timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPClient{
		client: &http.Client{Timeout: timeout},
		logger: DiscardLogger(),
	}
}

// SetProxy 设置代理
func (c *HTTPClient) SetProxy(proxyURL string) error {
	if proxyURL == "" {
		c.client.Transport = nil
		c.proxy = ""
		return nil
	}

	proxy, err := url.Parse(proxyURL)
	if err != nil {
		return fmt.Errorf("invalid proxy URL: %w", err)
	}

	c.client.Transport = &http.Transport{Proxy: http.ProxyURL(proxy)}
	c.proxy = proxyURL
	return nil
}

// GetProxy 获取当前代理设置
func (c *HTTPClient) GetProxy() string {
	return c.proxy
}

// SetDebug 设置是否输出请求/响应明细
func (c *HTTPClient) SetDebug(debug bool) {
	c.debug = debug
}

// SetLogger 设置日志
func (c *HTTPClient) SetLogger(logger *logrus.Logger) {
	if logger != nil {
		c.logger = logger
	}
}

// Send 发送请求并返回状态码与响应体。
// rawURL 的查询串原样发送，不做二次编码；header 名保持调用方给出的大小写。
func (c *HTTPClient) Send(ctx context.Context, method, rawURL string, headers map[string]string, body []byte) (int, []byte, error) {
	var reqBody io.Reader
	if body != nil {
		reqBody = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reqBody)
	if err != nil {
		return 0, nil, fmt.Errorf("create request: %w", err)
	}
	for k, v := range headers {
		req.Header[k] = []string{v}
	}

	if c.debug {
		c.logger.WithFields(logrus.Fields{
			"method":  method,
			"url":     rawURL,
			"headers": headers,
			"body":    string(body),
		}).Debug("http request")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("send request: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.WithError(closeErr).Warn("close response body")
		}
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("read response: %w", err)
	}

	if c.debug {
		c.logger.WithFields(logrus.Fields{
			"status": resp.StatusCode,
			"body":   string(respBody),
		}).Debug("http response")
	}

	return resp.StatusCode, respBody, nil
}
