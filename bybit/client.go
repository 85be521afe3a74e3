package bybit

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/lemconn/bybitlink/common"
	"github.com/lemconn/bybitlink/types"
)

// Doer sends one request and returns the raw status and body. The query in
// url must be sent unchanged and header names must keep their case.
// *common.HTTPClient satisfies it.
type Doer interface {
	Send(ctx context.Context, method, url string, headers map[string]string, body []byte) (int, []byte, error)
}

// Client Bybit v5 REST 客户端。构造后只读，可被多个 goroutine 共享
type Client struct {
	cfg       Config
	assembler *Assembler
	transport Doer
	logger    *logrus.Entry
}

type clientOptions struct {
	transport Doer
	clock     common.Clock
	logger    *logrus.Logger
}

// ClientOption configures collaborators that are not part of Config.
type ClientOption func(*clientOptions)

// WithTransport replaces the default HTTP transport.
func WithTransport(d Doer) ClientOption {
	return func(o *clientOptions) {
		o.transport = d
	}
}

// WithClock replaces the timestamp source.
func WithClock(clock common.Clock) ClientOption {
	return func(o *clientOptions) {
		o.clock = clock
	}
}

// WithLogger sets the logger. Without it the client is silent.
func WithLogger(logger *logrus.Logger) ClientOption {
	return func(o *clientOptions) {
		o.logger = logger
	}
}

// NewClient 创建 Bybit 客户端
func NewClient(cfg Config, opts ...ClientOption) (*Client, error) {
	cfg = cfg.withDefaults()

	o := &clientOptions{}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = common.DiscardLogger()
	}
	if o.transport == nil {
		httpClient := common.NewHTTPClient(cfg.Timeout)
		if cfg.Proxy != "" {
			if err := httpClient.SetProxy(cfg.Proxy); err != nil {
				return nil, fmt.Errorf("set proxy: %w", err)
			}
		}
		httpClient.SetDebug(cfg.Debug)
		httpClient.SetLogger(o.logger)
		o.transport = httpClient
	}

	signer := NewSigner(cfg.APIKey, cfg.APISecret, cfg.RecvWindow)
	return &Client{
		cfg:       cfg,
		assembler: NewAssembler(cfg.BaseURL, signer, o.clock),
		transport: o.transport,
		logger:    o.logger.WithField("exchange", bybitName),
	}, nil
}

// Config returns the client configuration.
func (c *Client) Config() Config {
	return c.cfg
}

// Assembler exposes the request assembler, e.g. for endpoints this client
// does not wrap.
func (c *Client) Assembler() *Assembler {
	return c.assembler
}

// Do sends an assembled request and returns the raw response body.
// Non-2xx responses become *types.ExchangeError when the body is an error
// envelope, *types.HTTPError otherwise.
func (c *Client) Do(ctx context.Context, req *Request) ([]byte, error) {
	entry := c.logger.WithFields(logrus.Fields{
		"method": req.Method,
		"path":   req.Path,
	})
	if c.cfg.Debug && req.Signed {
		entry = entry.WithFields(logrus.Fields{
			"payload":   string(req.Payload()),
			"timestamp": req.Timestamp,
			"signature": req.Signature,
		})
	}
	entry.Debug("bybit request")

	status, body, err := c.transport.Send(ctx, req.Method, req.URL, req.Headers, req.Body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.Path, err)
	}
	entry.WithField("status", status).Debug("bybit response")

	if status < 200 || status >= 300 {
		var exErr *types.ExchangeError
		if _, envErr := DecodeEnvelope(body); errors.As(envErr, &exErr) {
			return nil, exErr
		}
		return nil, &types.HTTPError{StatusCode: status, Body: body}
	}
	return body, nil
}

func (c *Client) signed(ctx context.Context, kind types.Kind, path string, params *types.Params) ([]byte, error) {
	req, err := c.assembler.Build(kind, path, params)
	if err != nil {
		return nil, err
	}
	return c.Do(ctx, req)
}

func (c *Client) public(ctx context.Context, path string, params *types.Params) ([]byte, error) {
	req, err := c.assembler.BuildPublic(path, params)
	if err != nil {
		return nil, err
	}
	return c.Do(ctx, req)
}

func (c *Client) logExchangeError(op string, err error) {
	var exErr *types.ExchangeError
	if errors.As(err, &exErr) {
		c.logger.WithFields(logrus.Fields{
			"op":      op,
			"retCode": exErr.Code,
			"retMsg":  exErr.Message,
		}).Warn("bybit rejected request")
	}
}

func exchangeSymbol(symbol string) (string, error) {
	s, err := common.ToExchangeSymbol(symbol)
	if err != nil {
		return "", fmt.Errorf("%w: %v", types.ErrMalformedParameters, err)
	}
	return s, nil
}
