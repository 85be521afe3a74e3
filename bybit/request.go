package bybit

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/lemconn/bybitlink/common"
	"github.com/lemconn/bybitlink/types"
)

// Header names, exact case.
const (
	HeaderAPIKey      = "X-BAPI-API-KEY"
	HeaderTimestamp   = "X-BAPI-TIMESTAMP"
	HeaderRecvWindow  = "X-BAPI-RECV-WINDOW"
	HeaderSign        = "X-BAPI-SIGN"
	HeaderContentType = "Content-Type"

	contentTypeJSON = "application/json"
)

// Request is a fully assembled transport request. For writes Body holds the
// signed JSON; for reads Query holds the signed raw query string.
type Request struct {
	Method    string
	URL       string
	Path      string
	Query     string
	Body      []byte
	Headers   map[string]string
	Timestamp int64
	Signature string
	Signed    bool
}

// Payload returns the bytes covered by the signature.
func (r *Request) Payload() []byte {
	if r.Method == http.MethodPost {
		return r.Body
	}
	return []byte(r.Query)
}

// Assembler turns params into signed requests.
type Assembler struct {
	baseURL string
	signer  *Signer
	clock   common.Clock
}

// NewAssembler creates an assembler; a nil clock uses the system time.
func NewAssembler(baseURL string, signer *Signer, clock common.Clock) *Assembler {
	if clock == nil {
		clock = common.SystemClock
	}
	return &Assembler{
		baseURL: baseURL,
		signer:  signer,
		clock:   clock,
	}
}

// Build canonicalizes params once, signs the canonical bytes with a fresh
// timestamp and places the same bytes on the wire.
func (a *Assembler) Build(kind types.Kind, path string, params *types.Params) (*Request, error) {
	if params == nil {
		params = types.NewParams()
	}
	if err := a.signer.Check(); err != nil {
		return nil, err
	}

	payload, err := params.Canonical(kind)
	if err != nil {
		return nil, err
	}

	timestamp := common.TimestampMillis(a.clock)
	signature, err := a.signer.Sign(timestamp, payload)
	if err != nil {
		return nil, err
	}

	req := &Request{
		Path:      path,
		Timestamp: timestamp,
		Signature: signature,
		Signed:    true,
		Headers: map[string]string{
			HeaderAPIKey:     a.signer.APIKey(),
			HeaderTimestamp:  strconv.FormatInt(timestamp, 10),
			HeaderRecvWindow: a.signer.RecvWindow(),
			HeaderSign:       signature,
		},
	}

	switch kind {
	case types.KindWrite:
		req.Method = http.MethodPost
		req.Body = payload
		req.URL = a.baseURL + path
		req.Headers[HeaderContentType] = contentTypeJSON
	case types.KindRead:
		req.Method = http.MethodGet
		req.Query = string(payload)
		req.URL = joinQuery(a.baseURL+path, req.Query)
	default:
		return nil, fmt.Errorf("%w: unknown request kind %d", types.ErrMalformedParameters, kind)
	}
	return req, nil
}

// BuildPublic assembles an unsigned GET for market data endpoints.
func (a *Assembler) BuildPublic(path string, params *types.Params) (*Request, error) {
	if params == nil {
		params = types.NewParams()
	}
	query, err := params.EncodeQuery()
	if err != nil {
		return nil, err
	}
	return &Request{
		Method:  http.MethodGet,
		Path:    path,
		Query:   query,
		URL:     joinQuery(a.baseURL+path, query),
		Headers: map[string]string{},
	}, nil
}

func joinQuery(u, query string) string {
	if query == "" {
		return u
	}
	return u + "?" + query
}
