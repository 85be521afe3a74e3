package bybit

import (
	"fmt"
	"strings"
	"time"
)

const (
	bybitName = "bybit"

	// DefaultRecvWindow 默认接收窗口（毫秒）
	DefaultRecvWindow = "5000"
)

// REST hosts by deployment.
const (
	MainnetURL = "https://api.bybit.com"
	TestnetURL = "https://api-testnet.bybit.com"
	DemoURL    = "https://api-demo.bybit.com"
	NLURL      = "https://api.bybit.nl"
	HKURL      = "https://api.byhkbit.com"
	TRURL      = "https://api.bybit-tr.com"
)

var regionURLs = map[string]string{
	"":        MainnetURL,
	"mainnet": MainnetURL,
	"testnet": TestnetURL,
	"demo":    DemoURL,
	"nl":      NLURL,
	"hk":      HKURL,
	"tr":      TRURL,
}

// RegionURL returns the REST host for a region name.
func RegionURL(region string) (string, error) {
	u, ok := regionURLs[strings.ToLower(strings.TrimSpace(region))]
	if !ok {
		return "", fmt.Errorf("unknown region %q", region)
	}
	return u, nil
}

// Config is fixed for the client's lifetime. Empty APIKey/APISecret means
// the client is public-only; signed calls then fail with ErrMissingCredential.
type Config struct {
	APIKey     string
	APISecret  string
	RecvWindow string
	BaseURL    string
	Timeout    time.Duration
	Proxy      string
	// Debug logs canonical payloads and signatures. Off by default.
	Debug bool
}

// DefaultConfig returns a public mainnet configuration.
func DefaultConfig() Config {
	return Config{
		RecvWindow: DefaultRecvWindow,
		BaseURL:    MainnetURL,
	}
}

func (c Config) withDefaults() Config {
	if c.RecvWindow == "" {
		c.RecvWindow = DefaultRecvWindow
	}
	if c.BaseURL == "" {
		c.BaseURL = MainnetURL
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	return c
}

// String hides the secret.
func (c Config) String() string {
	secret := ""
	if c.APISecret != "" {
		secret = "***"
	}
	return fmt.Sprintf("Config{APIKey:%q APISecret:%q RecvWindow:%q BaseURL:%q}", c.APIKey, secret, c.RecvWindow, c.BaseURL)
}

// GoString keeps %#v from printing the secret.
func (c Config) GoString() string {
	return c.String()
}
