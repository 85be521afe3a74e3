package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToExchangeSymbol(t *testing.T) {
	t.Parallel()
	for in, want := range map[string]string{
		"BTC/USDT":      "BTCUSDT",
		"eth/usdt:USDT": "ETHUSDT",
		"ETHUSDT":       "ETHUSDT",
		" solusdt ":     "SOLUSDT",
	} {
		got, err := ToExchangeSymbol(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{"", "BTC/", "A/B/C"} {
		_, err := ToExchangeSymbol(in)
		assert.Error(t, err, in)
	}
}

func TestNormalizeContractSymbol(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "BTC/USDT:USDT", NormalizeContractSymbol("btc", "usdt", "usdt"))
	assert.Equal(t, "BTC/USDT", NormalizeContractSymbol("btc", "usdt", ""))
}

func TestSignHMAC256(t *testing.T) {
	t.Parallel()
	// RFC 4231 test case 2
	got := SignHMAC256([]byte("what do ya want for nothing?"), []byte("Jefe"))
	assert.Equal(t, "5bdcc146bf60754e6a042426089575c75a003f089d2739839dec58b964ec3843", got)
}

func TestGenerateClientOrderID(t *testing.T) {
	t.Parallel()
	a := GenerateClientOrderID("BybitLink")
	b := GenerateClientOrderID("BybitLink")
	assert.NotEqual(t, a, b)
	assert.LessOrEqual(t, len(a), MaxClientOrderIDLen)
	assert.Regexp(t, `^bybitlink-[0-9a-f]+$`, a)

	assert.Len(t, GenerateClientOrderID(""), 32)
}
