package common

import (
	"strings"

	"github.com/google/uuid"
)

// MaxClientOrderIDLen is the longest orderLinkId the exchange accepts.
const MaxClientOrderIDLen = 36

// GenerateClientOrderID generates an orderLinkId of the form {prefix}-{32 hex}.
// The result is truncated to MaxClientOrderIDLen.
func GenerateClientOrderID(prefix string) string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	if prefix != "" {
		id = strings.ToLower(prefix) + "-" + id
	}
	if len(id) > MaxClientOrderIDLen {
		id = id[:MaxClientOrderIDLen]
	}
	return id
}
