package pkg

import (
	"encoding/hex"

	"lukechampine.com/frand"
)

// GenerateSessionID - returns size random bytes hex-encoded.
func GenerateSessionID(size int) string {
	return hex.EncodeToString(frand.Bytes(size))
}
