package httpx

import (
	"crypto/rand"
	"encoding/hex"
	"strconv"
	"sync/atomic"
	"time"
)

var idFallback atomic.Uint64

// genID returns a 128-bit random hex identifier for a request.
func genID() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err == nil {
		return hex.EncodeToString(b[:])
	}
	// rand failing is unlikely; keep IDs unique within the process anyway
	n := idFallback.Add(1)
	return strconv.FormatInt(time.Now().UnixNano(), 16) + "-" + strconv.FormatUint(n, 16)
}
