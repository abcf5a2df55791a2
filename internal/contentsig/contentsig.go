// Package contentsig derives stable content signatures for compiler inputs.
// Equal signature implies equal compiled output, so signatures double as
// cache keys.
package contentsig

import (
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/goccy/go-json"
)

// Hash serializes v canonically (map keys sorted, slices in order) and
// returns an xxhash digest of the bytes, hex-encoded.
func Hash(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		// Inputs are plain data trees built by the caller; marshal failure
		// means a non-serializable leaf slipped in. Fall back to a formatted
		// rendering rather than colliding on an empty key.
		b = []byte(fmt.Sprintf("%#v", v))
	}
	return strconv.FormatUint(xxhash.Sum64(b), 16)
}
