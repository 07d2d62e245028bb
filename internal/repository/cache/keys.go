package cache

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

const feasibilityKeyPrefix = "feasibility"

// FeasibilityKey - "feasibility:<form>:<hash>", where the hash covers every
// part in order. Callers pass the engine's parameter set fingerprint and
// the encoded sites.
func FeasibilityKey(form string, parts ...[]byte) string {
	d := xxhash.New()
	for _, p := range parts {
		// length prefix keeps ("ab","c") and ("a","bc") apart
		fmt.Fprintf(d, "%d:", len(p))
		d.Write(p)
	}
	return fmt.Sprintf("%s:%s:%016x", feasibilityKeyPrefix, form, d.Sum64())
}

// Fingerprint hashes a parameter set dump once so it can be reused across keys
func Fingerprint(data []byte) []byte {
	return []byte(fmt.Sprintf("%016x", xxhash.Sum64(data)))
}
