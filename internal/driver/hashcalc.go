package driver

import (
	"crypto/sha256"
	"encoding/binary"
)

// Digest is a SHA-256 value used as a cache key.
type Digest [32]byte

// cacheKey: H(schema || config digest || content). Any rule setting that
// changes the output changes the config digest.
func cacheKey(content []byte, configDigest string) Digest {
	h := sha256.New()
	var schema [2]byte
	binary.BigEndian.PutUint16(schema[:], diskCacheSchemaVersion)
	_, _ = h.Write(schema[:])
	_, _ = h.Write([]byte(configDigest))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write(content)
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// IsZero reports whether d was never computed.
func (d Digest) IsZero() bool {
	return d == Digest{}
}
