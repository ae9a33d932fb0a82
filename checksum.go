package sniffkit

import (
	"encoding/hex"
	"fmt"
	"io"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Digest returns a content key for data: its xxHash-64 in hex followed by
// its length. Two buffers with the same digest are treated as identical by
// the result cache.
func Digest(data []byte) string {
	return strconv.FormatUint(xxhash.Sum64(data), 16) + "-" + strconv.Itoa(len(data))
}

// CalculateChecksum reads from the reader and returns the hex-encoded
// xxHash-64 of its content.
func CalculateChecksum(r io.Reader) (string, error) {
	h := xxhash.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", fmt.Errorf("failed to calculate checksum: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
