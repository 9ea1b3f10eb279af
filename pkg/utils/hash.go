package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
)

// HashChunkSize is the read size used when hashing file content
const HashChunkSize = 8 * KB

// HashFile computes the SHA256 hash of a file's full content.
// The file is read in HashChunkSize chunks and closed before returning.
func HashFile(filepath string) (string, error) {
	file, err := os.Open(filepath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	return HashReader(file)
}

// HashReader computes the SHA256 hash of everything readable from r
func HashReader(r io.Reader) (string, error) {
	hash := sha256.New()
	buf := make([]byte, HashChunkSize)
	if _, err := io.CopyBuffer(hash, r, buf); err != nil {
		return "", err
	}

	return hex.EncodeToString(hash.Sum(nil)), nil
}
