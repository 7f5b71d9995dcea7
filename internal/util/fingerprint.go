package util

import (
	"fmt"
	"hash/crc32"
	"os"
	"path/filepath"
	"sort"
)

// CalculateDirFingerprint hashes the names and contents of every file in dir
// matching pattern, in name order. A directory without matches hashes to
// the fingerprint of nothing.
func CalculateDirFingerprint(dir, pattern string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return "", err
	}
	sort.Strings(matches)

	h := crc32.NewIEEE()
	for _, path := range matches {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		h.Write([]byte(filepath.Base(path)))
		h.Write(data)
	}
	return fmt.Sprintf("%08x", h.Sum32()), nil
}
