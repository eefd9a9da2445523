// file: internal/scanner/hash.go
// version: 1.0.0
// guid: c2ad491d-32e7-4118-8b6f-cd6e27226d6b

package scanner

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// FolderHash fingerprints a folder from its recursive total size and newest
// modification time. Returns "" when the folder is missing or unreadable, so
// callers can skip caching rather than fail.
func FolderHash(path string) string {
	if _, err := os.Stat(path); err != nil {
		return ""
	}

	var totalSize int64
	var latestMtime int64
	err := filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		totalSize += info.Size()
		if mtime := info.ModTime().Unix(); mtime > latestMtime {
			latestMtime = mtime
		}
		return nil
	})
	if err != nil {
		log.Printf("[WARN] failed to hash folder %s: %v", path, err)
		return ""
	}

	sum := md5.Sum([]byte(fmt.Sprintf("%s:%d:%d", path, totalSize, latestMtime)))
	return hex.EncodeToString(sum[:])
}
