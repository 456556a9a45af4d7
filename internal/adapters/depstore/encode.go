package depstore

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// maxKeyLen keeps keys well below common filename limits once the record
// extension is added.
const maxKeyLen = 200

// Encode maps a relative target path to a flat, filesystem-safe key.
//
// Every byte outside [A-Za-z0-9._-] is escaped as %XX, as is a leading dot,
// so distinct paths always produce distinct keys. Keys that would exceed
// maxKeyLen are cut and suffixed with the sha256 of the full path.
func Encode(path string) string {
	var b strings.Builder
	b.Grow(len(path))
	for i := 0; i < len(path); i++ {
		c := path[i]
		if safeByte(c) && (c != '.' || i > 0) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteString(strings.ToUpper(hex.EncodeToString([]byte{c})))
	}

	key := b.String()
	if len(key) <= maxKeyLen {
		return key
	}
	sum := sha256.Sum256([]byte(path))
	suffix := "%" + hex.EncodeToString(sum[:])
	return key[:maxKeyLen-len(suffix)] + suffix
}

func safeByte(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '.', c == '_', c == '-':
		return true
	default:
		return false
	}
}
