package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// keySchema is part of every key. Bump it when the scene JSON or an
// artifact encoding changes so that entries from older builds are never
// read back.
const keySchema = 1

// hashKey returns "<kind>:v<schema>:<sha256 of parts as JSON>".
func hashKey(kind string, parts ...any) string {
	h := sha256.New()
	_ = json.NewEncoder(h).Encode(parts)
	return fmt.Sprintf("%s:v%d:%x", kind, keySchema, h.Sum(nil))
}

// Hash returns the hex SHA-256 of data. Scenes are identified by the hash
// of their JSON form, so equal drawings share artifact keys.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
