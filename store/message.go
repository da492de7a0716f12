package store

import (
	"fmt"
	"math"
	"strconv"
)

// MessageKeyPrefix prefixes the state key a message is stored under.
const MessageKeyPrefix = "windowmessage_"

// HandleMessage stores a cross-context message under
// "windowmessage_<id>". Messages without a usable id are ignored. The key
// is used verbatim, so ids containing dots or brackets do not nest.
func (s *Store) HandleMessage(msg map[string]any) bool {
	id, ok := msg["id"]
	if !ok || !usableID(id) {
		s.log.Trace("ignoring message without id", "store", s.name)
		return false
	}
	key := MessageKeyPrefix + formatID(id)
	s.log.Debug("received message", "store", s.name, "key", key)
	return s.apply(key, Path{Name(key)}, msg) == nil
}

func usableID(id any) bool {
	switch v := id.(type) {
	case nil:
		return false
	case string:
		return v != ""
	case bool:
		return v
	case float64:
		return v != 0 && !math.IsNaN(v)
	case int:
		return v != 0
	case int64:
		return v != 0
	}
	return true
}

// formatID renders ids the way the page would print them, so a JSON number
// 1234567 gives "1234567" rather than "1.234567e+06".
func formatID(id any) string {
	switch v := id.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	}
	return fmt.Sprint(id)
}
