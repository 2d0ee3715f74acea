package donor

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// CanonicalID reduces identifiers from any transport representation to one
// string form, so "7" and 7 address the same membership entry.
func CanonicalID(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case json.Number:
		return canonicalNumber(v.String())
	case float64:
		return canonicalNumber(strconv.FormatFloat(v, 'f', -1, 64))
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case fmt.Stringer:
		return strings.TrimSpace(v.String())
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", v))
	}
}

func canonicalNumber(raw string) string {
	if trimmed := strings.TrimSuffix(raw, ".0"); trimmed != raw && !strings.Contains(trimmed, ".") {
		return trimmed
	}
	return raw
}
