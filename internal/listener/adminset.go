package listener

import (
	"strconv"
	"strings"
)

// AdminSet is the static set of platform user IDs with elevated read access
// to statistics. Configured at startup, immutable afterwards.
type AdminSet struct {
	ids map[int64]struct{}
}

// NewAdminSet parses user IDs from config strings; non-numeric entries are
// dropped.
func NewAdminSet(raw []string) AdminSet {
	ids := make(map[int64]struct{}, len(raw))
	for _, s := range raw {
		if id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64); err == nil {
			ids[id] = struct{}{}
		}
	}
	return AdminSet{ids: ids}
}

func (a AdminSet) Contains(userID int64) bool {
	_, ok := a.ids[userID]
	return ok
}

func (a AdminSet) Len() int { return len(a.ids) }
