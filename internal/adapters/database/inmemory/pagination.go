package inmemory

import (
	"strings"
	"time"

	"github.com/SscSPs/staff_ledger_app/internal/utils/pagination"
)

func decodeCursor(token *string) (time.Time, int64, error) {
	if token == nil || *token == "" {
		return time.Time{}, 0, nil
	}
	return pagination.DecodeToken(*token)
}

// afterKeyset reports whether (name, id) sorts strictly after the cursor.
func afterKeyset(name, id, lastName, lastID string) bool {
	if c := strings.Compare(name, lastName); c != 0 {
		return c > 0
	}
	return id > lastID
}
