package trip

import (
	"strings"

	"github.com/google/uuid"
)

// Resolve maps a participant identifier to a roster user ID.
//
// Expense input frequently arrives as free text ("split with Alice and Bob"),
// so the matching policy is deliberately forgiving: if the identifier is
// syntactically a UUID it must match a roster user ID exactly; otherwise it
// is matched case-insensitively against display names. The policy lives here,
// decoupled from the split arithmetic, so it can change without touching the
// calculators.
//
// Returns the matched user ID and true, or "" and false when nothing in the
// roster matches.
func Resolve(identifier string, roster []Participant) (string, bool) {
	if id, err := uuid.Parse(identifier); err == nil {
		canonical := id.String()
		for _, p := range roster {
			if p.UserID == canonical {
				return p.UserID, true
			}
		}
		return "", false
	}

	name := strings.ToLower(strings.TrimSpace(identifier))
	for _, p := range roster {
		if strings.ToLower(p.DisplayName) == name {
			return p.UserID, true
		}
	}
	return "", false
}
