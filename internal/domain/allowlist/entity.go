package allowlist

import (
	"time"
)

// AllowedUser is one entry of the access allow-list. Phone is the
// natural key.
type AllowedUser struct {
	Phone   string    `db:"phone" json:"phone"`
	Name    string    `db:"name" json:"name"`
	Role    string    `db:"role" json:"role"`
	AddedAt time.Time `db:"added_at" json:"added_at"`
}
