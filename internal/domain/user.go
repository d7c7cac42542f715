package domain

import "time"

// User is the minimal identity record the engine needs: a stable ID plus the
// human-entered display name used for recipient resolution.
type User struct {
	ID          string    `json:"id" db:"user_id"`
	Username    string    `json:"username" db:"username"`
	DisplayName string    `json:"display_name" db:"display_name"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
