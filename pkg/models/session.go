package models

import "time"

// Session is an opaque state blob for the messaging client, keyed by a
// fixed session id and overwritten wholesale on every save.
type Session struct {
	ID        string    `db:"id"`
	Data      []byte    `db:"data"`
	UpdatedAt time.Time `db:"updated_at"`
}
