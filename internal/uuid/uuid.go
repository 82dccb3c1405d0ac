package uuid

import (
	google_uuid "github.com/google/uuid"
)

// UUID wraps google/uuid so that empty query and URI parameters
// bind to the Nil UUID instead of failing.
type UUID struct {
	google_uuid.UUID
}

var Nil UUID

func New() UUID {
	return UUID{google_uuid.New()}
}

// UnmarshalParam implements parameter binding for gin.
func (u *UUID) UnmarshalParam(p string) error {
	if p == "" {
		*u = Nil
		return nil
	}

	parsed, err := google_uuid.Parse(p)
	if err != nil {
		return err
	}

	*u = UUID{parsed}
	return nil
}
