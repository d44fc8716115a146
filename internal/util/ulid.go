package util

import (
	"github.com/oklog/ulid/v2"
)

// NewULID returns a new lexically sortable ID, used for upload file names and ingest run IDs.
func NewULID() string {
	return ulid.Make().String()
}
