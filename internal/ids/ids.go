package ids

import "github.com/segmentio/ksuid"

// New returns a new sortable record identifier.
func New() string {
	return ksuid.New().String()
}
