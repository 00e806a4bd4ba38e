// internal/domain/models/id.go
package models

import "github.com/google/uuid"

// NewRecordID returns a prefixed record identifier, e.g. "proj-1a2b3c4d".
// The prefix names the collection so ids stay readable in the document.
func NewRecordID(prefix string) FlexID {
	return FlexID(prefix + "-" + uuid.New().String()[:8])
}
