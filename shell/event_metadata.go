package shell

import (
	"github.com/google/uuid"
)

// EventMetadata tracks where an event came from. It is stored as the event's metadata JSON
// and shows up in the journal export. All events committed by one command share
// the CorrelationID, and each one's CausationID is the command's id.
type EventMetadata struct {
	MessageID     string
	CausationID   string
	CorrelationID string
	CommandType   string
}

// BuildEventMetadata creates EventMetadata with a fresh MessageID.
func BuildEventMetadata(commandID uuid.UUID, correlationID uuid.UUID, commandType string) EventMetadata {
	return EventMetadata{
		MessageID:     uuid.NewString(),
		CausationID:   commandID.String(),
		CorrelationID: correlationID.String(),
		CommandType:   commandType,
	}
}
