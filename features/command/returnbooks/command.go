package returnbooks

import (
	"slices"
	"time"

	"github.com/AntonStoeckl/booklending/core"
)

const (
	commandType = "ReturnBooks"
)

// Command represents the intent to check a list of titles back in.
type Command struct {
	Titles     []string
	OccurredAt core.OccurredAt
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command.
func BuildCommand(titles []string, occurredAt time.Time) Command {
	return Command{
		Titles:     slices.Clone(titles),
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
