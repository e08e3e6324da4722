package rentbooks

import (
	"slices"
	"strings"
	"time"

	"github.com/AntonStoeckl/booklending/core"
)

const (
	commandType = "RentBooks"
)

// Command represents the intent to rent a list of titles to one borrower.
type Command struct {
	Titles     []string
	Borrower   core.BorrowerName
	OccurredAt core.OccurredAt
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command. The borrower name is trimmed; titles are kept as given,
// lookups ignore surrounding whitespace anyway.
func BuildCommand(titles []string, borrower core.BorrowerName, occurredAt time.Time) Command {
	return Command{
		Titles:     slices.Clone(titles),
		Borrower:   strings.TrimSpace(borrower),
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
