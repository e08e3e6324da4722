package deletebook

import (
	"time"

	"github.com/AntonStoeckl/booklending/core"
)

const (
	commandType = "DeleteBook"
)

// Command represents the intent to remove a book from the catalog.
type Command struct {
	BookID     core.BookIDString
	OccurredAt core.OccurredAt
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command.
func BuildCommand(bookID core.BookIDString, occurredAt time.Time) Command {
	return Command{
		BookID:     bookID,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
