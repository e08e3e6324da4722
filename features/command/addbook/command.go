package addbook

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/booklending/core"
)

const (
	commandType = "AddBook"
)

// Command represents the intent to add a book to the catalog.
type Command struct {
	BookID     uuid.UUID
	Title      string
	Author     string
	Shelf      string
	OccurredAt core.OccurredAt
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command. Surrounding whitespace is trimmed from all text fields.
func BuildCommand(bookID uuid.UUID, title, author, shelf string, occurredAt time.Time) Command {
	return Command{
		BookID:     bookID,
		Title:      strings.TrimSpace(title),
		Author:     strings.TrimSpace(author),
		Shelf:      strings.TrimSpace(shelf),
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
