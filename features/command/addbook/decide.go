package addbook

import (
	"fmt"

	"github.com/AntonStoeckl/booklending/core"
)

// Decide determines whether a book should be added to the catalog.
//
// Business Rules:
//
//	GIVEN: a title, author and shelf
//	WHEN: AddBook command is received
//	THEN: BookAddedToCatalog event is generated, status Available
//	ERROR: ErrValidation if any field is empty
//	IDEMPOTENCY: a BookID already in the catalog generates no event
func Decide(state core.State, command Command) core.DecisionResult {
	if err := validate(command); err != nil {
		return core.ErrorDecision(err)
	}

	if _, exists := state.Catalog.ByID(command.BookID.String()); exists {
		return core.IdempotentDecision()
	}

	return core.SuccessDecision(core.DomainEvents{
		core.BuildBookAddedToCatalog(
			command.BookID,
			command.Title,
			command.Author,
			command.Shelf,
			command.OccurredAt,
		),
	})
}

func validate(command Command) error {
	switch {
	case command.Title == "":
		return fmt.Errorf("title is empty: %w", core.ErrValidation)
	case command.Author == "":
		return fmt.Errorf("author is empty: %w", core.ErrValidation)
	case command.Shelf == "":
		return fmt.Errorf("shelf is empty: %w", core.ErrValidation)
	}

	return nil
}
