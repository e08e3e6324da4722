package shell

import (
	"errors"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/booklending/core"
	"github.com/AntonStoeckl/booklending/journal"
)

var (
	// ErrMappingToDomainEventFailed is returned when a StorableEvent cannot be turned into a DomainEvent.
	ErrMappingToDomainEventFailed = errors.New("mapping to domain event failed")

	// ErrMappingToDomainEventUnknownEventType is returned for event types the core does not know.
	ErrMappingToDomainEventUnknownEventType = errors.New("unknown event type")
)

// DomainEventsFrom converts StorableEvents to DomainEvents, keeping the order.
func DomainEventsFrom(storableEvents journal.StorableEvents) (core.DomainEvents, error) {
	domainEvents := make(core.DomainEvents, 0, len(storableEvents))

	for _, storableEvent := range storableEvents {
		domainEvent, err := DomainEventFrom(storableEvent)
		if err != nil {
			return nil, err
		}

		domainEvents = append(domainEvents, domainEvent)
	}

	return domainEvents, nil
}

// DomainEventFrom converts a StorableEvent to its DomainEvent.
func DomainEventFrom(storableEvent journal.StorableEvent) (core.DomainEvent, error) {
	switch storableEvent.EventType {
	case core.BookAddedToCatalogEventType:
		return unmarshal[core.BookAddedToCatalog](storableEvent.PayloadJSON)

	case core.BookRentedToBorrowerEventType:
		return unmarshal[core.BookRentedToBorrower](storableEvent.PayloadJSON)

	case core.BookReturnedByBorrowerEventType:
		return unmarshal[core.BookReturnedByBorrower](storableEvent.PayloadJSON)

	case core.BookDeletedFromCatalogEventType:
		return unmarshal[core.BookDeletedFromCatalog](storableEvent.PayloadJSON)
	}

	return nil, errors.Join(ErrMappingToDomainEventFailed, ErrMappingToDomainEventUnknownEventType)
}

func unmarshal[E core.DomainEvent](payloadJSON []byte) (core.DomainEvent, error) {
	var event E

	if err := jsoniter.ConfigFastest.Unmarshal(payloadJSON, &event); err != nil {
		return nil, errors.Join(ErrMappingToDomainEventFailed, err)
	}

	return event, nil
}
