package library

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/booklending/core"
	"github.com/AntonStoeckl/booklending/features/command/addbook"
	"github.com/AntonStoeckl/booklending/features/command/deletebook"
	"github.com/AntonStoeckl/booklending/features/command/rentbooks"
	"github.com/AntonStoeckl/booklending/features/command/returnbooks"
	"github.com/AntonStoeckl/booklending/features/query/booksrentedout"
	"github.com/AntonStoeckl/booklending/features/query/finishedrentals"
	"github.com/AntonStoeckl/booklending/journal"
	"github.com/AntonStoeckl/booklending/journal/memoryengine"
	"github.com/AntonStoeckl/booklending/shell"
	"github.com/AntonStoeckl/booklending/shell/observable"
	"github.com/AntonStoeckl/booklending/shell/snapshot"
)

// Library is the lending-library inventory. Create it with New; the zero value is not usable.
type Library struct {
	mu      sync.RWMutex
	state   core.State
	version uint
	journal *memoryengine.Engine

	ratePerDay       int64
	logger           shell.Logger
	contextualLogger shell.ContextualLogger
	metricsCollector shell.MetricsCollector
	tracingCollector shell.TracingCollector
	retryOptions     []shell.RetryOption
	seedAt           time.Time
	seedBooks        []SeedBook

	addBook         *observable.CommandWrapper[addbook.Command, addbook.Result]
	rentBooks       *observable.CommandWrapper[rentbooks.Command, rentbooks.Result]
	returnBooks     *observable.CommandWrapper[returnbooks.Command, returnbooks.Receipt]
	deleteBook      *observable.CommandWrapper[deletebook.Command, deletebook.Result]
	booksRentedOut  booksrentedout.QueryHandler
	finishedRentals shell.QueryHandler[finishedrentals.Query, finishedrentals.FinishedRentals]
}

// New creates a Library and adds the seed books, if any.
// It returns an error wrapping core.ErrValidation if the rate is not positive or a seed book is incomplete.
func New(ctx context.Context, opts ...Option) (*Library, error) {
	l := &Library{
		state:      core.NewState(),
		ratePerDay: core.DefaultRatePerDay,
	}

	for _, opt := range opts {
		opt(l)
	}

	if l.ratePerDay <= 0 {
		return nil, fmt.Errorf("rate per day %d is not positive: %w", l.ratePerDay, core.ErrValidation)
	}

	l.journal = memoryengine.NewEngine(l.engineOptions()...)

	l.addBook = observable.NewCommandWrapper[addbook.Command, addbook.Result](
		addbook.NewCommandHandler(l, addbook.WithRetryOptions(l.retryOptions...)),
		wrapperOptions[addbook.Command, addbook.Result](l)...,
	)
	l.rentBooks = observable.NewCommandWrapper[rentbooks.Command, rentbooks.Result](
		rentbooks.NewCommandHandler(l, rentbooks.WithRetryOptions(l.retryOptions...)),
		wrapperOptions[rentbooks.Command, rentbooks.Result](l)...,
	)
	l.returnBooks = observable.NewCommandWrapper[returnbooks.Command, returnbooks.Receipt](
		returnbooks.NewCommandHandler(l,
			returnbooks.WithRatePerDay(l.ratePerDay),
			returnbooks.WithRetryOptions(l.retryOptions...),
		),
		wrapperOptions[returnbooks.Command, returnbooks.Receipt](l)...,
	)
	l.deleteBook = observable.NewCommandWrapper[deletebook.Command, deletebook.Result](
		deletebook.NewCommandHandler(l, deletebook.WithRetryOptions(l.retryOptions...)),
		wrapperOptions[deletebook.Command, deletebook.Result](l)...,
	)
	l.booksRentedOut = booksrentedout.NewQueryHandler(l)
	l.finishedRentals = snapshot.NewQueryWrapper[finishedrentals.Query, finishedrentals.FinishedRentals](
		finishedrentals.NewQueryHandler(l.journal),
		l.journal,
		finishedrentals.Project,
		finishedrentals.BuildEventFilter,
	)

	for _, b := range l.seedBooks {
		if _, err := l.AddBook(ctx, b.Title, b.Author, b.Shelf, l.seedAt); err != nil {
			return nil, fmt.Errorf("seed book %q: %w", b.Title, err)
		}
	}

	return l, nil
}

// RatePerDay returns the configured fee per started rent day.
func (l *Library) RatePerDay() int64 {
	return l.ratePerDay
}

// AddBook adds an Available book and returns its id. Title, author and shelf must not be blank.
func (l *Library) AddBook(ctx context.Context, title, author, shelf string, now time.Time) (core.BookIDString, error) {
	result, err := l.addBook.Handle(ctx, addbook.BuildCommand(uuid.New(), title, author, shelf, now))
	if err != nil {
		return "", err
	}

	return result.BookID, nil
}

// RentBatch rents every title whose first match is Available to borrower, starting the rental at now.
// Unknown and already rented titles are skipped; Count excludes them.
func (l *Library) RentBatch(ctx context.Context, titles []string, borrower core.BorrowerName, now time.Time) (rentbooks.Result, error) {
	return l.rentBooks.Handle(ctx, rentbooks.BuildCommand(titles, borrower, now))
}

// Rent rents a single title. See RentBatch.
func (l *Library) Rent(ctx context.Context, title string, borrower core.BorrowerName, now time.Time) (rentbooks.Result, error) {
	return l.RentBatch(ctx, []string{title}, borrower, now)
}

// ReturnBatch returns every title whose first match is Rented and bills it at the configured rate.
// Unknown and not rented titles are skipped.
func (l *Library) ReturnBatch(ctx context.Context, titles []string, now time.Time) (returnbooks.Receipt, error) {
	return l.returnBooks.Handle(ctx, returnbooks.BuildCommand(titles, now))
}

// ReturnBook returns a single title. See ReturnBatch.
func (l *Library) ReturnBook(ctx context.Context, title string, now time.Time) (returnbooks.Receipt, error) {
	return l.ReturnBatch(ctx, []string{title}, now)
}

// DeleteBook removes a book. A pending rental is forfeited without fee.
// It returns an error wrapping core.ErrNotFound if there is no such book.
func (l *Library) DeleteBook(ctx context.Context, bookID core.BookIDString, now time.Time) (deletebook.Result, error) {
	return l.deleteBook.Handle(ctx, deletebook.BuildCommand(bookID, now))
}

// FindByTitle returns the first book, in insertion order, with the given title ignoring case.
func (l *Library) FindByTitle(title string) (core.Book, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.state.Catalog.FindByTitle(title)
}

// ListAll returns all books in insertion order.
func (l *Library) ListAll() []core.Book {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.state.Catalog.ListAll()
}

// RentedOut lists the open rentals, oldest first.
func (l *Library) RentedOut(ctx context.Context) (booksrentedout.BooksRentedOut, error) {
	return l.booksRentedOut.Handle(ctx, booksrentedout.BuildQuery())
}

// FinishedRentals lists every completed return and the total charged.
func (l *Library) FinishedRentals(ctx context.Context) (finishedrentals.FinishedRentals, error) {
	return l.finishedRentals.Handle(ctx, finishedrentals.BuildQuery())
}

// FinishedRentalsOf lists the completed returns of one borrower and what they were charged.
func (l *Library) FinishedRentalsOf(ctx context.Context, borrower core.BorrowerName) (finishedrentals.FinishedRentals, error) {
	return l.finishedRentals.Handle(ctx, finishedrentals.BuildQueryForBorrower(borrower))
}

// ExportJournal writes every event as one JSON object per line.
func (l *Library) ExportJournal(ctx context.Context, w io.Writer) error {
	return l.journal.Export(ctx, w)
}

// CurrentState returns a snapshot of the state and its version.
func (l *Library) CurrentState(ctx context.Context) (core.State, uint, error) {
	if err := ctx.Err(); err != nil {
		return core.State{}, 0, err
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.state.Clone(), l.version, nil
}

// Commit applies events to the state and appends them to the journal, both or neither.
// It fails with journal.ErrConcurrencyConflict if expectedVersion is not the current version.
func (l *Library) Commit(
	ctx context.Context,
	expectedVersion uint,
	events core.DomainEvents,
	metadata shell.EventMetadata,
) error {

	storableEvents, err := shell.StorableEventsFrom(events, metadata)
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	next := l.state.Clone()

	// A stale expectedVersion is rejected by the journal, which also reports the conflict.
	if expectedVersion == l.version {
		if evolveErr := next.Evolve(events...); evolveErr != nil {
			return evolveErr
		}
	}

	if appendErr := l.journal.Append(ctx, journal.MatchingAnyEvent(), expectedVersion, storableEvents...); appendErr != nil {
		return appendErr
	}

	l.state = next
	l.version += uint(len(storableEvents))

	return nil
}

func (l *Library) engineOptions() []memoryengine.Option {
	var opts []memoryengine.Option

	if l.logger != nil {
		opts = append(opts, memoryengine.WithLogger(l.logger))
	}
	if l.contextualLogger != nil {
		opts = append(opts, memoryengine.WithContextualLogger(l.contextualLogger))
	}
	if l.metricsCollector != nil {
		opts = append(opts, memoryengine.WithMetrics(l.metricsCollector))
	}
	if l.tracingCollector != nil {
		opts = append(opts, memoryengine.WithTracing(l.tracingCollector))
	}

	return opts
}

func wrapperOptions[C shell.Command, R shell.ReportsHandling](l *Library) []observable.CommandOption[C, R] {
	var opts []observable.CommandOption[C, R]

	if l.logger != nil {
		opts = append(opts, observable.WithCommandLogging[C, R](l.logger))
	}
	if l.contextualLogger != nil {
		opts = append(opts, observable.WithCommandContextualLogging[C, R](l.contextualLogger))
	}
	if l.metricsCollector != nil {
		opts = append(opts, observable.WithCommandMetrics[C, R](l.metricsCollector))
	}
	if l.tracingCollector != nil {
		opts = append(opts, observable.WithCommandTracing[C, R](l.tracingCollector))
	}

	return opts
}
