package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/AntonStoeckl/booklending/core"
	"github.com/AntonStoeckl/booklending/features/query/finishedrentals"
	"github.com/AntonStoeckl/booklending/internal/textinput"
	"github.com/AntonStoeckl/booklending/library"
)

// errQuit ends the REPL.
var errQuit = errors.New("quit")

// promptFunc reads one line. It returns io.EOF when input ends.
type promptFunc func(prompt string) (string, error)

type app struct {
	lib      *library.Library
	out      io.Writer
	currency string
	stats    func(ctx context.Context) ([]statLine, error)
	now      func() time.Time
}

// dispatch runs one REPL command. Follow-up input, like the titles of "rent", is read with prompt.
func (a *app) dispatch(ctx context.Context, input string, prompt promptFunc) error {
	command, arg, _ := strings.Cut(strings.TrimSpace(input), " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(command) {
	case "":
		return nil
	case "list", "ls":
		return renderBooks(a.out, a.lib.ListAll())
	case "add":
		return a.add(ctx, prompt)
	case "rent":
		return a.rent(ctx, arg, prompt)
	case "return":
		return a.returnBooks(ctx, prompt)
	case "delete", "rm":
		return a.delete(ctx, arg)
	case "rented":
		result, err := a.lib.RentedOut(ctx)
		if err != nil {
			return err
		}
		return renderRentedOut(a.out, result, a.now())
	case "history":
		result, err := a.history(ctx, arg)
		if err != nil {
			return err
		}
		return renderFinished(a.out, result, a.currency)
	case "stats":
		lines, err := a.stats(ctx)
		if err != nil {
			return err
		}
		return renderStats(a.out, lines)
	case "export":
		return a.lib.ExportJournal(ctx, a.out)
	case "help", "?":
		_, err := fmt.Fprintln(a.out, helpText)
		return err
	case "quit", "exit":
		return errQuit
	default:
		_, err := fmt.Fprintf(a.out, "Unknown command %q, try help.\n", command)
		return err
	}
}

// history lists all finished rentals, or only those of borrower if one is given.
func (a *app) history(ctx context.Context, borrower string) (finishedrentals.FinishedRentals, error) {
	if borrower == "" {
		return a.lib.FinishedRentals(ctx)
	}

	return a.lib.FinishedRentalsOf(ctx, borrower)
}

func (a *app) add(ctx context.Context, prompt promptFunc) error {
	fmt.Fprintln(a.out, `One book per line: Title words Author Shelf. Blank line to finish.`)

	text, err := readBlock(prompt)
	if err != nil {
		return err
	}

	lines, skipped := textinput.ParseBookLines(text)
	added := 0
	now := a.now()

	for _, l := range lines {
		if _, addErr := a.lib.AddBook(ctx, l.Title, l.Author, l.Shelf, now); addErr != nil {
			if !errors.Is(addErr, core.ErrValidation) {
				return addErr
			}
			skipped++
			continue
		}
		added++
	}

	renderAdded(a.out, added, skipped)

	return nil
}

func (a *app) rent(ctx context.Context, borrower string, prompt promptFunc) error {
	if borrower == "" {
		line, err := prompt("Borrower: ")
		if err != nil {
			return err
		}
		borrower = strings.TrimSpace(line)
	}

	if borrower == "" {
		_, err := fmt.Fprintln(a.out, "A borrower name is required.")
		return err
	}

	fmt.Fprintln(a.out, "One title per line. Blank line to finish.")
	text, err := readBlock(prompt)
	if err != nil {
		return err
	}

	result, err := a.lib.RentBatch(ctx, textinput.ParseTitles(text), borrower, a.now())
	if err != nil {
		return err
	}

	renderRented(a.out, result, borrower)

	return nil
}

func (a *app) returnBooks(ctx context.Context, prompt promptFunc) error {
	fmt.Fprintln(a.out, "One title per line. Blank line to finish.")
	text, err := readBlock(prompt)
	if err != nil {
		return err
	}

	receipt, err := a.lib.ReturnBatch(ctx, textinput.ParseTitles(text), a.now())
	if err != nil {
		return err
	}

	renderReceipt(a.out, receipt, a.lib.RatePerDay(), a.currency)

	return nil
}

func (a *app) delete(ctx context.Context, arg string) error {
	books := a.lib.ListAll()

	row, err := strconv.Atoi(arg)
	if err != nil || row < 1 || row > len(books) {
		_, err = fmt.Fprintf(a.out, "Pick a row between 1 and %d from list.\n", len(books))
		return err
	}

	result, err := a.lib.DeleteBook(ctx, books[row-1].ID, a.now())
	if err != nil {
		return err
	}

	renderDeleted(a.out, result)

	return nil
}

// readBlock reads lines until a blank line or the end of input.
func readBlock(prompt promptFunc) (string, error) {
	var lines []string

	for {
		line, err := prompt("... ")
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(line) == "" {
			break
		}
		lines = append(lines, line)
	}

	return strings.Join(lines, "\n"), nil
}
