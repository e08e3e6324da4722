package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/AntonStoeckl/booklending/core"
	"github.com/AntonStoeckl/booklending/features/command/deletebook"
	"github.com/AntonStoeckl/booklending/features/command/rentbooks"
	"github.com/AntonStoeckl/booklending/features/command/returnbooks"
	"github.com/AntonStoeckl/booklending/features/query/booksrentedout"
	"github.com/AntonStoeckl/booklending/features/query/finishedrentals"
)

const dateLayout = "2006-01-02 15:04"

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func renderBooks(w io.Writer, books []core.Book) error {
	if len(books) == 0 {
		_, err := fmt.Fprintln(w, "The catalog is empty.")
		return err
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "#\tTITLE\tAUTHOR\tSHELF\tSTATUS")
	for i, b := range books {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", i+1, b.Title, b.Author, b.Shelf, b.Status)
	}

	return tw.Flush()
}

func renderAdded(w io.Writer, added, skipped int) {
	fmt.Fprintf(w, "%d book(s) added successfully.\n", added)
	if skipped > 0 {
		fmt.Fprintf(w, "%d line(s) ignored, expected: Title words Author Shelf\n", skipped)
	}
}

func renderRented(w io.Writer, result rentbooks.Result, borrower string) {
	fmt.Fprintf(w, "%d book(s) rented to %s.\n", result.Count, borrower)
	renderSkipped(w, result.Skipped)
}

func renderReceipt(w io.Writer, receipt returnbooks.Receipt, ratePerDay int64, currency string) {
	if receipt.Count == 0 {
		fmt.Fprintln(w, "No rented books found in the list.")
		renderSkipped(w, receipt.Skipped)
		return
	}

	for _, line := range receipt.Lines {
		fmt.Fprintf(w, "%s → %d days × %s%d = %s%d\n",
			line.RequestedTitle, line.Days, currency, ratePerDay, currency, line.Amount)
	}
	fmt.Fprintf(w, "\nTotal Rent: %s%d\n", currency, receipt.TotalAmount)
	renderSkipped(w, receipt.Skipped)
}

func renderSkipped(w io.Writer, skipped []core.SkippedTitle) {
	for _, s := range skipped {
		fmt.Fprintf(w, "  skipped: %v\n", s.Reason)
	}
}

func renderDeleted(w io.Writer, result deletebook.Result) {
	fmt.Fprintf(w, "Deleted %q.\n", result.Deleted.Title)
	if result.Forfeited != nil {
		fmt.Fprintf(w, "It was rented to %s since %s; the rental is forfeited.\n",
			result.Forfeited.Borrower, result.Forfeited.RentStart.Local().Format(dateLayout))
	}
}

func renderRentedOut(w io.Writer, result booksrentedout.BooksRentedOut, now time.Time) error {
	if result.Count == 0 {
		_, err := fmt.Fprintln(w, "No books are rented out.")
		return err
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "TITLE\tBORROWER\tSINCE\tDAYS")
	for _, r := range result.Rentals {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n",
			r.Title, r.Borrower, r.RentStart.Local().Format(dateLayout), core.RentDays(r.RentStart, now))
	}

	return tw.Flush()
}

func renderFinished(w io.Writer, result finishedrentals.FinishedRentals, currency string) error {
	if result.Count == 0 {
		_, err := fmt.Fprintln(w, "No rentals finished yet.")
		return err
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "TITLE\tBORROWER\tRETURNED\tDAYS\tAMOUNT")
	for _, r := range result.Rentals {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s%d\n",
			r.Title, r.Borrower, r.ReturnedAt.Local().Format(dateLayout), r.Days, currency, r.Amount)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\n%d rental(s), revenue %s%d\n", result.Count, currency, result.TotalAmount)
	return err
}

func renderStats(w io.Writer, lines []statLine) error {
	if len(lines) == 0 {
		_, err := fmt.Fprintln(w, "No metrics recorded.")
		return err
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "METRIC\tLABELS\tVALUE")
	for _, l := range lines {
		fmt.Fprintf(tw, "%s\t%s\t%g\n", l.Name, l.Labels, l.Value)
	}

	return tw.Flush()
}

const helpText = `Commands:
  list              show all books
  add               add books, one "Title words Author Shelf" per line, blank line ends
  rent <borrower>   rent titles to borrower, one title per line, blank line ends
  return            return titles, one per line, blank line ends
  delete <row>      delete the book at the given row of "list"
  rented            show books currently rented out
  history [name]    show finished rentals and revenue, of one borrower if named
  stats             show command and journal metrics
  export            print the event journal as JSON lines
  help              show this text
  quit              leave`
