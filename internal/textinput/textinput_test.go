package textinput_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/booklending/internal/textinput"
)

func Test_ParseBookLines(t *testing.T) {
	// arrange
	input := "Clean Code Martin F1\n\n  The Go Programming Language  Donovan  G7 \nToo Short\r\nSICP Abelson A9"

	// act
	books, skipped := textinput.ParseBookLines(input)

	// assert
	assert.Equal(t, []textinput.BookLine{
		{Title: "Clean Code", Author: "Martin", Shelf: "F1"},
		{Title: "The Go Programming Language", Author: "Donovan", Shelf: "G7"},
		{Title: "SICP", Author: "Abelson", Shelf: "A9"},
	}, books)
	assert.Equal(t, 1, skipped)
}

func Test_ParseBookLines_Empty(t *testing.T) {
	books, skipped := textinput.ParseBookLines(" \n\t\n")

	assert.Empty(t, books)
	assert.Equal(t, 0, skipped)
}

func Test_ParseTitles(t *testing.T) {
	// act
	titles := textinput.ParseTitles("  Python Basics \n\n DBMS Concepts\r\n   \n")

	// assert
	assert.Equal(t, []string{"Python Basics", "DBMS Concepts"}, titles)
}
