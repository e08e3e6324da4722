package core

import "slices"

// Catalog is the ordered set of books. Insertion order is kept for listing and for
// resolving title collisions.
type Catalog struct {
	books []Book
}

// FindByTitle returns the first book, in insertion order, whose title matches
// case-insensitively.
func (c Catalog) FindByTitle(title string) (Book, bool) {
	key := TitleKey(title)
	for _, b := range c.books {
		if TitleKey(b.Title) == key {
			return b, true
		}
	}

	return Book{}, false
}

// ByID returns the book with the given id.
func (c Catalog) ByID(id BookIDString) (Book, bool) {
	if i := c.indexOf(id); i >= 0 {
		return c.books[i], true
	}

	return Book{}, false
}

// ListAll returns a copy of all books in insertion order.
func (c Catalog) ListAll() []Book {
	return slices.Clone(c.books)
}

// Len returns the number of books.
func (c Catalog) Len() int {
	return len(c.books)
}

func (c Catalog) indexOf(id BookIDString) int {
	return slices.IndexFunc(c.books, func(b Book) bool { return b.ID == id })
}

func (c *Catalog) add(b Book) {
	c.books = append(c.books, b)
}

func (c *Catalog) setStatus(id BookIDString, status BookStatus) bool {
	i := c.indexOf(id)
	if i < 0 {
		return false
	}
	c.books[i].Status = status

	return true
}

func (c *Catalog) remove(id BookIDString) bool {
	i := c.indexOf(id)
	if i < 0 {
		return false
	}
	c.books = slices.Delete(c.books, i, i+1)

	return true
}

func (c Catalog) clone() Catalog {
	return Catalog{books: slices.Clone(c.books)}
}
