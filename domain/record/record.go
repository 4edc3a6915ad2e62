// Package record provides source record domain types. Source records live in
// an externally hosted, human-editable store; the worker only reads and
// patches them, it never creates or deletes them.
package record

// DefaultCategory is assigned to records whose category is absent.
const DefaultCategory = "uncategorized"

// Record represents a loosely-typed candidate entry from the record store.
// The store-assigned identifier is opaque; Name is the natural key.
type Record struct {
	id       string
	name     string
	category string
	price    int
	stock    int
	imageURL string
}

// New creates a new Record.
func New(id, name string) Record {
	return Record{id: id, name: name}
}

// WithCategory returns a copy with the category set.
func (r Record) WithCategory(category string) Record {
	r.category = category
	return r
}

// WithPrice returns a copy with the price set.
func (r Record) WithPrice(price int) Record {
	r.price = price
	return r
}

// WithStock returns a copy with the stock set.
func (r Record) WithStock(stock int) Record {
	r.stock = stock
	return r
}

// WithImageURL returns a copy with the image URL set.
func (r Record) WithImageURL(url string) Record {
	r.imageURL = url
	return r
}

// ID returns the store-assigned opaque identifier.
func (r Record) ID() string { return r.id }

// Name returns the record name (natural key; may be empty on malformed records).
func (r Record) Name() string { return r.name }

// Category returns the category.
func (r Record) Category() string { return r.category }

// Price returns the price.
func (r Record) Price() int { return r.price }

// Stock returns the stock count.
func (r Record) Stock() int { return r.stock }

// ImageURL returns the image URL, possibly empty.
func (r Record) ImageURL() string { return r.imageURL }

// Malformed reports whether the record cannot participate in a name lookup.
func (r Record) Malformed() bool {
	return r.name == ""
}

// Normalized returns a copy with defaults applied: absent category becomes
// DefaultCategory, negative price/stock clamp to zero.
func (r Record) Normalized() Record {
	if r.category == "" {
		r.category = DefaultCategory
	}
	if r.price < 0 {
		r.price = 0
	}
	if r.stock < 0 {
		r.stock = 0
	}
	return r
}
