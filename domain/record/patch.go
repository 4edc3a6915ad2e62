package record

// Patch expresses a partial field update for a source record. Unset fields
// are left untouched by the store. An image URL set to the empty string
// means "clear": the store writes an explicit null, not an empty string.
type Patch struct {
	category    *string
	price       *int
	stock       *int
	description *string
	imageURL    *string
}

// NewPatch creates an empty Patch.
func NewPatch() Patch {
	return Patch{}
}

// WithCategory returns a copy that updates the category.
func (p Patch) WithCategory(category string) Patch {
	p.category = &category
	return p
}

// WithPrice returns a copy that updates the price.
func (p Patch) WithPrice(price int) Patch {
	p.price = &price
	return p
}

// WithStock returns a copy that updates the stock.
func (p Patch) WithStock(stock int) Patch {
	p.stock = &stock
	return p
}

// WithDescription returns a copy that updates the description.
func (p Patch) WithDescription(description string) Patch {
	p.description = &description
	return p
}

// WithImageURL returns a copy that updates the image URL.
// An empty url clears the field.
func (p Patch) WithImageURL(url string) Patch {
	p.imageURL = &url
	return p
}

// Category returns the category update, if set.
func (p Patch) Category() (string, bool) {
	if p.category == nil {
		return "", false
	}
	return *p.category, true
}

// Price returns the price update, if set.
func (p Patch) Price() (int, bool) {
	if p.price == nil {
		return 0, false
	}
	return *p.price, true
}

// Stock returns the stock update, if set.
func (p Patch) Stock() (int, bool) {
	if p.stock == nil {
		return 0, false
	}
	return *p.stock, true
}

// Description returns the description update, if set.
func (p Patch) Description() (string, bool) {
	if p.description == nil {
		return "", false
	}
	return *p.description, true
}

// ImageURL returns the image URL update, if set.
func (p Patch) ImageURL() (string, bool) {
	if p.imageURL == nil {
		return "", false
	}
	return *p.imageURL, true
}

// Empty reports whether the patch updates nothing.
func (p Patch) Empty() bool {
	return p.category == nil && p.price == nil && p.stock == nil &&
		p.description == nil && p.imageURL == nil
}
