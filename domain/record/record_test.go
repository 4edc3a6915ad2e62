package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizedAppliesDefaults(t *testing.T) {
	rec := New("page-1", "Blue Mug").WithPrice(-3).WithStock(-1)

	norm := rec.Normalized()

	assert.Equal(t, DefaultCategory, norm.Category())
	assert.Equal(t, 0, norm.Price())
	assert.Equal(t, 0, norm.Stock())
}

func TestNormalizedKeepsExplicitValues(t *testing.T) {
	rec := New("page-2", "Blue Mug").
		WithCategory("Kitchen").
		WithPrice(12).
		WithStock(5).
		WithImageURL("https://example.com/mug.png")

	norm := rec.Normalized()

	assert.Equal(t, "Kitchen", norm.Category())
	assert.Equal(t, 12, norm.Price())
	assert.Equal(t, 5, norm.Stock())
	assert.Equal(t, "https://example.com/mug.png", norm.ImageURL())
}

func TestMalformed(t *testing.T) {
	assert.True(t, New("page-3", "").Malformed())
	assert.False(t, New("page-3", "Blue Mug").Malformed())
}

func TestPatchTracksSetFields(t *testing.T) {
	p := NewPatch().WithPrice(15).WithImageURL("")

	price, ok := p.Price()
	assert.True(t, ok)
	assert.Equal(t, 15, price)

	url, ok := p.ImageURL()
	assert.True(t, ok)
	assert.Empty(t, url)

	_, ok = p.Category()
	assert.False(t, ok)

	assert.False(t, p.Empty())
	assert.True(t, NewPatch().Empty())
}
