package notion

import (
	"strings"

	"github.com/shopworks/catalogsync/domain/record"
)

// Property names in the source database. Lower-case by convention: the
// database is human-edited and these are the column names people see.
const (
	propName        = "name"
	propCategory    = "category"
	propPrice       = "price"
	propStock       = "stock"
	propImageURL    = "image_url"
	propDescription = "description"
)

// property covers every property shape the worker reads or writes. Notion
// sends one populated field per property type; absent sub-fields decode to
// zero values.
type property struct {
	Title    []richText    `json:"title,omitempty"`
	RichText []richText    `json:"rich_text,omitempty"`
	Select   *selectOption `json:"select,omitempty"`
	Number   *float64      `json:"number,omitempty"`
	URL      *string       `json:"url,omitempty"`
}

type richText struct {
	PlainText string    `json:"plain_text,omitempty"`
	Text      *textBody `json:"text,omitempty"`
}

type textBody struct {
	Content string `json:"content"`
}

type selectOption struct {
	Name string `json:"name"`
}

// pageToRecord maps a page's property bag to a Record. Title properties may
// be multi-part rich text; the parts are concatenated.
func pageToRecord(pg page) record.Record {
	props := pg.Properties

	rec := record.New(pg.ID, plainText(props[propName].Title))

	if sel := props[propCategory].Select; sel != nil {
		rec = rec.WithCategory(sel.Name)
	}
	if n := props[propPrice].Number; n != nil {
		rec = rec.WithPrice(int(*n))
	}
	if n := props[propStock].Number; n != nil {
		rec = rec.WithStock(int(*n))
	}
	if u := props[propImageURL].URL; u != nil {
		rec = rec.WithImageURL(*u)
	}

	return rec
}

func plainText(parts []richText) string {
	var b strings.Builder
	for _, part := range parts {
		b.WriteString(part.PlainText)
	}
	return strings.TrimSpace(b.String())
}

// patchProperties builds the properties body for a page update. Only set
// patch fields appear; an empty image URL becomes a JSON null.
func patchProperties(patch record.Patch) map[string]any {
	props := map[string]any{}

	if category, ok := patch.Category(); ok {
		props[propCategory] = map[string]any{
			"select": map[string]any{"name": category},
		}
	}
	if price, ok := patch.Price(); ok {
		props[propPrice] = map[string]any{"number": price}
	}
	if stock, ok := patch.Stock(); ok {
		props[propStock] = map[string]any{"number": stock}
	}
	if description, ok := patch.Description(); ok {
		props[propDescription] = map[string]any{
			"rich_text": []map[string]any{
				{"text": map[string]any{"content": description}},
			},
		}
	}
	if url, ok := patch.ImageURL(); ok {
		if url == "" {
			props[propImageURL] = map[string]any{"url": nil}
		} else {
			props[propImageURL] = map[string]any{"url": url}
		}
	}

	return props
}
