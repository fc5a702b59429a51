package model

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// ItemDraft is the in-progress menu item an administrator is filling in.
// Price is kept exactly as typed; it is only converted to a number when
// the draft is submitted. Image is nil until a picture is chosen.
type ItemDraft struct {
	Name        string `validate:"required"`
	Description string `validate:"required"`
	Price       string `validate:"required,numeric_text"`
	Category    string `validate:"required,category"`
	Image       *Image `validate:"-"`
}

// Image is the picture attached to a draft. It is treated as immutable
// once attached; replacing the picture replaces the whole value.
type Image struct {
	Filename string
	MIME     string
	Data     []byte
}

// Categories lists the stalls a menu item can belong to. Order matters:
// the first entry is the default for a new draft.
var Categories = []string{
	"Drinks Stall",
	"Prata Stall",
	"Mix Veg Rice",
	"Noodles Stall",
	"Thai",
	"Western",
	"Yong Tau Foo",
	"Fruits Stall",
}

// DefaultCategory is the category a fresh draft starts with.
var DefaultCategory = Categories[0]

// EmptyDraft returns the draft a form starts with.
func EmptyDraft() ItemDraft {
	return ItemDraft{Category: DefaultCategory}
}

// IsCategory reports whether name is one of the enumerated categories.
func IsCategory(name string) bool {
	for _, c := range Categories {
		if c == name {
			return true
		}
	}
	return false
}

// CategoryIndex returns the position of name in Categories, or -1.
func CategoryIndex(name string) int {
	for i, c := range Categories {
		if c == name {
			return i
		}
	}
	return -1
}

// ErrPriceNotNumeric is returned when the typed price is not a number.
var ErrPriceNotNumeric = errors.New("price must be a number")

// ParsePrice converts the typed price to a number. Surrounding spaces are
// ignored; NaN and infinities are rejected. No range check is applied.
func ParsePrice(text string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrPriceNotNumeric
	}
	return v, nil
}

// FormatPrice renders a price in its shortest decimal form, e.g. 12.5.
func FormatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
