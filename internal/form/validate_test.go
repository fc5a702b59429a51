package form

import (
	"errors"
	"testing"

	"github.com/erazemk/foodcourt/internal/model"
)

func TestValidate(t *testing.T) {
	valid := model.ItemDraft{
		Name:        "Teh Tarik",
		Description: "Pulled milk tea",
		Price:       "1.80",
		Category:    "Drinks Stall",
	}

	tests := []struct {
		name       string
		mutate     func(*model.ItemDraft)
		wantFields []string
	}{
		{"valid", func(*model.ItemDraft) {}, nil},
		{"missing name", func(d *model.ItemDraft) { d.Name = "" }, []string{"name"}},
		{"missing description", func(d *model.ItemDraft) { d.Description = "" }, []string{"description"}},
		{"missing price", func(d *model.ItemDraft) { d.Price = "" }, []string{"price"}},
		{"price not numeric", func(d *model.ItemDraft) { d.Price = "two" }, []string{"price"}},
		{"bad category", func(d *model.ItemDraft) { d.Category = "Pizza" }, []string{"category"}},
		{"empty draft", func(d *model.ItemDraft) { *d = model.EmptyDraft() }, []string{"name", "description", "price"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := valid
			tt.mutate(&d)

			err := Validate(d)
			if tt.wantFields == nil {
				if err != nil {
					t.Fatalf("expected valid, got %v", err)
				}
				return
			}

			var ie *InputError
			if !errors.As(err, &ie) {
				t.Fatalf("expected *InputError, got %v", err)
			}
			if len(ie.Fields) != len(tt.wantFields) {
				t.Errorf("expected fields %v, got %v", tt.wantFields, ie.Fields)
			}
			for _, f := range tt.wantFields {
				if _, ok := ie.Fields[f]; !ok {
					t.Errorf("expected field %q to fail, got %v", f, ie.Fields)
				}
			}
		})
	}
}

func TestValidateIgnoresImage(t *testing.T) {
	d := model.ItemDraft{Name: "Kopi", Description: "Coffee", Price: "1.2", Category: "Drinks Stall"}
	if err := Validate(d); err != nil {
		t.Errorf("expected draft without image to pass input checks, got %v", err)
	}
}
