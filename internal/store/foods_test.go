package store

import (
	"context"
	"errors"
	"testing"

	"github.com/erazemk/foodcourt/internal/db"
)

func newFood(name, category string) NewFood {
	return NewFood{
		Name:        name,
		Description: "test dish",
		Price:       3.5,
		Category:    category,
		Image:       []byte("fake image data"),
		ImageName:   "dish.jpg",
		ImageMime:   "image/jpeg",
	}
}

func TestCreateAndGetFood(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	food, err := CreateFood(ctx, database, newFood("Char Kway Teow", "Noodles Stall"))
	if err != nil {
		t.Fatalf("CreateFood: %v", err)
	}
	if food.Name != "Char Kway Teow" {
		t.Errorf("expected name 'Char Kway Teow', got %q", food.Name)
	}
	if food.Price != 3.5 {
		t.Errorf("expected price 3.5, got %v", food.Price)
	}
	if food.Image != "dish.jpg" {
		t.Errorf("expected image name 'dish.jpg', got %q", food.Image)
	}

	missing, err := GetFood(ctx, database, food.ID+100)
	if err != nil {
		t.Fatalf("GetFood: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for missing food")
	}
}

func TestCreateFoodDuplicateName(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	CreateFood(ctx, database, newFood("Milo Dinosaur", "Drinks Stall"))
	_, err := CreateFood(ctx, database, newFood("Milo Dinosaur", "Drinks Stall"))
	if !errors.Is(err, ErrDuplicateName) {
		t.Errorf("expected ErrDuplicateName, got %v", err)
	}
}

func TestListFoodsByCategory(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	CreateFood(ctx, database, newFood("Tom Yum", "Thai"))
	CreateFood(ctx, database, newFood("Pad Thai", "Thai"))
	CreateFood(ctx, database, newFood("Fish and Chips", "Western"))

	all, _ := ListFoods(ctx, database, "")
	if len(all) != 3 {
		t.Errorf("expected 3 foods, got %d", len(all))
	}

	thai, _ := ListFoods(ctx, database, "Thai")
	if len(thai) != 2 {
		t.Errorf("expected 2 Thai foods, got %d", len(thai))
	}
	if len(thai) == 2 && thai[0].Name != "Pad Thai" {
		t.Errorf("expected foods ordered by name, got %q first", thai[0].Name)
	}
}

func TestFoodImage(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	food, _ := CreateFood(ctx, database, newFood("Ice Kacang", "Fruits Stall"))

	data, mime, err := GetFoodImage(ctx, database, food.ID)
	if err != nil {
		t.Fatalf("GetFoodImage: %v", err)
	}
	if string(data) != "fake image data" {
		t.Errorf("expected image data, got %q", string(data))
	}
	if mime != "image/jpeg" {
		t.Errorf("expected mime 'image/jpeg', got %q", mime)
	}
}
