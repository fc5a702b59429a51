package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/erazemk/foodcourt/internal/model"
)

// ErrDuplicateName is returned when a food with the same name exists.
var ErrDuplicateName = errors.New("duplicate food name")

// NewFood holds the fields needed to create a food.
type NewFood struct {
	Name        string
	Description string
	Price       float64
	Category    string
	Image       []byte
	ImageName   string
	ImageMime   string
	CreatedBy   *int64
}

// CreateFood inserts a food and returns it without its image bytes.
func CreateFood(ctx context.Context, db *sql.DB, f NewFood) (*model.Food, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO foods (name, description, price, category, image, image_name, image_mime, created_by)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		f.Name, f.Description, f.Price, f.Category, f.Image, f.ImageName, f.ImageMime, f.CreatedBy,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, ErrDuplicateName
		}
		return nil, fmt.Errorf("creating food: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting food id: %w", err)
	}

	return GetFood(ctx, db, id)
}

// GetFood returns a food by ID.
func GetFood(ctx context.Context, db *sql.DB, id int64) (*model.Food, error) {
	f := &model.Food{}
	err := db.QueryRowContext(ctx,
		`SELECT id, name, description, price, category, image_name, image_mime, created_by, created_at
		 FROM foods WHERE id = ?`, id,
	).Scan(&f.ID, &f.Name, &f.Description, &f.Price, &f.Category, &f.Image, &f.ImageMime, &f.CreatedBy, &f.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting food: %w", err)
	}
	return f, nil
}

// ListFoods returns all foods ordered by name, optionally filtered by
// category.
func ListFoods(ctx context.Context, db *sql.DB, category string) ([]model.Food, error) {
	var rows *sql.Rows
	var err error

	if category != "" {
		rows, err = db.QueryContext(ctx,
			`SELECT id, name, description, price, category, image_name, image_mime, created_by, created_at
			 FROM foods WHERE category = ? ORDER BY name`, category,
		)
	} else {
		rows, err = db.QueryContext(ctx,
			`SELECT id, name, description, price, category, image_name, image_mime, created_by, created_at
			 FROM foods ORDER BY name`,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("listing foods: %w", err)
	}
	defer rows.Close()

	var foods []model.Food
	for rows.Next() {
		var f model.Food
		if err := rows.Scan(&f.ID, &f.Name, &f.Description, &f.Price, &f.Category, &f.Image, &f.ImageMime, &f.CreatedBy, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning food: %w", err)
		}
		foods = append(foods, f)
	}
	return foods, rows.Err()
}

// GetFoodImage returns a food's image data and MIME type.
func GetFoodImage(ctx context.Context, db *sql.DB, id int64) ([]byte, string, error) {
	var image []byte
	var mime string
	err := db.QueryRowContext(ctx,
		`SELECT image, image_mime FROM foods WHERE id = ?`, id,
	).Scan(&image, &mime)
	if err == sql.ErrNoRows {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("getting food image: %w", err)
	}
	return image, mime, nil
}
