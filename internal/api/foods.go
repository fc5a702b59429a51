package api

import (
	"bytes"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/erazemk/foodcourt/internal/imaging"
	"github.com/erazemk/foodcourt/internal/model"
	"github.com/erazemk/foodcourt/internal/store"
)

// Reply messages of the food endpoints.
const (
	MsgFoodAdded     = "Food Added"
	MsgDuplicateName = "Duplicate name"
)

// FoodsHandler handles menu item endpoints.
type FoodsHandler struct {
	DB *sql.DB
}

// Add handles POST /api/food/add.
func (h *FoodsHandler) Add(w http.ResponseWriter, r *http.Request) {
	// Leave headroom for the text fields next to the image.
	r.Body = http.MaxBytesReader(w, r.Body, imaging.MaxUploadSize+1<<20)

	if err := r.ParseMultipartForm(imaging.MaxUploadSize); err != nil {
		jsonError(w, http.StatusBadRequest, "file too large or invalid multipart form")
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	description := strings.TrimSpace(r.FormValue("description"))
	category := r.FormValue("category")
	if name == "" || description == "" {
		jsonError(w, http.StatusOK, "name and description required")
		return
	}
	if !model.IsCategory(category) {
		jsonError(w, http.StatusOK, "invalid category")
		return
	}
	price, err := model.ParsePrice(r.FormValue("price"))
	if err != nil {
		jsonError(w, http.StatusOK, "invalid price")
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		jsonError(w, http.StatusOK, "image file required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to read image")
		return
	}

	result, err := imaging.Process(bytes.NewReader(data))
	if err != nil {
		slog.Warn("rejected image", "error", err)
		jsonError(w, http.StatusOK, "invalid image")
		return
	}

	var createdBy *int64
	if claims := GetClaims(r.Context()); claims != nil {
		createdBy = &claims.UserID
	}

	food, err := store.CreateFood(r.Context(), h.DB, store.NewFood{
		Name:        name,
		Description: description,
		Price:       price,
		Category:    category,
		Image:       result.Data,
		ImageName:   fmt.Sprintf("%s.jpg", uuid.NewString()),
		ImageMime:   result.MIME,
		CreatedBy:   createdBy,
	})
	if errors.Is(err, store.ErrDuplicateName) {
		jsonError(w, http.StatusOK, MsgDuplicateName)
		return
	}
	if err != nil {
		slog.Error("creating food", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to save food")
		return
	}

	slog.Info("food added", "id", food.ID, "name", food.Name, "category", food.Category)
	jsonReply(w, http.StatusOK, true, MsgFoodAdded)
}

// List handles GET /api/food/list.
func (h *FoodsHandler) List(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if category != "" && !model.IsCategory(category) {
		jsonError(w, http.StatusBadRequest, "invalid category")
		return
	}

	foods, err := store.ListFoods(r.Context(), h.DB, category)
	if err != nil {
		slog.Error("listing foods", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to list foods")
		return
	}
	if foods == nil {
		foods = []model.Food{}
	}
	jsonResponse(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    foods,
	})
}

// GetImage handles GET /api/food/{id}/image.
func (h *FoodsHandler) GetImage(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid food id")
		return
	}

	data, mime, err := store.GetFoodImage(r.Context(), h.DB, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get image")
		return
	}
	if data == nil {
		jsonError(w, http.StatusNotFound, "no image")
		return
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(data)
}
