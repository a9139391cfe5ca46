package controller

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"maktabati_backend/internals/features/catalog/books/model"
	categoryModel "maktabati_backend/internals/features/catalog/categories/model"
)

func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&categoryModel.CategoryModel{}, &model.BookModel{}))

	ctrl := &BooksController{DB: db}
	app := fiber.New()
	app.Post("/api/books", ctrl.Create)
	app.Patch("/api/books/:id", ctrl.Update)
	return app, db
}

func postForm(t *testing.T, app *fiber.App, method, path string, fields map[string]string) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestCreateBookRejectsMalformedNumbers(t *testing.T) {
	app, db := setupApp(t)
	cat := categoryModel.CategoryModel{Name: "الأدب"}
	require.NoError(t, db.Create(&cat).Error)

	base := func() map[string]string {
		return map[string]string{
			"title":       "كتاب",
			"author":      "مؤلف",
			"description": "desc",
			"price":       "25.50",
			"stock":       "5",
			"category_id": cat.ID.String(),
		}
	}

	for _, field := range []string{"price", "stock", "discount"} {
		fields := base()
		fields[field] = "abc"
		resp := postForm(t, app, http.MethodPost, "/api/books", fields)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode, field)
	}

	// Nothing slipped through as a zero-valued book.
	var count int64
	require.NoError(t, db.Model(&model.BookModel{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestUpdateBookRejectsMalformedNumbers(t *testing.T) {
	app, db := setupApp(t)
	cat := categoryModel.CategoryModel{Name: "العلوم"}
	require.NoError(t, db.Create(&cat).Error)
	book := model.BookModel{
		Title:       "كتاب",
		Author:      "مؤلف",
		Description: "desc",
		Price:       30,
		Stock:       4,
		CategoryID:  cat.ID,
	}
	require.NoError(t, db.Create(&book).Error)

	resp := postForm(t, app, http.MethodPatch, "/api/books/"+book.ID.String(),
		map[string]string{"price": "abc"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = postForm(t, app, http.MethodPatch, "/api/books/"+book.ID.String(),
		map[string]string{"category_id": "not-a-uuid"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var reloaded model.BookModel
	require.NoError(t, db.First(&reloaded, "id = ?", book.ID).Error)
	require.Equal(t, 30.0, reloaded.Price)
}
