package upload

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	return store
}

// post runs one request through a throwaway fiber handler
func post(t *testing.T, handler fiber.Handler, contentType string, body []byte) *http.Response {
	t.Helper()
	// Keep fasthttp from pre-parsing multipart forms while reading the
	// request; SaveImages must see malformed bodies itself.
	app := fiber.New(fiber.Config{DisablePreParseMultipartForm: true})
	app.Post("/", handler)

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	req.Header.Set("Content-Type", contentType)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestSaveImagesStoresFiles(t *testing.T) {
	store := newTestStore(t)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("images", "photo.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("png-bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	var saved []string
	var saveErr error
	post(t, func(c *fiber.Ctx) error {
		saved, saveErr = store.SaveImages(c, "images", KindOffers)
		return c.SendStatus(fiber.StatusOK)
	}, writer.FormDataContentType(), body.Bytes())

	require.NoError(t, saveErr)
	require.Len(t, saved, 1)
	assert.True(t, strings.HasPrefix(saved[0], "/uploads/offers/"))

	rel := strings.TrimPrefix(saved[0], "/uploads/")
	_, err = os.Stat(filepath.Join(store.Root(), filepath.FromSlash(rel)))
	assert.NoError(t, err)
}

func TestSaveImagesJSONBodyMeansNoFiles(t *testing.T) {
	store := newTestStore(t)

	var saved []string
	var saveErr error
	post(t, func(c *fiber.Ctx) error {
		saved, saveErr = store.SaveImages(c, "images", KindOffers)
		return c.SendStatus(fiber.StatusOK)
	}, "application/json", []byte(`{"title":"no files here"}`))

	assert.NoError(t, saveErr)
	assert.Empty(t, saved)
}

func TestSaveImagesMalformedFormSurfaces(t *testing.T) {
	store := newTestStore(t)

	// File part cut off before the closing boundary
	body := "--cut\r\n" +
		"Content-Disposition: form-data; name=\"images\"; filename=\"a.png\"\r\n" +
		"Content-Type: image/png\r\n\r\n" +
		"partial data"

	var saveErr error
	post(t, func(c *fiber.Ctx) error {
		_, saveErr = store.SaveImages(c, "images", KindOffers)
		return c.SendStatus(fiber.StatusOK)
	}, "multipart/form-data; boundary=cut", []byte(body))

	assert.ErrorIs(t, saveErr, ErrMalformedForm)
}

func TestSaveImagesRejectsNonImages(t *testing.T) {
	store := newTestStore(t)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("images", "script.sh")
	require.NoError(t, err)
	_, err = part.Write([]byte("#!/bin/sh"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	var saveErr error
	post(t, func(c *fiber.Ctx) error {
		_, saveErr = store.SaveImages(c, "images", KindOffers)
		return c.SendStatus(fiber.StatusOK)
	}, writer.FormDataContentType(), body.Bytes())

	assert.ErrorIs(t, saveErr, ErrNotAnImage)
}

func TestSaveImageMissingFieldIsNotAnError(t *testing.T) {
	store := newTestStore(t)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	require.NoError(t, writer.WriteField("bio", "just text"))
	require.NoError(t, writer.Close())

	var saved string
	var saveErr error
	post(t, func(c *fiber.Ctx) error {
		saved, saveErr = store.SaveImage(c, "profile_image", KindProfiles)
		return c.SendStatus(fiber.StatusOK)
	}, writer.FormDataContentType(), body.Bytes())

	assert.NoError(t, saveErr)
	assert.Empty(t, saved)
}
