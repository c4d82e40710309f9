package handlers

import (
	"encoding/base64"
	"io"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/E72-BI/cartao-santa-casa/internal/api/dto"
	"github.com/E72-BI/cartao-santa-casa/internal/repository"
)

// AssetsHandler exposes the promotional image library.
type AssetsHandler struct {
	assets *repository.AssetLibrary
}

// NewAssetsHandler constructs handler.
func NewAssetsHandler(assets *repository.AssetLibrary) *AssetsHandler {
	return &AssetsHandler{assets: assets}
}

// List handles GET /assets.
func (h *AssetsHandler) List(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": h.assets.All()})
}

// Upload handles POST /assets. It accepts either a ready data-URI string or
// raw image bytes in a multipart file field, which are re-encoded here.
func (h *AssetsHandler) Upload(c *fiber.Ctx) error {
	if file, err := c.FormFile("image"); err == nil {
		src, err := file.Open()
		if err != nil {
			return fiber.NewError(http.StatusBadRequest, "unreadable image")
		}
		defer src.Close()

		raw, err := io.ReadAll(src)
		if err != nil {
			return fiber.NewError(http.StatusBadRequest, "unreadable image")
		}

		contentType := file.Header.Get("Content-Type")
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		dataURI := "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(raw)
		h.assets.Append(c.Context(), dataURI)
		return c.SendStatus(http.StatusCreated)
	}

	var req dto.AssetRequest
	if err := c.BodyParser(&req); err != nil || req.DataURI == "" {
		return fiber.NewError(http.StatusBadRequest, "image file or dataUri required")
	}
	h.assets.Append(c.Context(), req.DataURI)
	return c.SendStatus(http.StatusCreated)
}

// Delete handles DELETE /assets/:index; out-of-range indexes are a no-op.
func (h *AssetsHandler) Delete(c *fiber.Ctx) error {
	index, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid index")
	}
	h.assets.RemoveAt(c.Context(), index)
	return c.SendStatus(http.StatusNoContent)
}
