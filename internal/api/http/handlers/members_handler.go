package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/E72-BI/cartao-santa-casa/internal/api/dto"
	"github.com/E72-BI/cartao-santa-casa/internal/service"
)

// MembersHandler exposes the administrator directory operations.
type MembersHandler struct {
	members *service.MembersService
}

// NewMembersHandler constructs handler.
func NewMembersHandler(membersService *service.MembersService) *MembersHandler {
	return &MembersHandler{members: membersService}
}

// List handles GET /members with an optional ?q= search term.
func (h *MembersHandler) List(c *fiber.Ctx) error {
	members := h.members.List(c.Query("q"))
	return c.JSON(fiber.Map{"data": members})
}

// Update handles PUT /members/:id. An unknown identifier is a silent no-op,
// matching the forgiving semantics of the directory.
func (h *MembersHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	member := req.ToMember(c.Params("id"))
	h.members.Update(c.Context(), member)
	return c.JSON(fiber.Map{"data": member})
}

// Delete handles DELETE /members/:id.
func (h *MembersHandler) Delete(c *fiber.Ctx) error {
	h.members.Delete(c.Context(), c.Params("id"))
	return c.SendStatus(http.StatusNoContent)
}

// Import handles POST /members/import with raw spreadsheet content.
func (h *MembersHandler) Import(c *fiber.Ctx) error {
	var req dto.ImportRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Content == "" {
		return fiber.NewError(http.StatusBadRequest, "content required")
	}

	count, err := h.members.ImportCSV(c.UserContext(), []byte(req.Content))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": fiber.Map{"imported": count}})
}

// Export handles GET /members/export, streaming the CSV download.
func (h *MembersHandler) Export(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+h.members.ExportFilename()+`"`)
	return c.Send(h.members.ExportCSV())
}
