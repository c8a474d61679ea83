package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/secondbrain/bookmarks/internal/core/domain"
	"github.com/secondbrain/bookmarks/internal/core/ports"
)

// HeaderIdempotencyKey lets a client retry a create without duplicating it.
const HeaderIdempotencyKey = "Idempotency-Key"

// ContentHandler handles HTTP requests for saved content.
type ContentHandler struct {
	service ports.ContentService
}

func NewContentHandler(service ports.ContentService) *ContentHandler {
	return &ContentHandler{service: service}
}

// Create handles POST /content/create.
//
// @Summary      Save a link
// @Tags         content
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string          false  "Replays the first result for repeated submissions"
// @Param        body             body      ContentRequest  true   "Link details"
// @Success      201              {object}  createContentResponse
// @Failure      400              {object}  validationResponse
// @Failure      401              {object}  messageResponse
// @Failure      403              {object}  messageResponse
// @Failure      404              {object}  messageResponse
// @Failure      409              {object}  messageResponse
// @Router       /content/create [post]
func (h *ContentHandler) Create(c echo.Context) error {
	ident, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req ContentRequest
	if err := c.Bind(&req); err != nil {
		return invalidPayload()
	}

	created, err := h.service.Create(c.Request().Context(), ident.ID, ports.CreateContentInput{
		ContentInput:   toContentInput(req),
		IdempotencyKey: strings.TrimSpace(c.Request().Header.Get(HeaderIdempotencyKey)),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, createContentResponse{
		Success: true,
		Message: "post has been made",
		NewPost: toContentResponse(created),
	})
}

// Edit handles PUT /content/edit/:id. All three mutable fields are replaced.
//
// @Summary      Edit a saved link
// @Tags         content
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Content ID"
// @Param        body  body      ContentRequest  true  "Replacement fields"
// @Success      200   {object}  editContentResponse
// @Failure      400   {object}  validationResponse
// @Failure      401   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Router       /content/edit/{id} [put]
func (h *ContentHandler) Edit(c echo.Context) error {
	ident, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	contentID, err := pathID(c)
	if err != nil {
		return err
	}

	var req ContentRequest
	if err := c.Bind(&req); err != nil {
		return invalidPayload()
	}

	updated, err := h.service.Edit(c.Request().Context(), ident.ID, contentID, toContentInput(req))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, editContentResponse{
		Success: true,
		Message: "post has been edited",
		Content: toContentResponse(updated),
	})
}

// Delete handles DELETE /content/delete/:id.
//
// @Summary      Delete a saved link
// @Tags         content
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Content ID"
// @Success      200  {object}  deleteContentResponse
// @Failure      401  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /content/delete/{id} [delete]
func (h *ContentHandler) Delete(c echo.Context) error {
	ident, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	contentID, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.service.Remove(c.Request().Context(), ident.ID, contentID); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, deleteContentResponse{Message: "post deleted successfully", Success: true})
}

// MyPosts handles GET /content/my-posts.
//
// @Summary      List my saved links
// @Tags         content
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listContentResponse
// @Failure      401  {object}  messageResponse
// @Router       /content/my-posts [get]
func (h *ContentHandler) MyPosts(c echo.Context) error {
	ident, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	items, err := h.service.ListByOwner(c.Request().Context(), ident.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListResponse(items))
}

// ByType handles GET /content/type/:type. Public: no ownership filter. The
// segment must match a type exactly; anything else lists nothing.
//
// @Summary      Browse saved links by type
// @Tags         content
// @Produce      json
// @Param        type  path      string  true  "Content type"  Enums(youtube, twitter, document, other)
// @Success      200   {object}  listContentResponse
// @Router       /content/type/{type} [get]
func (h *ContentHandler) ByType(c echo.Context) error {
	t := domain.ContentType(c.Param("type"))
	if !t.Valid() {
		return c.JSON(http.StatusOK, toListResponse(nil))
	}

	items, err := h.service.ListByType(c.Request().Context(), t)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListResponse(items))
}

// pathID parses the :id parameter. A malformed ID cannot exist, so it is
// reported as not found.
func pathID(c echo.Context) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return primitive.NilObjectID, domain.ErrContentNotFound
	}
	return id, nil
}

func toContentInput(r ContentRequest) ports.ContentInput {
	return ports.ContentInput{
		Title: r.Title,
		Link:  r.Link,
		Type:  domain.ContentType(r.Type),
	}
}
