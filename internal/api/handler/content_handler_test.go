package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/secondbrain/bookmarks/internal/api/middleware"
	"github.com/secondbrain/bookmarks/internal/core/domain"
	"github.com/secondbrain/bookmarks/internal/core/ports"
)

type stubContentService struct {
	createFn      func(ctx context.Context, ownerID primitive.ObjectID, in ports.CreateContentInput) (*domain.Content, error)
	editFn        func(ctx context.Context, ownerID, contentID primitive.ObjectID, in ports.ContentInput) (*domain.Content, error)
	removeFn      func(ctx context.Context, ownerID, contentID primitive.ObjectID) error
	listByOwnerFn func(ctx context.Context, ownerID primitive.ObjectID) ([]*domain.Content, error)
	listByTypeFn  func(ctx context.Context, t domain.ContentType) ([]*domain.Content, error)
}

func (s *stubContentService) Create(ctx context.Context, ownerID primitive.ObjectID, in ports.CreateContentInput) (*domain.Content, error) {
	return s.createFn(ctx, ownerID, in)
}

func (s *stubContentService) Edit(ctx context.Context, ownerID, contentID primitive.ObjectID, in ports.ContentInput) (*domain.Content, error) {
	return s.editFn(ctx, ownerID, contentID, in)
}

func (s *stubContentService) Remove(ctx context.Context, ownerID, contentID primitive.ObjectID) error {
	return s.removeFn(ctx, ownerID, contentID)
}

func (s *stubContentService) ListByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]*domain.Content, error) {
	return s.listByOwnerFn(ctx, ownerID)
}

func (s *stubContentService) ListByType(ctx context.Context, t domain.ContentType) ([]*domain.Content, error) {
	return s.listByTypeFn(ctx, t)
}

func authedContext(method, target, body string, owner primitive.ObjectID) (echo.Context, *httptest.ResponseRecorder) {
	c, rec := newJSONContext(method, target, body)
	c.Set(middleware.IdentityKey, domain.Identity{ID: owner, Name: "alice"})
	return c, rec
}

func sampleContent(owner primitive.ObjectID) *domain.Content {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return &domain.Content{
		ID:        primitive.NewObjectID(),
		Title:     "Go talk",
		Link:      "https://youtube.com/watch?v=1",
		Type:      domain.ContentYouTube,
		OwnerID:   owner,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestContentHandler_Create(t *testing.T) {
	owner := primitive.NewObjectID()
	var got ports.CreateContentInput
	svc := &stubContentService{
		createFn: func(_ context.Context, ownerID primitive.ObjectID, in ports.CreateContentInput) (*domain.Content, error) {
			assert.Equal(t, owner, ownerID)
			got = in
			c := sampleContent(ownerID)
			c.Title, c.Link, c.Type = in.Title, in.Link, in.Type
			return c, nil
		},
	}

	c, rec := authedContext(http.MethodPost, "/content/create",
		`{"title":"Go talk","link":"https://youtube.com/watch?v=1","type":"youtube"}`, owner)
	c.Request().Header.Set(HeaderIdempotencyKey, " retry-1 ")

	require.NoError(t, NewContentHandler(svc).Create(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "retry-1", got.IdempotencyKey)
	assert.Equal(t, domain.ContentYouTube, got.Type)

	resp := decodeBody(t, rec)
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "post has been made", resp["message"])
	post := resp["newPost"].(map[string]any)
	assert.Equal(t, "Go talk", post["title"])
	assert.Equal(t, owner.Hex(), post["ownerId"])
}

func TestContentHandler_Create_WithoutIdentity(t *testing.T) {
	svc := &stubContentService{
		createFn: func(context.Context, primitive.ObjectID, ports.CreateContentInput) (*domain.Content, error) {
			t.Fatal("should not be called")
			return nil, nil
		},
	}
	c, _ := newJSONContext(http.MethodPost, "/content/create", `{}`)

	assert.ErrorIs(t, NewContentHandler(svc).Create(c), domain.ErrMissingToken)
}

func TestContentHandler_Edit(t *testing.T) {
	owner := primitive.NewObjectID()
	existing := sampleContent(owner)
	svc := &stubContentService{
		editFn: func(_ context.Context, ownerID, contentID primitive.ObjectID, in ports.ContentInput) (*domain.Content, error) {
			assert.Equal(t, existing.ID, contentID)
			updated := *existing
			updated.Title, updated.Link, updated.Type = in.Title, in.Link, in.Type
			return &updated, nil
		},
	}

	c, rec := authedContext(http.MethodPut, "/content/edit/"+existing.ID.Hex(),
		`{"title":"Renamed","link":"https://example.com/doc","type":"document"}`, owner)
	c.SetParamNames("id")
	c.SetParamValues(existing.ID.Hex())

	require.NoError(t, NewContentHandler(svc).Edit(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	resp := decodeBody(t, rec)
	assert.Equal(t, "post has been edited", resp["message"])
	content := resp["content"].(map[string]any)
	assert.Equal(t, "Renamed", content["title"])
	assert.Equal(t, "document", content["type"])
}

func TestContentHandler_Edit_MalformedID(t *testing.T) {
	svc := &stubContentService{
		editFn: func(context.Context, primitive.ObjectID, primitive.ObjectID, ports.ContentInput) (*domain.Content, error) {
			t.Fatal("should not be called")
			return nil, nil
		},
	}
	c, _ := authedContext(http.MethodPut, "/content/edit/nope", `{}`, primitive.NewObjectID())
	c.SetParamNames("id")
	c.SetParamValues("nope")

	assert.ErrorIs(t, NewContentHandler(svc).Edit(c), domain.ErrContentNotFound)
}

func TestContentHandler_Edit_NotOwner(t *testing.T) {
	svc := &stubContentService{
		editFn: func(context.Context, primitive.ObjectID, primitive.ObjectID, ports.ContentInput) (*domain.Content, error) {
			return nil, domain.ErrNotOwner
		},
	}
	id := primitive.NewObjectID()
	c, rec := authedContext(http.MethodPut, "/content/edit/"+id.Hex(),
		`{"title":"Renamed","link":"https://example.com","type":"other"}`, primitive.NewObjectID())
	c.SetParamNames("id")
	c.SetParamValues(id.Hex())

	assert.ErrorIs(t, NewContentHandler(svc).Edit(c), domain.ErrNotOwner)
	assert.Zero(t, rec.Body.Len())
}

func TestContentHandler_Delete(t *testing.T) {
	owner := primitive.NewObjectID()
	id := primitive.NewObjectID()
	removed := false
	svc := &stubContentService{
		removeFn: func(_ context.Context, ownerID, contentID primitive.ObjectID) error {
			removed = ownerID == owner && contentID == id
			return nil
		},
	}
	c, rec := authedContext(http.MethodDelete, "/content/delete/"+id.Hex(), "", owner)
	c.SetParamNames("id")
	c.SetParamValues(id.Hex())

	require.NoError(t, NewContentHandler(svc).Delete(c))
	assert.True(t, removed)
	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody(t, rec)
	assert.Equal(t, "post deleted successfully", resp["message"])
	assert.Equal(t, true, resp["success"])
}

func TestContentHandler_MyPosts(t *testing.T) {
	owner := primitive.NewObjectID()
	svc := &stubContentService{
		listByOwnerFn: func(_ context.Context, ownerID primitive.ObjectID) ([]*domain.Content, error) {
			assert.Equal(t, owner, ownerID)
			return []*domain.Content{sampleContent(owner), sampleContent(owner)}, nil
		},
	}
	c, rec := authedContext(http.MethodGet, "/content/my-posts", "", owner)

	require.NoError(t, NewContentHandler(svc).MyPosts(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody(t, rec)
	assert.Len(t, resp["contents"], 2)
}

func TestContentHandler_ByType(t *testing.T) {
	svc := &stubContentService{
		listByTypeFn: func(_ context.Context, ct domain.ContentType) ([]*domain.Content, error) {
			assert.Equal(t, domain.ContentTwitter, ct)
			return []*domain.Content{}, nil
		},
	}
	c, rec := newJSONContext(http.MethodGet, "/content/type/twitter", "")
	c.SetParamNames("type")
	c.SetParamValues("twitter")

	require.NoError(t, NewContentHandler(svc).ByType(c))
	assert.JSONEq(t, `{"contents":[]}`, rec.Body.String())
}

func TestContentHandler_ByType_UnknownType(t *testing.T) {
	svc := &stubContentService{
		listByTypeFn: func(context.Context, domain.ContentType) ([]*domain.Content, error) {
			t.Fatal("should not be called")
			return nil, nil
		},
	}
	c, rec := newJSONContext(http.MethodGet, "/content/type/podcast", "")
	c.SetParamNames("type")
	c.SetParamValues("podcast")

	require.NoError(t, NewContentHandler(svc).ByType(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"contents":[]}`, rec.Body.String())
}

func TestContentHandler_ByType_MatchesExactly(t *testing.T) {
	svc := &stubContentService{
		listByTypeFn: func(context.Context, domain.ContentType) ([]*domain.Content, error) {
			t.Fatal("should not be called")
			return nil, nil
		},
	}
	for _, segment := range []string{"YouTube", "TWITTER", " document"} {
		c, rec := newJSONContext(http.MethodGet, "/content/type/x", "")
		c.SetParamNames("type")
		c.SetParamValues(segment)

		require.NoError(t, NewContentHandler(svc).ByType(c))
		assert.Equal(t, http.StatusOK, rec.Code, segment)
		assert.JSONEq(t, `{"contents":[]}`, rec.Body.String(), segment)
	}
}
