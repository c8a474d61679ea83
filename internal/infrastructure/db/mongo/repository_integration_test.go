//go:build integration

package mongo

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/secondbrain/bookmarks/internal/core/domain"
)

// startMongo runs a throwaway mongod and returns a database with indexes applied.
func startMongo(t *testing.T) *mongo.Database {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "mongo:7",
			ExposedPorts: []string{"27017/tcp"},
			WaitingFor:   wait.ForListeningPort("27017/tcp"),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "27017")
	require.NoError(t, err)

	client, db, err := Connect(ctx, Config{
		URI:      fmt.Sprintf("mongodb://%s:%s", host, port.Port()),
		Database: "bookmarks_test",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(ctx) })

	require.NoError(t, EnsureIndexes(ctx, NewUserRepository(db), NewContentRepository(db)))
	return db
}

func TestUserRepository_Integration(t *testing.T) {
	db := startMongo(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, &domain.User{Name: "alice", Email: " Alice@Example.com ", PasswordHash: "hash"})
	require.NoError(t, err)
	assert.False(t, created.ID.IsZero())
	assert.Equal(t, "alice@example.com", created.Email)

	byEmail, err := repo.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)
	assert.Equal(t, "hash", byEmail.PasswordHash)

	byID, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", byID.Name)

	_, err = repo.Create(ctx, &domain.User{Name: "other", Email: "ALICE@example.com", PasswordHash: "x"})
	assert.ErrorIs(t, err, domain.ErrUserExists)

	_, err = repo.FindByEmail(ctx, "ghost@example.com")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestContentRepository_Integration(t *testing.T) {
	db := startMongo(t)
	repo := NewContentRepository(db)
	ctx := context.Background()

	alice, bob := primitive.NewObjectID(), primitive.NewObjectID()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	insert := func(owner primitive.ObjectID, title string, typ domain.ContentType, offset time.Duration) *domain.Content {
		c, err := repo.Create(ctx, &domain.Content{
			Title: title, Link: "https://example.com/" + title, Type: typ, OwnerID: owner,
			CreatedAt: base.Add(offset), UpdatedAt: base.Add(offset),
		})
		require.NoError(t, err)
		return c
	}

	first := insert(alice, "first", domain.ContentYouTube, 0)
	insert(alice, "second", domain.ContentDocument, time.Minute)
	insert(bob, "bobs", domain.ContentYouTube, 2*time.Minute)

	mine, err := repo.ListByOwner(ctx, alice)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "second", mine[0].Title)
	assert.Equal(t, "first", mine[1].Title)

	videos, err := repo.ListByType(ctx, domain.ContentYouTube)
	require.NoError(t, err)
	require.Len(t, videos, 2)
	assert.Equal(t, "bobs", videos[0].Title)

	empty, err := repo.ListByOwner(ctx, primitive.NewObjectID())
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	// An update carrying the wrong owner must not match.
	hijack := *first
	hijack.OwnerID = bob
	hijack.Title = "hijacked"
	assert.ErrorIs(t, repo.Update(ctx, &hijack), domain.ErrContentNotFound)

	edited := *first
	edited.Title = "renamed"
	edited.Type = domain.ContentOther
	edited.UpdatedAt = base.Add(time.Hour)
	require.NoError(t, repo.Update(ctx, &edited))

	got, err := repo.FindByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.Title)
	assert.Equal(t, domain.ContentOther, got.Type)
	assert.True(t, got.UpdatedAt.Equal(base.Add(time.Hour)))
	assert.True(t, got.CreatedAt.Equal(base))

	require.NoError(t, repo.Delete(ctx, first.ID))
	_, err = repo.FindByID(ctx, first.ID)
	assert.True(t, errors.Is(err, domain.ErrContentNotFound))
	assert.ErrorIs(t, repo.Delete(ctx, first.ID), domain.ErrContentNotFound)
}
