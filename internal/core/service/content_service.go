package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/secondbrain/bookmarks/internal/api/metrics"
	"github.com/secondbrain/bookmarks/internal/core/domain"
	"github.com/secondbrain/bookmarks/internal/core/ports"
)

type ContentService struct {
	contents ports.ContentRepository
	users    ports.UserRepository
	idem     ports.IdempotencyStore
	logger   zerolog.Logger
	now      func() time.Time
}

func NewContentService(
	contents ports.ContentRepository,
	users ports.UserRepository,
	idem ports.IdempotencyStore,
	logger zerolog.Logger,
) *ContentService {
	return &ContentService{
		contents: contents,
		users:    users,
		idem:     idem,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Create saves a new link for ownerID. A request carrying an idempotency key
// first reserves it; a repeat of a finished request gets the original content
// back and a repeat of an unfinished one gets domain.ErrCreateInProgress.
func (s *ContentService) Create(ctx context.Context, ownerID primitive.ObjectID, input ports.CreateContentInput) (*domain.Content, error) {
	if _, err := s.users.FindByID(ctx, ownerID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("create content: %w", err)
	}

	key := input.IdempotencyKey
	if key != "" {
		existing, reserved, err := s.idem.Reserve(ctx, ownerID, key)
		switch {
		case err != nil:
			s.logger.Warn().Err(err).Str("idempotency_key", key).Msg("idempotency reserve failed, creating anyway")
			key = ""
		case !reserved:
			if existing.IsZero() {
				return nil, domain.ErrCreateInProgress
			}
			if c := s.replay(ctx, ownerID, key, existing); c != nil {
				return c, nil
			}
		}
	}

	now := s.now()
	created, err := s.contents.Create(ctx, &domain.Content{
		Title:     input.Title,
		Link:      input.Link,
		Type:      input.Type,
		OwnerID:   ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", ownerID.Hex()).Msg("failed to create content")
		if key != "" {
			if err := s.idem.Release(ctx, ownerID, key); err != nil {
				s.logger.Warn().Err(err).Str("idempotency_key", key).Msg("failed to release idempotency key")
			}
		}
		return nil, fmt.Errorf("create content: %w", err)
	}

	if key != "" {
		if err := s.idem.Complete(ctx, ownerID, key, created.ID); err != nil {
			s.logger.Warn().Err(err).Str("idempotency_key", key).Msg("failed to record idempotency key")
		}
	}

	metrics.ContentOperationsTotal.WithLabelValues("create", string(created.Type)).Inc()
	s.logger.Info().Str("content_id", created.ID.Hex()).Str("user_id", ownerID.Hex()).Msg("content created")

	return created, nil
}

// replay loads the content recorded under key. It returns nil when that
// content was deleted since, in which case the caller creates it again and
// the key is pointed at the new record.
func (s *ContentService) replay(ctx context.Context, ownerID primitive.ObjectID, key string, id primitive.ObjectID) *domain.Content {
	existing, err := s.contents.FindByID(ctx, id)
	if err != nil || !existing.OwnedBy(ownerID) {
		s.logger.Warn().Err(err).Str("idempotency_key", key).Str("content_id", id.Hex()).Msg("recorded content gone, creating again")
		return nil
	}

	metrics.IdempotentReplaysTotal.Inc()
	s.logger.Info().Str("idempotency_key", key).Str("content_id", id.Hex()).Msg("idempotent replay")
	return existing
}

// Edit overwrites title, link and type of content owned by ownerID.
func (s *ContentService) Edit(ctx context.Context, ownerID, contentID primitive.ObjectID, input ports.ContentInput) (*domain.Content, error) {
	content, err := s.owned(ctx, "edit", ownerID, contentID)
	if err != nil {
		return nil, err
	}

	content.Title = input.Title
	content.Link = input.Link
	content.Type = input.Type
	content.UpdatedAt = s.now()

	if err := s.contents.Update(ctx, content); err != nil {
		if errors.Is(err, domain.ErrContentNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("edit content: %w", err)
	}

	metrics.ContentOperationsTotal.WithLabelValues("edit", string(content.Type)).Inc()
	s.logger.Info().Str("content_id", contentID.Hex()).Str("user_id", ownerID.Hex()).Msg("content edited")

	return content, nil
}

// Remove deletes content owned by ownerID.
func (s *ContentService) Remove(ctx context.Context, ownerID, contentID primitive.ObjectID) error {
	if _, err := s.owned(ctx, "delete", ownerID, contentID); err != nil {
		return err
	}

	if err := s.contents.Delete(ctx, contentID); err != nil {
		if errors.Is(err, domain.ErrContentNotFound) {
			return err
		}
		return fmt.Errorf("delete content: %w", err)
	}

	metrics.ContentOperationsTotal.WithLabelValues("delete", "").Inc()
	s.logger.Info().Str("content_id", contentID.Hex()).Str("user_id", ownerID.Hex()).Msg("content deleted")

	return nil
}

func (s *ContentService) owned(ctx context.Context, op string, ownerID, contentID primitive.ObjectID) (*domain.Content, error) {
	content, err := s.contents.FindByID(ctx, contentID)
	if err != nil {
		if errors.Is(err, domain.ErrContentNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%s content: %w", op, err)
	}

	if !content.OwnedBy(ownerID) {
		metrics.ContentOwnershipDenialsTotal.WithLabelValues(op).Inc()
		s.logger.Warn().
			Str("content_id", contentID.Hex()).
			Str("user_id", ownerID.Hex()).
			Str("operation", op).
			Msg("ownership check failed")
		return nil, &domain.OwnershipError{Op: op}
	}
	return content, nil
}

func (s *ContentService) ListByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]*domain.Content, error) {
	items, err := s.contents.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list content by owner: %w", err)
	}
	metrics.ListResultSize.WithLabelValues("owner").Observe(float64(len(items)))
	return items, nil
}

// ListByType is the public browse view: every owner's content of type t.
func (s *ContentService) ListByType(ctx context.Context, t domain.ContentType) ([]*domain.Content, error) {
	items, err := s.contents.ListByType(ctx, t)
	if err != nil {
		return nil, fmt.Errorf("list content by type: %w", err)
	}
	metrics.ListResultSize.WithLabelValues("type").Observe(float64(len(items)))
	return items, nil
}
