package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/alkmaar-rp/supportbot/internal/domain"
	"github.com/alkmaar-rp/supportbot/internal/events"
	"github.com/alkmaar-rp/supportbot/internal/platform"
	"github.com/alkmaar-rp/supportbot/internal/repository"
	apperrors "github.com/alkmaar-rp/supportbot/pkg/util"
)

// ReviewService runs the two-step review flow after a ticket closes. The
// stars choice is carried between the button press and the feedback modal
// as a signed handle, so no per-user state survives on the server between
// the two interactions.
type ReviewService struct {
	reviews          repository.ReviewRepository
	platform         platform.Client
	dispatcher       events.Dispatcher
	logger           *zap.Logger
	secret           []byte
	ttl              time.Duration
	reviewsChannelID string
}

// ReviewHandle is the payload bound into a signed handle.
type ReviewHandle struct {
	UserID string
	Stars  int
}

type reviewClaims struct {
	UserID string `json:"uid"`
	Stars  int    `json:"stars"`
	jwt.RegisteredClaims
}

// NewReviewService constructs the service. The repository may be nil when
// Postgres is not configured; submissions then only publish to the channel.
func NewReviewService(reviews repository.ReviewRepository, client platform.Client, dispatcher events.Dispatcher, secret string, ttl time.Duration, reviewsChannelID string, logger *zap.Logger) *ReviewService {
	return &ReviewService{
		reviews:          reviews,
		platform:         client,
		dispatcher:       dispatcher,
		logger:           logger,
		secret:           []byte(secret),
		ttl:              ttl,
		reviewsChannelID: reviewsChannelID,
	}
}

// IssueHandle signs a short-lived token binding the user to a star count.
func (s *ReviewService) IssueHandle(userID string, stars int) (string, error) {
	if stars < 1 || stars > 5 {
		return "", apperrors.NewValidationError("stars must be 1-5", map[string]any{"stars": stars})
	}
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, reviewClaims{
		UserID: userID,
		Stars:  stars,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	})
	return token.SignedString(s.secret)
}

// ParseHandle validates a handle and returns its payload. Expired or
// tampered handles fail with a validation error.
func (s *ReviewService) ParseHandle(handle string) (ReviewHandle, error) {
	claims := &reviewClaims{}
	token, err := jwt.ParseWithClaims(handle, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return ReviewHandle{}, apperrors.NewValidationError("review handle is invalid or expired", nil)
	}
	return ReviewHandle{UserID: claims.UserID, Stars: claims.Stars}, nil
}

// Submit finalizes a review: persist it when a repository is wired, post
// the public embed and emit the audit event.
func (s *ReviewService) Submit(ctx context.Context, handle ReviewHandle, authorTag, feedback string) error {
	review := &domain.Review{
		ID:        uuid.NewString(),
		Reviewer:  authorTag,
		Stars:     handle.Stars,
		Feedback:  feedback,
		CreatedAt: time.Now(),
	}
	if s.reviews != nil {
		if err := s.reviews.Create(ctx, review); err != nil {
			s.logger.Warn("failed to persist review", zap.String("user_id", handle.UserID), zap.Error(err))
		}
	}

	if s.reviewsChannelID != "" {
		stars := ""
		for i := 0; i < handle.Stars; i++ {
			stars += "⭐"
		}
		_, err := s.platform.Send(ctx, s.reviewsChannelID, platform.Outgoing{
			Embeds: []platform.Embed{{
				Title: "🌟 Nieuwe Review",
				Fields: []platform.EmbedField{
					{Name: "Beoordeling", Value: stars, Inline: true},
					{Name: "Door", Value: fmt.Sprintf("<@%s>", handle.UserID), Inline: true},
					{Name: "Feedback", Value: defaultString(feedback, "Geen feedback opgegeven.")},
				},
				Color:     "Gold",
				Footer:    "Alkmaar Roleplay",
				Timestamp: time.Now(),
			}},
		})
		if err != nil {
			s.logger.Warn("failed to post review embed", zap.Error(err))
		}
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventReviewSubmitted,
			ActorID:   handle.UserID,
			ActorTag:  authorTag,
			Timestamp: time.Now(),
			Payload:   events.ReviewSubmittedPayload{Stars: handle.Stars, Feedback: feedback},
		})
	}
	return nil
}
