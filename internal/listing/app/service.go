package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dwikikusuma/phonestore/internal/listing/domain"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("listing not found")
)

const maxImages = 6

type SubmitInput struct {
	SellerName  string
	SellerPhone string
	Model       string
	Condition   string
	AskingPrice int64
	Description string
	Images      []string
}

type Service struct {
	repo     ListingRepo
	notifier Notifier
	log      *slog.Logger
	now      func() time.Time
}

func NewService(repo ListingRepo, notifier Notifier, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		repo:     repo,
		notifier: notifier,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Submit stores a pending listing. Admin notification is best-effort.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (domain.Listing, error) {
	l := domain.Listing{
		SellerName:  strings.TrimSpace(in.SellerName),
		SellerPhone: strings.TrimSpace(in.SellerPhone),
		Model:       strings.TrimSpace(in.Model),
		Condition:   strings.TrimSpace(in.Condition),
		AskingPrice: in.AskingPrice,
		Description: strings.TrimSpace(in.Description),
		Images:      in.Images,
		Status:      domain.StatusPending,
		CreatedAt:   s.now(),
	}

	if l.Model == "" || l.SellerName == "" || l.SellerPhone == "" {
		return domain.Listing{}, fmt.Errorf("%w: model, seller name and phone are required", ErrInvalidInput)
	}
	if l.AskingPrice < 0 {
		return domain.Listing{}, fmt.Errorf("%w: asking price cannot be negative", ErrInvalidInput)
	}
	if len(l.Images) > maxImages {
		return domain.Listing{}, fmt.Errorf("%w: at most %d images", ErrInvalidInput, maxImages)
	}

	created, err := s.repo.Create(ctx, l)
	if err != nil {
		return domain.Listing{}, err
	}

	if s.notifier != nil {
		if err := s.notifier.ListingSubmitted(ctx, created); err != nil {
			s.log.WarnContext(ctx, "listing notification failed",
				slog.String("listing_id", created.ID), slog.Any("err", err))
		}
	}
	return created, nil
}

func (s *Service) ListByStatus(ctx context.Context, status string, limit int) ([]domain.Listing, error) {
	st, ok := domain.ParseStatus(strings.ToUpper(strings.TrimSpace(status)))
	if !ok {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
	}
	return s.repo.ListByStatus(ctx, st, clampLimit(limit))
}

func (s *Service) ListApproved(ctx context.Context, limit int) ([]domain.Listing, error) {
	return s.repo.ListByStatus(ctx, domain.StatusApproved, clampLimit(limit))
}

func (s *Service) Approve(ctx context.Context, id, reviewer, note string) (domain.Listing, error) {
	return s.review(ctx, id, domain.StatusApproved, reviewer, note)
}

func (s *Service) Reject(ctx context.Context, id, reviewer, note string) (domain.Listing, error) {
	return s.review(ctx, id, domain.StatusRejected, reviewer, note)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) review(ctx context.Context, id string, to domain.Status, reviewer, note string) (domain.Listing, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Listing{}, ErrInvalidInput
	}

	l, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Listing{}, err
	}
	if err := l.Review(to, reviewer, strings.TrimSpace(note), s.now()); err != nil {
		return domain.Listing{}, err
	}

	updated, err := s.repo.UpdateReview(ctx, l)
	if err != nil {
		return domain.Listing{}, err
	}
	s.log.InfoContext(ctx, "listing reviewed",
		slog.String("listing_id", id), slog.String("status", string(to)), slog.String("reviewer", reviewer))
	return updated, nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return 20
	}
	if limit > 100 {
		return 100
	}
	return limit
}
