package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/comitanigiacomo/kanso-fit/internal/core/domain"
	"github.com/comitanigiacomo/kanso-fit/internal/core/progress"
)

type CommitmentService struct {
	repo       domain.CommitmentRepository
	activities domain.ActivityRepository
}

func NewCommitmentService(repo domain.CommitmentRepository, activities domain.ActivityRepository) *CommitmentService {
	return &CommitmentService{
		repo:       repo,
		activities: activities,
	}
}

type CreateCommitmentInput struct {
	UserID        string
	Kind          string
	TargetPerWeek int
	DurationWeeks int
	StartDate     time.Time
}

func (s *CommitmentService) Create(ctx context.Context, input CreateCommitmentInput) (*domain.Commitment, error) {
	kind, err := domain.ParseActivityKind(input.Kind)
	if err != nil {
		return nil, err
	}

	c, err := domain.NewCommitment(input.UserID, kind, input.TargetPerWeek, input.DurationWeeks, input.StartDate)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("commitment service: failed to create commitment: %w", err)
	}

	return c, nil
}

func (s *CommitmentService) List(ctx context.Context, userID string) ([]*domain.Commitment, error) {
	return s.repo.ListActiveByUserID(ctx, userID)
}

func (s *CommitmentService) Deactivate(ctx context.Context, id string, userID string) error {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if c.UserID != userID {
		return domain.ErrCommitmentNotFound
	}
	if !c.Active {
		return domain.ErrCommitmentInactive
	}

	return s.repo.Deactivate(ctx, id, userID)
}

// Progress scores every active commitment of the user as of now. Records are
// fetched once per distinct kind, not once per commitment.
func (s *CommitmentService) Progress(ctx context.Context, userID string, now time.Time) ([]domain.CommitmentProgress, error) {
	commitments, err := s.repo.ListActiveByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	commitments = validCommitments(commitments)
	if len(commitments) == 0 {
		return []domain.CommitmentProgress{}, nil
	}

	earliest := make(map[domain.ActivityKind]time.Time)
	for _, c := range commitments {
		if from, ok := earliest[c.Kind]; !ok || c.StartDate.Before(from) {
			earliest[c.Kind] = c.StartDate
		}
	}

	byKind := make(map[domain.ActivityKind][]*domain.ActivityRecord, len(earliest))
	for kind, from := range earliest {
		records, err := s.activities.ListByUserAndKind(ctx, userID, kind, from, time.Time{})
		if err != nil {
			return nil, fmt.Errorf("commitment service: failed to list %s records: %w", kind, err)
		}
		byKind[kind] = records
	}

	return progress.ProgressBatch(commitments, byKind, now), nil
}

// validCommitments drops rows that would not pass construction-time checks so a
// single corrupt row cannot break the whole response.
func validCommitments(in []*domain.Commitment) []*domain.Commitment {
	out := make([]*domain.Commitment, 0, len(in))
	for _, c := range in {
		if err := c.Validate(); err != nil {
			logrus.WithError(err).WithField("commitment_id", c.ID).Warn("skipping invalid commitment")
			continue
		}
		if !c.Active {
			continue
		}
		out = append(out, c)
	}
	return out
}

