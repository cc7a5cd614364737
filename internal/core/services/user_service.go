package services

import (
	"context"
	"fmt"
	"time"

	"github.com/comitanigiacomo/kanso-fit/internal/core/domain"
)

type UserService struct {
	repo domain.UserRepository
}

func NewUserService(repo domain.UserRepository) *UserService {
	return &UserService{repo: repo}
}

// UserLocation returns the zone that decides which calendar day is "today"
// for the user. Unknown or empty zones resolve to UTC.
func (s *UserService) UserLocation(ctx context.Context, userID string) (*time.Location, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("user service: failed to load user: %w", err)
	}
	return user.Location(), nil
}
