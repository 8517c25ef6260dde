package services

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"tempora-backend/internal/models"
	"tempora-backend/internal/repository"
)

const maxNicknameLength = 50

// ProfileService manages the single nickname record of this single-user
// system. Get returns nil when no profile has been saved yet.
type ProfileService struct {
	profiles ProfileStore
}

func NewProfileService(profiles ProfileStore) *ProfileService {
	return &ProfileService{profiles: profiles}
}

func (s *ProfileService) Get(ctx context.Context) (*models.UserProfile, error) {
	profile, err := s.profiles.Get(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	return profile, err
}

func (s *ProfileService) Save(ctx context.Context, req models.UserProfileRequest) (*models.UserProfile, error) {
	nickname := strings.TrimSpace(req.Nickname)
	if nickname == "" {
		return nil, &ValidationError{Message: "nickname cannot be blank"}
	}
	if utf8.RuneCountInString(nickname) > maxNicknameLength {
		return nil, &ValidationError{Message: "nickname must be 50 characters or fewer"}
	}
	return s.profiles.Save(ctx, nickname)
}
