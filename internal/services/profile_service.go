package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/marquee-arcade/marquee/internal/database"
)

// ErrInvalidProfile is returned when a profile name is empty or blank.
var ErrInvalidProfile = errors.New("profile name must not be empty")

// ProfileService manages the namespaces that status assignments live in.
type ProfileService struct {
	repo *database.ProfileRepository
}

func NewProfileService(ctx *database.Context) *ProfileService {
	return &ProfileService{repo: database.NewProfileRepository(ctx)}
}

// GetOrCreate resolves a profile name to its id, creating the profile on
// first use.
func (s *ProfileService) GetOrCreate(ctx context.Context, name string) (int64, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return 0, ErrInvalidProfile
	}

	id, err := s.repo.GetOrCreate(ctx, trimmed)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return id, nil
}

func (s *ProfileService) List(ctx context.Context) ([]database.ProfileRecord, error) {
	records, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return records, nil
}

// Delete removes a profile by name together with every status stored under
// it. Returns false when no such profile exists.
func (s *ProfileService) Delete(ctx context.Context, name string) (bool, error) {
	record, err := s.repo.FindByName(ctx, strings.TrimSpace(name))
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	if record == nil {
		return false, nil
	}

	deleted, err := s.repo.Delete(ctx, record.ID)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return deleted, nil
}
