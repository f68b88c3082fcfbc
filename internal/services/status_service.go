package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/marquee-arcade/marquee/internal/database"
	sqldb "github.com/marquee-arcade/marquee/internal/database/sqlc"
	"github.com/marquee-arcade/marquee/internal/status"
)

// ErrStorageUnavailable wraps every failure to reach the status store so
// callers can tell persistence trouble apart from domain errors.
var ErrStorageUnavailable = errors.New("status storage unavailable")

// TagTotal reports how many keys carry one tag within the profile.
type TagTotal struct {
	Tag   status.Tag
	Count int64
}

// StatusService exposes the per-profile status operations. Every instance
// is bound to one profile id for its whole lifetime; namespace isolation is
// enforced by construction, not by per-call arguments.
type StatusService struct {
	ctx       *database.Context
	repo      *database.StatusRepository
	profileID int64
}

func NewStatusService(ctx *database.Context, profileID int64) *StatusService {
	return &StatusService{
		ctx:       ctx,
		repo:      database.NewStatusRepository(ctx),
		profileID: profileID,
	}
}

// ProfileID returns the profile this service writes into.
func (s *StatusService) ProfileID() int64 {
	return s.profileID
}

// Get returns the live tag for a key, or TagNone when the key has never
// been tagged or was cleared.
func (s *StatusService) Get(ctx context.Context, gameKey string) (status.Tag, error) {
	record, err := s.repo.Find(ctx, s.profileID, gameKey)
	if err != nil {
		return status.TagNone, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	if record == nil {
		return status.TagNone, nil
	}
	return status.Tag(record.Tag), nil
}

// Set assigns a tag to a key, replacing any previous tag. Setting TagNone
// deletes the stored row, so writing "absent" goes through the same path as
// writing any other tag.
func (s *StatusService) Set(ctx context.Context, gameKey string, tag status.Tag) error {
	if gameKey == "" {
		return errors.New("game key must not be empty")
	}
	if tag == status.TagNone {
		_, err := s.Clear(ctx, gameKey)
		return err
	}
	if err := status.Validate(tag); err != nil {
		return err
	}

	if err := s.repo.Set(ctx, s.profileID, gameKey, string(tag)); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return nil
}

// Clear removes the status row for a key. Clearing a key with no status is
// a no-op that reports false.
func (s *StatusService) Clear(ctx context.Context, gameKey string) (bool, error) {
	removed, err := s.repo.Delete(ctx, s.profileID, gameKey)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return removed, nil
}

// All lists every stored (key, tag) pair in the profile, ordered by key.
func (s *StatusService) All(ctx context.Context) ([]status.Entry, error) {
	records, err := s.repo.ListByProfile(ctx, s.profileID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return entriesFromRecords(records), nil
}

// ByTag lists the keys carrying one tag, ordered by key.
func (s *StatusService) ByTag(ctx context.Context, tag status.Tag) ([]status.Entry, error) {
	if err := status.Validate(tag); err != nil {
		return nil, err
	}

	records, err := s.repo.ListByTag(ctx, s.profileID, string(tag))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return entriesFromRecords(records), nil
}

// Counts aggregates stored statuses per tag.
func (s *StatusService) Counts(ctx context.Context) ([]TagTotal, error) {
	counts, err := s.repo.CountByTag(ctx, s.profileID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	totals := make([]TagTotal, 0, len(counts))
	for _, c := range counts {
		totals = append(totals, TagTotal{Tag: status.Tag(c.Tag), Count: c.Count})
	}
	return totals, nil
}

// ImportFavorites tags every given key as a favorite in one transaction.
// With replace set, favorites not named in keys are cleared first;
// otherwise the import merges into the existing set. Returns the number of
// keys written.
func (s *StatusService) ImportFavorites(ctx context.Context, keys []string, replace bool) (int, error) {
	seen := make(map[string]bool, len(keys))
	ordered := make([]string, 0, len(keys))
	for _, key := range keys {
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		ordered = append(ordered, key)
	}

	err := s.withTx(ctx, func(txCtx context.Context, q *sqldb.Queries) error {
		if replace {
			if _, err := q.DeleteGameStatusByTag(txCtx, sqldb.DeleteGameStatusByTagParams{
				ProfileID: s.profileID,
				Tag:       string(status.TagFavorite),
			}); err != nil {
				return err
			}
		}

		for _, key := range ordered {
			if err := q.UpsertGameStatus(txCtx, sqldb.UpsertGameStatusParams{
				ProfileID: s.profileID,
				GameKey:   key,
				Tag:       string(status.TagFavorite),
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return len(ordered), nil
}

func entriesFromRecords(records []database.StatusRecord) []status.Entry {
	entries := make([]status.Entry, 0, len(records))
	for _, r := range records {
		entries = append(entries, status.Entry{
			GameKey:   r.GameKey,
			Tag:       status.Tag(r.Tag),
			UpdatedAt: r.UpdatedAt,
		})
	}
	return entries
}

func (s *StatusService) withTx(ctx context.Context, fn func(context.Context, *sqldb.Queries) error) error {
	if s.ctx == nil || s.ctx.DB == nil {
		return fmt.Errorf("status service: missing database context")
	}

	tx, err := s.ctx.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	queries := sqldb.New(tx)
	if err := fn(ctx, queries); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		_ = tx.Rollback()
		return err
	}

	return nil
}
