package database

import (
	"context"
	"database/sql"
	"fmt"

	sqldb "github.com/marquee-arcade/marquee/internal/database/sqlc"
)

type StatusRepository struct {
	ctx *Context
}

func NewStatusRepository(dbCtx *Context) *StatusRepository {
	return &StatusRepository{ctx: dbCtx}
}

// Set stores a tag for a key, replacing whatever tag the key carried
// before. Last writer wins; the row keeps the time of the winning write.
func (r *StatusRepository) Set(ctx context.Context, profileID int64, gameKey, tag string) error {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return fmt.Errorf("status repository: missing database context")
	}

	return queries.UpsertGameStatus(ctx, sqldb.UpsertGameStatusParams{
		ProfileID: profileID,
		GameKey:   gameKey,
		Tag:       tag,
	})
}

func (r *StatusRepository) Find(ctx context.Context, profileID int64, gameKey string) (*StatusRecord, error) {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return nil, fmt.Errorf("status repository: missing database context")
	}

	row, err := queries.FindGameStatus(ctx, sqldb.FindGameStatusParams{
		ProfileID: profileID,
		GameKey:   gameKey,
	})
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	record := mapStatusRow(row)
	return &record, nil
}

func (r *StatusRepository) ListByProfile(ctx context.Context, profileID int64) ([]StatusRecord, error) {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return nil, fmt.Errorf("status repository: missing database context")
	}

	rows, err := queries.ListGameStatusByProfile(ctx, profileID)
	if err != nil {
		return nil, err
	}

	result := make([]StatusRecord, 0, len(rows))
	for _, row := range rows {
		result = append(result, mapStatusRow(row))
	}
	return result, nil
}

func (r *StatusRepository) ListByTag(ctx context.Context, profileID int64, tag string) ([]StatusRecord, error) {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return nil, fmt.Errorf("status repository: missing database context")
	}

	rows, err := queries.ListGameStatusByTag(ctx, sqldb.ListGameStatusByTagParams{
		ProfileID: profileID,
		Tag:       tag,
	})
	if err != nil {
		return nil, err
	}

	result := make([]StatusRecord, 0, len(rows))
	for _, row := range rows {
		result = append(result, mapStatusRow(row))
	}
	return result, nil
}

func (r *StatusRepository) CountByTag(ctx context.Context, profileID int64) ([]TagCount, error) {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return nil, fmt.Errorf("status repository: missing database context")
	}

	rows, err := queries.CountGameStatusByTag(ctx, profileID)
	if err != nil {
		return nil, err
	}

	result := make([]TagCount, 0, len(rows))
	for _, row := range rows {
		result = append(result, TagCount{Tag: row.Tag, Count: row.Count})
	}
	return result, nil
}

// Delete removes the status row for a key. Returns false when the key had
// no stored status; clearing an absent status is not an error.
func (r *StatusRepository) Delete(ctx context.Context, profileID int64, gameKey string) (bool, error) {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return false, fmt.Errorf("status repository: missing database context")
	}

	affected, err := queries.DeleteGameStatus(ctx, sqldb.DeleteGameStatusParams{
		ProfileID: profileID,
		GameKey:   gameKey,
	})
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func mapStatusRow(row sqldb.GameStatus) StatusRecord {
	return StatusRecord{
		ProfileID: row.ProfileID,
		GameKey:   row.GameKey,
		Tag:       row.Tag,
		UpdatedAt: optionalTime(row.UpdatedAt),
	}
}
