package database

import (
	"context"
	"database/sql"
	"fmt"

	sqldb "github.com/marquee-arcade/marquee/internal/database/sqlc"
)

type ProfileRepository struct {
	ctx *Context
}

func NewProfileRepository(dbCtx *Context) *ProfileRepository {
	return &ProfileRepository{ctx: dbCtx}
}

func (r *ProfileRepository) FindByID(ctx context.Context, id int64) (*ProfileRecord, error) {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return nil, fmt.Errorf("profile repository: missing database context")
	}

	row, err := queries.FindProfileByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	record := mapProfileRow(row)
	return &record, nil
}

func (r *ProfileRepository) FindByName(ctx context.Context, name string) (*ProfileRecord, error) {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return nil, fmt.Errorf("profile repository: missing database context")
	}

	row, err := queries.FindProfileByName(ctx, name)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	record := mapProfileRow(row)
	return &record, nil
}

// GetOrCreate returns the id of the named profile, inserting it on first
// use. An existing profile has its updated_at refreshed so stale-profile
// cleanup can tell active namespaces apart.
func (r *ProfileRepository) GetOrCreate(ctx context.Context, name string) (int64, error) {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return 0, fmt.Errorf("profile repository: missing database context")
	}

	existing, err := r.FindByName(ctx, name)
	if err != nil {
		return 0, err
	}
	if existing != nil {
		if err := queries.TouchProfile(ctx, existing.ID); err != nil {
			return 0, err
		}
		return existing.ID, nil
	}

	result, err := queries.InsertProfile(ctx, name)
	if err != nil {
		return 0, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *ProfileRepository) FindAll(ctx context.Context) ([]ProfileRecord, error) {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return nil, fmt.Errorf("profile repository: missing database context")
	}

	rows, err := queries.ListProfiles(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]ProfileRecord, 0, len(rows))
	for _, row := range rows {
		result = append(result, mapProfileRow(row))
	}
	return result, nil
}

// Delete removes a profile and, through the foreign key cascade, every
// status row stored under it.
func (r *ProfileRepository) Delete(ctx context.Context, id int64) (bool, error) {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return false, fmt.Errorf("profile repository: missing database context")
	}

	affected, err := queries.DeleteProfileByID(ctx, id)
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func mapProfileRow(row sqldb.Profile) ProfileRecord {
	return ProfileRecord{
		ID:        row.ID,
		Name:      row.Name,
		CreatedAt: optionalTime(row.CreatedAt),
		UpdatedAt: optionalTime(row.UpdatedAt),
	}
}
