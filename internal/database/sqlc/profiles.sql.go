package sqldb

import (
	"context"
	"database/sql"
)

const findProfileByID = `
SELECT id, name, created_at, updated_at FROM profiles WHERE id = ?
`

func (q *Queries) FindProfileByID(ctx context.Context, id int64) (Profile, error) {
	row := q.db.QueryRowContext(ctx, findProfileByID, id)
	var p Profile
	err := row.Scan(&p.ID, &p.Name, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

const findProfileByName = `
SELECT id, name, created_at, updated_at FROM profiles WHERE name = ?
`

func (q *Queries) FindProfileByName(ctx context.Context, name string) (Profile, error) {
	row := q.db.QueryRowContext(ctx, findProfileByName, name)
	var p Profile
	err := row.Scan(&p.ID, &p.Name, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

const insertProfile = `
INSERT INTO profiles (name) VALUES (?)
`

func (q *Queries) InsertProfile(ctx context.Context, name string) (sql.Result, error) {
	return q.db.ExecContext(ctx, insertProfile, name)
}

const touchProfile = `
UPDATE profiles SET updated_at = CURRENT_TIMESTAMP WHERE id = ?
`

func (q *Queries) TouchProfile(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, touchProfile, id)
	return err
}

const listProfiles = `
SELECT id, name, created_at, updated_at FROM profiles ORDER BY name
`

func (q *Queries) ListProfiles(ctx context.Context) ([]Profile, error) {
	rows, err := q.db.QueryContext(ctx, listProfiles)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Profile
	for rows.Next() {
		var p Profile
		if err := rows.Scan(&p.ID, &p.Name, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const deleteProfileByID = `
DELETE FROM profiles WHERE id = ?
`

func (q *Queries) DeleteProfileByID(ctx context.Context, id int64) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteProfileByID, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
