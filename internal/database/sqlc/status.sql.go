package sqldb

import "context"

const upsertGameStatus = `
INSERT INTO game_status (profile_id, game_key, tag)
VALUES (?, ?, ?)
ON CONFLICT (profile_id, game_key)
DO UPDATE SET tag = excluded.tag, updated_at = CURRENT_TIMESTAMP
`

type UpsertGameStatusParams struct {
	ProfileID int64
	GameKey   string
	Tag       string
}

func (q *Queries) UpsertGameStatus(ctx context.Context, arg UpsertGameStatusParams) error {
	_, err := q.db.ExecContext(ctx, upsertGameStatus, arg.ProfileID, arg.GameKey, arg.Tag)
	return err
}

const findGameStatus = `
SELECT profile_id, game_key, tag, updated_at FROM game_status
WHERE profile_id = ? AND game_key = ?
`

type FindGameStatusParams struct {
	ProfileID int64
	GameKey   string
}

func (q *Queries) FindGameStatus(ctx context.Context, arg FindGameStatusParams) (GameStatus, error) {
	row := q.db.QueryRowContext(ctx, findGameStatus, arg.ProfileID, arg.GameKey)
	var s GameStatus
	err := row.Scan(&s.ProfileID, &s.GameKey, &s.Tag, &s.UpdatedAt)
	return s, err
}

const listGameStatusByProfile = `
SELECT profile_id, game_key, tag, updated_at FROM game_status
WHERE profile_id = ?
ORDER BY game_key
`

func (q *Queries) ListGameStatusByProfile(ctx context.Context, profileID int64) ([]GameStatus, error) {
	rows, err := q.db.QueryContext(ctx, listGameStatusByProfile, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []GameStatus
	for rows.Next() {
		var s GameStatus
		if err := rows.Scan(&s.ProfileID, &s.GameKey, &s.Tag, &s.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listGameStatusByTag = `
SELECT profile_id, game_key, tag, updated_at FROM game_status
WHERE profile_id = ? AND tag = ?
ORDER BY game_key
`

type ListGameStatusByTagParams struct {
	ProfileID int64
	Tag       string
}

func (q *Queries) ListGameStatusByTag(ctx context.Context, arg ListGameStatusByTagParams) ([]GameStatus, error) {
	rows, err := q.db.QueryContext(ctx, listGameStatusByTag, arg.ProfileID, arg.Tag)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []GameStatus
	for rows.Next() {
		var s GameStatus
		if err := rows.Scan(&s.ProfileID, &s.GameKey, &s.Tag, &s.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const countGameStatusByTag = `
SELECT tag, COUNT(*) AS count FROM game_status
WHERE profile_id = ?
GROUP BY tag
ORDER BY tag
`

type CountGameStatusByTagRow struct {
	Tag   string
	Count int64
}

func (q *Queries) CountGameStatusByTag(ctx context.Context, profileID int64) ([]CountGameStatusByTagRow, error) {
	rows, err := q.db.QueryContext(ctx, countGameStatusByTag, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []CountGameStatusByTagRow
	for rows.Next() {
		var r CountGameStatusByTagRow
		if err := rows.Scan(&r.Tag, &r.Count); err != nil {
			return nil, err
		}
		items = append(items, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const deleteGameStatusByTag = `
DELETE FROM game_status WHERE profile_id = ? AND tag = ?
`

type DeleteGameStatusByTagParams struct {
	ProfileID int64
	Tag       string
}

func (q *Queries) DeleteGameStatusByTag(ctx context.Context, arg DeleteGameStatusByTagParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteGameStatusByTag, arg.ProfileID, arg.Tag)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const deleteGameStatus = `
DELETE FROM game_status WHERE profile_id = ? AND game_key = ?
`

type DeleteGameStatusParams struct {
	ProfileID int64
	GameKey   string
}

func (q *Queries) DeleteGameStatus(ctx context.Context, arg DeleteGameStatusParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteGameStatus, arg.ProfileID, arg.GameKey)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
