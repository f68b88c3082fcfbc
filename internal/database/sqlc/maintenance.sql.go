package sqldb

import "context"

const deleteAllGameStatus = `DELETE FROM game_status`

func (q *Queries) DeleteAllGameStatus(ctx context.Context) error {
	_, err := q.db.ExecContext(ctx, deleteAllGameStatus)
	return err
}

const deleteAllProfiles = `DELETE FROM profiles`

func (q *Queries) DeleteAllProfiles(ctx context.Context) error {
	_, err := q.db.ExecContext(ctx, deleteAllProfiles)
	return err
}
