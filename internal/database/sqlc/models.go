package sqldb

import "database/sql"

// Profile mirrors a row of the profiles table.
type Profile struct {
	ID        int64
	Name      string
	CreatedAt sql.NullTime
	UpdatedAt sql.NullTime
}

// GameStatus mirrors a row of the game_status table.
type GameStatus struct {
	ProfileID int64
	GameKey   string
	Tag       string
	UpdatedAt sql.NullTime
}
