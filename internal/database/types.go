package database

import "time"

// ProfileRecord represents a row in the profiles table. Each profile is an
// isolated namespace for status assignments; keys tagged under one profile
// are invisible to every other.
type ProfileRecord struct {
	ID        int64
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// StatusRecord mirrors the game_status table: one live tag per
// (profile, game key) pair, with the time of the last write.
type StatusRecord struct {
	ProfileID int64
	GameKey   string
	Tag       string
	UpdatedAt time.Time
}

// TagCount aggregates how many keys carry each tag within a profile.
type TagCount struct {
	Tag   string
	Count int64
}
