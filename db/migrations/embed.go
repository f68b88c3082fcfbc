// Package migrations holds the versioned SQL that shapes the status
// database (profiles and their game_status rows).
package migrations

import "embed"

// Files is the migration source consumed at database open time.
//
//go:embed *.sql
var Files embed.FS
