// Package config resolves filesystem paths and environment settings for marquee.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
)

// DefaultTimezone is the reference zone for the day seed. "Game of the Day"
// must roll over at a fixed local midnight, not wherever the process runs.
const DefaultTimezone = "America/New_York"

// GetDataDir resolves the base directory for all marquee state. MARQUEE_DIR
// wins when set, then the XDG data home, then the user's home directory.
func GetDataDir() string {
	if explicit := os.Getenv("MARQUEE_DIR"); explicit != "" {
		return explicit
	}

	xdg.Reload()

	dataHome := xdg.DataHome
	if dataHome == "" {
		home := xdg.Home
		if home == "" {
			var err error
			home, err = os.UserHomeDir()
			if err != nil {
				return filepath.Join(os.TempDir(), "marquee")
			}
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	return filepath.Join(dataHome, "marquee")
}

// GetDBPath returns the absolute path to the status SQLite database.
func GetDBPath() string {
	return filepath.Join(GetDataDir(), "status.db")
}

// GetDatasetPath returns the path of the game dataset CSV. MARQUEE_DATASET
// overrides the default location inside the data directory.
func GetDatasetPath() string {
	if explicit := os.Getenv("MARQUEE_DATASET"); explicit != "" {
		return explicit
	}
	return filepath.Join(GetDataDir(), "games.csv")
}

// DefaultProfile returns the namespace used when no --profile flag is given:
// MARQUEE_PROFILE if set, otherwise "default".
func DefaultProfile() string {
	if p := strings.TrimSpace(os.Getenv("MARQUEE_PROFILE")); p != "" {
		return p
	}
	return "default"
}

// Timezone resolves the IANA zone used to derive the day seed. MARQUEE_TZ
// overrides the default; an unloadable zone falls back to UTC rather than
// failing, so `today` keeps working on systems without tzdata.
func Timezone() *time.Location {
	name := os.Getenv("MARQUEE_TZ")
	if name == "" {
		name = DefaultTimezone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

// MetadataEndpoints returns transport variants for the metadata service in
// preference order, parsed from MARQUEE_METADATA_URLS (comma separated).
// Empty when unset; callers fall back to the enrichment client defaults.
func MetadataEndpoints() []string {
	raw := os.Getenv("MARQUEE_METADATA_URLS")
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var endpoints []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			endpoints = append(endpoints, part)
		}
	}
	return endpoints
}

// ArtworkBaseURL returns the artwork host override from MARQUEE_ART_BASE_URL,
// empty when unset.
func ArtworkBaseURL() string {
	return strings.TrimSpace(os.Getenv("MARQUEE_ART_BASE_URL"))
}
