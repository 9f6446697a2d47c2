package timezone

import (
	"time"

	"todos/config"

	"github.com/rs/zerolog/log"
)

var (
	appLocation *time.Location
)

func init() {
	if err := Load(config.Get().App.Timezone); err != nil {
		log.Error().
			Err(err).
			Msg("Failed to load timezone, falling back to UTC. Please use standard timezone names like 'Asia/Jakarta', 'UTC', 'America/New_York'")
	}
}

// Load sets the application timezone. An empty name selects UTC; an unknown
// name also selects UTC and returns the lookup error.
func Load(name string) error {
	if name == "" {
		log.Warn().Msg("No timezone configured, using UTC as default")

		appLocation = time.UTC

		return nil
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		appLocation = time.UTC

		return err //nolint:wrapcheck
	}

	appLocation = loc
	log.Debug().Str("timezone", loc.String()).Msg("Application timezone initialized")

	return nil
}

// Now returns the current time in the application timezone
func Now() time.Time {
	return time.Now().In(GetLocation())
}

// ToAppTime converts a time to the application timezone
func ToAppTime(t time.Time) time.Time {
	return t.In(GetLocation())
}

// GetLocation returns the current application timezone location
func GetLocation() *time.Location {
	if appLocation == nil {
		return time.UTC
	}

	return appLocation
}

// Format formats a time in the application timezone
func Format(t time.Time, layout string) string {
	return ToAppTime(t).Format(layout)
}
