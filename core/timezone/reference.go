package timezone

import (
	"time"

	"github.com/siherrmann/duckling/model"
)

// nowFunc is the wall clock, replaced in tests
var nowFunc = time.Now

// CurrentReferenceTime returns the current instant expressed in zone.
// Unknown zones fall back to UTC.
func CurrentReferenceTime(db *Database, zone string) model.ReferenceTime {
	return ReferenceTimeFromTime(db, zone, nowFunc())
}

// ReferenceTimeFromEpoch returns the instant of epochSeconds expressed in zone.
// Epochs outside the years 1 to 9999 are clamped to that range.
// Unknown zones fall back to UTC. The instant does not depend on the zone.
func ReferenceTimeFromEpoch(db *Database, zone string, epochSeconds int64) model.ReferenceTime {
	return ReferenceTimeFromTime(db, zone, time.Unix(epochSeconds, 0))
}

// ReferenceTimeFromTime expresses t in zone
func ReferenceTimeFromTime(db *Database, zone string, t time.Time) model.ReferenceTime {
	loc, resolved := db.Resolve(zone)
	return model.NewReferenceTime(t, loc, resolved)
}
