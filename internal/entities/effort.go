package entities

import (
	"fmt"
	"time"
)

// TimeLayout is the wire format for effort timestamps.
const TimeLayout = "2006-01-02T15:04:05"

// unixEpoch is the lower bound for effort start times.
var unixEpoch = time.Unix(0, 0)

// Effort is a completed block of volunteer work: when it started, how long it
// lasted and where it happened. It is a value object equal by
// (start_time, duration, location), with the identifier excluded.
type Effort struct {
	id        int64
	startTime time.Time
	duration  time.Duration
	location  *Location
}

var effortSchema = Schema{
	{Name: "start_time", Validate: TimeAfterRule(unixEpoch)},
	{Name: "duration", Validate: PositiveDurationRule()},
	{Name: "location", Validate: LocationRule()},
}

// NewEffort constructs an Effort from raw input fields. The location may be
// given either as a "location" field holding a *Location, or as raw
// "latitude"/"longitude" coordinates.
func NewEffort(input Fields) (*Effort, error) {
	lat, hasLat := input["latitude"]
	lon, hasLon := input["longitude"]
	if hasLat && hasLon {
		loc, err := NewLocation(Fields{"latitude": lat, "longitude": lon})
		if err != nil {
			return nil, err
		}
		input = Fields{
			"start_time": input["start_time"],
			"duration":   input["duration"],
			"location":   loc,
		}
	}

	vals, err := effortSchema.Apply("Effort", input)
	if err != nil {
		return nil, err
	}
	return &Effort{
		startTime: vals["start_time"].(time.Time),
		duration:  vals["duration"].(time.Duration),
		location:  vals["location"].(*Location),
	}, nil
}

// StartTime returns when the effort began.
func (e *Effort) StartTime() time.Time { return e.startTime }

// Duration returns how long the effort lasted.
func (e *Effort) Duration() time.Duration { return e.duration }

// Location returns where the effort happened.
func (e *Effort) Location() *Location { return e.location }

// ID returns the persisted identifier, zero if not yet saved.
func (e *Effort) ID() int64 { return e.id }

// SetID assigns the persisted identifier. A second assignment fails.
func (e *Effort) SetID(id int64) error {
	if e.id != 0 {
		return ErrIDAssigned
	}
	e.id = id
	return nil
}

// Overlaps reports whether other overlaps this effort in time. Efforts cover
// the half-open interval [start, start+duration); identical start times
// always overlap regardless of duration. The predicate is one-directional:
// it only looks at other's endpoints falling inside this interval, so an
// other that starts earlier and ends later is not reported.
func (e *Effort) Overlaps(other *Effort) bool {
	if e.startTime.Equal(other.startTime) {
		return true
	}
	end := e.startTime.Add(e.duration)
	otherEnd := other.startTime.Add(other.duration)
	return (e.startTime.Before(other.startTime) && other.startTime.Before(end)) ||
		(e.startTime.Before(otherEnd) && otherEnd.Before(end))
}

// Equal reports value equality, ignoring identifiers.
func (e *Effort) Equal(other *Effort) bool {
	if e == nil || other == nil {
		return e == other
	}
	return e.key() == other.key()
}

// effortKey is the comparable projection used for set membership and diffs.
type effortKey struct {
	start     int64
	duration  time.Duration
	latitude  float64
	longitude float64
}

func (e *Effort) key() effortKey {
	return effortKey{
		start:     e.startTime.Unix(),
		duration:  e.duration,
		latitude:  e.location.Latitude(),
		longitude: e.location.Longitude(),
	}
}

// String renders the effort for logs.
func (e *Effort) String() string {
	return fmt.Sprintf("effort[%s +%ds @ %g,%g]",
		e.startTime.Format(TimeLayout), int64(e.duration.Seconds()),
		e.location.Latitude(), e.location.Longitude())
}
