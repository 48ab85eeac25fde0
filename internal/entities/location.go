package entities

// Location is a physical location expressed as latitude/longitude. It is a
// value object: fields are fixed at construction, equality ignores the
// identifier, and the identifier may be assigned exactly once when the
// persistence layer first stores the row.
type Location struct {
	id        int64
	latitude  float64
	longitude float64
}

var locationSchema = Schema{
	{Name: "latitude", Validate: FloatRule()},
	{Name: "longitude", Validate: FloatRule()},
}

// NewLocation constructs a Location from raw input fields.
func NewLocation(input Fields) (*Location, error) {
	vals, err := locationSchema.Apply("Location", input)
	if err != nil {
		return nil, err
	}
	return &Location{
		latitude:  vals["latitude"].(float64),
		longitude: vals["longitude"].(float64),
	}, nil
}

// Latitude returns the latitude coordinate.
func (l *Location) Latitude() float64 { return l.latitude }

// Longitude returns the longitude coordinate.
func (l *Location) Longitude() float64 { return l.longitude }

// ID returns the persisted identifier, zero if not yet saved.
func (l *Location) ID() int64 { return l.id }

// SetID assigns the persisted identifier. A second assignment fails.
func (l *Location) SetID(id int64) error {
	if l.id != 0 {
		return ErrIDAssigned
	}
	l.id = id
	return nil
}

// Equal reports value equality, ignoring identifiers.
func (l *Location) Equal(other *Location) bool {
	if l == nil || other == nil {
		return l == other
	}
	return l.latitude == other.latitude && l.longitude == other.longitude
}
