package component

import (
	"fmt"
	"time"

	"github.com/gridlink/microgrid-client/metrics"
)

// ID is the unique identifier of a microgrid component.
type ID uint64

// String returns the short form used in logs and stream keys, e.g. "CID8".
func (id ID) String() string { return fmt.Sprintf("CID%d", uint64(id)) }

// Status is the administrative status of a component. Values match the
// microgrid API protocol numbering.
type Status int

const (
	StatusUnspecified Status = 0
	StatusActive      Status = 1
	StatusInactive    Status = 2
)

// String returns the protocol name of the status.
func (s Status) String() string {
	switch s {
	case StatusUnspecified:
		return "unspecified"
	case StatusActive:
		return "active"
	case StatusInactive:
		return "inactive"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Lifetime is the operational period of a component or connection. A zero
// Start means "since forever", a zero End means "still operational".
type Lifetime struct {
	Start time.Time
	End   time.Time
}

// Active reports whether the lifetime covers the given instant.
func (l Lifetime) Active(at time.Time) bool {
	if !l.Start.IsZero() && at.Before(l.Start) {
		return false
	}
	if !l.End.IsZero() && !at.Before(l.End) {
		return false
	}
	return true
}

// Component is one electrical component of a microgrid.
type Component struct {
	ID           ID
	Category     Category
	Name         string
	Manufacturer string
	Model        string
	SerialNumber string
	Status       Status
	Operational  Lifetime

	// Rated are the nameplate limits of the component per metric, when
	// the server reports them.
	Rated map[metrics.Metric]metrics.Bounds
}

func (c Component) String() string {
	if c.Name == "" {
		return fmt.Sprintf("%s<%s>", c.ID, c.Category)
	}
	return fmt.Sprintf("%s<%s:%s>", c.ID, c.Category, c.Name)
}

// Connection is a directed electrical connection between two components,
// pointing away from the grid connection point.
type Connection struct {
	Source      ID
	Destination ID
	Operational Lifetime
}

// Validate reports whether the connection is well formed.
func (c Connection) Validate() error {
	if c.Source == c.Destination {
		return fmt.Errorf("connection endpoints must differ, got %s twice", c.Source)
	}
	return nil
}

func (c Connection) String() string {
	return fmt.Sprintf("%s->%s", c.Source, c.Destination)
}
