package microgrid

import (
	"fmt"
	"time"
)

// Location is the geographic position of a microgrid. Latitude and
// longitude are nil when the server does not report them.
type Location struct {
	Latitude    *float64
	Longitude   *float64
	CountryCode string
}

func (l Location) String() string {
	lat, lon := "?", "?"
	if l.Latitude != nil {
		lat = fmt.Sprintf("%.4f", *l.Latitude)
	}
	if l.Longitude != nil {
		lon = fmt.Sprintf("%.4f", *l.Longitude)
	}
	if l.CountryCode == "" {
		return fmt.Sprintf("(%s, %s)", lat, lon)
	}
	return fmt.Sprintf("(%s, %s) %s", lat, lon, l.CountryCode)
}

// MicrogridStatus is the administrative status of a microgrid. Values
// match the microgrid API protocol numbering.
type MicrogridStatus int

const (
	MicrogridStatusUnspecified MicrogridStatus = 0
	MicrogridStatusActive      MicrogridStatus = 1
	MicrogridStatusInactive    MicrogridStatus = 2
)

// String returns the protocol name of the status.
func (s MicrogridStatus) String() string {
	switch s {
	case MicrogridStatusUnspecified:
		return "unspecified"
	case MicrogridStatusActive:
		return "active"
	case MicrogridStatusInactive:
		return "inactive"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// MicrogridInfo describes the microgrid as a whole, as opposed to its
// electrical components.
type MicrogridInfo struct {
	ID           MicrogridID
	EnterpriseID EnterpriseID
	Name         string

	// DeliveryArea is the code of the energy market delivery area the
	// microgrid belongs to, if known.
	DeliveryArea string

	Location  *Location
	Status    MicrogridStatus
	CreatedAt time.Time
}

func (m MicrogridInfo) String() string {
	if m.Name == "" {
		return m.ID.String()
	}
	return fmt.Sprintf("%s<%s>", m.ID, m.Name)
}
