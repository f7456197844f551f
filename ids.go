package microgrid

import "fmt"

// MicrogridID is the unique identifier of a microgrid.
type MicrogridID uint64

// String returns the short form used in logs, e.g. "MID42".
func (id MicrogridID) String() string { return fmt.Sprintf("MID%d", uint64(id)) }

// EnterpriseID is the unique identifier of the enterprise account a
// microgrid belongs to.
type EnterpriseID uint64

// String returns the short form used in logs, e.g. "EID7".
func (id EnterpriseID) String() string { return fmt.Sprintf("EID%d", uint64(id)) }
