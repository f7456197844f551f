package component

import (
	"fmt"
	"time"

	"github.com/gridlink/microgrid-client/metrics"
)

// StateCode describes the operational state of a component at sampling
// time. Values match the microgrid API protocol numbering.
type StateCode int

const (
	StateUnspecified   StateCode = 0
	StateUnknown       StateCode = 1
	StateUnavailable   StateCode = 2
	StateSwitchingOff  StateCode = 3
	StateOff           StateCode = 4
	StateSwitchingOn   StateCode = 5
	StateStandby       StateCode = 6
	StateReady         StateCode = 7
	StateCharging      StateCode = 8
	StateDischarging   StateCode = 9
	StateError         StateCode = 10
	StateRelayOpen     StateCode = 30
	StateRelayClosed   StateCode = 31
	StatePrechargeOpen StateCode = 40
)

// ErrorCode describes a warning or error condition reported alongside a
// component state. Values match the microgrid API protocol numbering.
type ErrorCode int

const (
	ErrorUnspecified          ErrorCode = 0
	ErrorUnknown              ErrorCode = 1
	ErrorSwitchOnFault        ErrorCode = 2
	ErrorUndervoltage         ErrorCode = 3
	ErrorOvervoltage          ErrorCode = 4
	ErrorOvercurrent          ErrorCode = 5
	ErrorOvertemperature      ErrorCode = 8
	ErrorFuse                 ErrorCode = 11
	ErrorPrecharge            ErrorCode = 12
	ErrorShortCircuit         ErrorCode = 17
	ErrorConfig               ErrorCode = 18
	ErrorHardwareInaccessible ErrorCode = 20
	ErrorInternal             ErrorCode = 21
	ErrorBatteryImbalance     ErrorCode = 50
	ErrorBatteryRelay         ErrorCode = 54
)

// StateSample is a snapshot of a component's state codes and any warning or
// error conditions active at that moment.
type StateSample struct {
	SampledAt time.Time
	States    []StateCode
	Warnings  []ErrorCode
	Errors    []ErrorCode
}

// Healthy reports whether the sample carries no error conditions.
func (s StateSample) Healthy() bool { return len(s.Errors) == 0 }

// DataSamples is one item of a component data stream: every metric and
// state sample the server batched for one component.
type DataSamples struct {
	ComponentID ID
	Metrics     []metrics.Sample
	States      []StateSample
}

func (d DataSamples) String() string {
	return fmt.Sprintf("%s: %d metric samples, %d state samples",
		d.ComponentID, len(d.Metrics), len(d.States))
}
