package metrics

import "fmt"

// Metric identifies an electrical quantity reported by a component. Values
// match the microgrid API protocol numbering, so unlisted values received
// from newer servers stay representable.
type Metric int

const (
	MetricUnspecified        Metric = 0
	MetricDCVoltage          Metric = 1
	MetricDCCurrent          Metric = 2
	MetricDCPower            Metric = 3
	MetricACFrequency        Metric = 10
	MetricACVoltage          Metric = 11
	MetricACCurrent          Metric = 18
	MetricACApparentPower    Metric = 22
	MetricACActivePower      Metric = 26
	MetricACReactivePower    Metric = 30
	MetricACPowerFactor      Metric = 40
	MetricACApparentEnergy   Metric = 50
	MetricACActiveEnergy     Metric = 54
	MetricACReactiveEnergy   Metric = 66
	MetricBatteryCapacity    Metric = 101
	MetricBatterySoCPct      Metric = 102
	MetricBatteryTemperature Metric = 103
)

// String returns the protocol name of the metric.
func (m Metric) String() string {
	switch m {
	case MetricUnspecified:
		return "unspecified"
	case MetricDCVoltage:
		return "dc_voltage"
	case MetricDCCurrent:
		return "dc_current"
	case MetricDCPower:
		return "dc_power"
	case MetricACFrequency:
		return "ac_frequency"
	case MetricACVoltage:
		return "ac_voltage"
	case MetricACCurrent:
		return "ac_current"
	case MetricACApparentPower:
		return "ac_apparent_power"
	case MetricACActivePower:
		return "ac_active_power"
	case MetricACReactivePower:
		return "ac_reactive_power"
	case MetricACPowerFactor:
		return "ac_power_factor"
	case MetricACApparentEnergy:
		return "ac_apparent_energy"
	case MetricACActiveEnergy:
		return "ac_active_energy"
	case MetricACReactiveEnergy:
		return "ac_reactive_energy"
	case MetricBatteryCapacity:
		return "battery_capacity"
	case MetricBatterySoCPct:
		return "battery_soc_pct"
	case MetricBatteryTemperature:
		return "battery_temperature"
	default:
		return fmt.Sprintf("metric(%d)", int(m))
	}
}
