package component

import "fmt"

// Category is the kind of a microgrid component. Values match the
// microgrid API protocol numbering.
type Category int

const (
	CategoryUnspecified        Category = 0
	CategoryGrid               Category = 1
	CategoryMeter              Category = 2
	CategoryInverter           Category = 3
	CategoryConverter          Category = 4
	CategoryBattery            Category = 5
	CategoryEVCharger          Category = 6
	CategoryCryptoMiner        Category = 8
	CategoryElectrolyzer       Category = 9
	CategoryCHP                Category = 10
	CategoryRelay              Category = 11
	CategoryPrecharger         Category = 12
	CategoryFuse               Category = 13
	CategoryVoltageTransformer Category = 14
	CategoryHVAC               Category = 15
)

// String returns the protocol name of the category.
func (c Category) String() string {
	switch c {
	case CategoryUnspecified:
		return "unspecified"
	case CategoryGrid:
		return "grid"
	case CategoryMeter:
		return "meter"
	case CategoryInverter:
		return "inverter"
	case CategoryConverter:
		return "converter"
	case CategoryBattery:
		return "battery"
	case CategoryEVCharger:
		return "ev_charger"
	case CategoryCryptoMiner:
		return "crypto_miner"
	case CategoryElectrolyzer:
		return "electrolyzer"
	case CategoryCHP:
		return "chp"
	case CategoryRelay:
		return "relay"
	case CategoryPrecharger:
		return "precharger"
	case CategoryFuse:
		return "fuse"
	case CategoryVoltageTransformer:
		return "voltage_transformer"
	case CategoryHVAC:
		return "hvac"
	default:
		return fmt.Sprintf("category(%d)", int(c))
	}
}
