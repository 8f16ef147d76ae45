package greenops

// EPA Greenhouse Gas Equivalencies factors, in kg CO2e per unit of the
// equivalent activity.
//
//	equivalency = kg_CO2e / factor
const (
	// EPAMilesDrivenFactor is kg CO2e per mile of an average passenger vehicle.
	EPAMilesDrivenFactor = 0.192

	// EPASmartphoneChargeFactor is kg CO2e per full smartphone charge.
	EPASmartphoneChargeFactor = 0.00822

	// EPATreeSeedlingFactor is kg CO2e sequestered by one urban tree seedling
	// grown for 10 years.
	EPATreeSeedlingFactor = 60.0

	// EPAHomeDayFactor is kg CO2e for one day of average US home electricity.
	EPAHomeDayFactor = 18.3
)

// Mass conversions to kilograms.
const (
	GramsToKg  = 0.001
	KgToKg     = 1.0
	TonsToKg   = 1000.0
	PoundsToKg = 0.453592
)

// Display thresholds.
const (
	// MinEquivalencyThresholdKg is the smallest total that gets equivalencies.
	// A single bus ride or a coffee is below it and is shown as a raw value.
	MinEquivalencyThresholdKg = 1.0

	// LargeNumberThreshold switches display to "~X.X million".
	LargeNumberThreshold = 1_000_000

	// BillionThreshold switches display to "~X.X billion".
	BillionThreshold = 1_000_000_000
)
