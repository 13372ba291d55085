package model

// Eligibility is the CAFV bucket a vehicle falls into.
type Eligibility string

// CAFV eligibility buckets.
const (
	Eligible    Eligibility = "Eligible"
	NotEligible Eligibility = "Not Eligible"
	Unknown     Eligibility = "Unknown"
)

// Source values of the CAFV eligibility column.
const (
	CAFVEligible     = "Clean Alternative Fuel Vehicle Eligible"
	CAFVLowRange     = "Not eligible due to low battery range"
	CAFVUnresearched = "Eligibility unknown as battery range has not been researched"
)

// Eligibility classifies the raw CAFV column. Only exact matches count as
// Eligible or Not Eligible; every other value is Unknown.
func (v Vehicle) Eligibility() Eligibility {
	switch v.CAFVEligibility {
	case CAFVEligible:
		return Eligible
	case CAFVLowRange:
		return NotEligible
	default:
		return Unknown
	}
}

// Description returns the long form shown next to a bucket.
func (e Eligibility) Description() string {
	switch e {
	case Eligible:
		return CAFVEligible
	case NotEligible:
		return CAFVLowRange
	default:
		return CAFVUnresearched
	}
}

// Electric vehicle type categories.
const (
	BEV  = "Battery Electric Vehicle (BEV)"
	PHEV = "Plug-in Hybrid Electric Vehicle (PHEV)"
)
