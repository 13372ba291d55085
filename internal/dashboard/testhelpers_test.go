package dashboard

import "github.com/sells-group/ev-dashboard/internal/model"

// car builds a vehicle row with the fields the dashboard reads.
func car(county, city, mk, mdl, year, rng string) model.Vehicle {
	return model.Vehicle{
		County:          county,
		City:            city,
		State:           "WA",
		Make:            mk,
		Model:           mdl,
		ModelYear:       year,
		ElectricRange:   rng,
		EVType:          model.BEV,
		CAFVEligibility: model.CAFVUnresearched,
	}
}

func withEligibility(v model.Vehicle, cafv string) model.Vehicle {
	v.CAFVEligibility = cafv
	return v
}

func withType(v model.Vehicle, evType string) model.Vehicle {
	v.EVType = evType
	return v
}

// fixture is a small multi-county dataset.
func fixture() []model.Vehicle {
	return []model.Vehicle{
		withEligibility(car("King", "Seattle", "TESLA", "MODEL 3", "2022", "0"), model.CAFVEligible),
		withEligibility(car("King", "Seattle", "TESLA", "MODEL Y", "2023", "0"), model.CAFVUnresearched),
		withEligibility(car("King", "Bellevue", "NISSAN", "LEAF", "2019", "150"), model.CAFVEligible),
		withType(withEligibility(car("King", "Bellevue", "TOYOTA", "PRIUS PRIME", "2021", "25"), model.CAFVLowRange), model.PHEV),
		withEligibility(car("Pierce", "Tacoma", "CHEVROLET", "BOLT EV", "2020", "259"), model.CAFVEligible),
		withEligibility(car("Pierce", "Tacoma", "TESLA", "MODEL 3", "2020", "322"), model.CAFVEligible),
		withType(withEligibility(car("Pierce", "Lakewood", "KIA", "NIRO", "2021", "26"), model.CAFVLowRange), model.PHEV),
		withEligibility(car("Pierce", "Lakewood", "FORD", "MUSTANG MACH-E", "2022", "0"), model.CAFVUnresearched),
		withEligibility(car("Thurston", "Olympia", "NISSAN", "LEAF", "2018", "151"), model.CAFVEligible),
		withEligibility(car("King", "Seattle", "TESLA", "MODEL 3", "2020", "266"), model.CAFVEligible),
	}
}
