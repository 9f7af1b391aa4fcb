package seeder

// SampleCar mirrors the cars table. The set below is the bundled sample
// catalog, also served by the in-memory fallback store when PostgreSQL is
// unreachable.
type SampleCar struct {
	Manufacturer string
	Model        string
	Year         int
	BodyType     string
	Price        int
	PrimaryUse   string
	EngineInfo   string
	Transmission string
	FuelType     string
	MPG          float64
	Description  string
	Features     []string
}

type SampleReview struct {
	Manufacturer string
	Model        string
	Year         int
	Author       string
	Title        string
	Text         string
	Rating       float64
}

func SampleCars() []SampleCar {
	return []SampleCar{
		{
			Manufacturer: "Toyota", Model: "Camry", Year: 2023,
			BodyType: "sedan", Price: 28500, PrimaryUse: "daily_commute",
			EngineInfo: "2.5L 4-cylinder", Transmission: "8-speed automatic", FuelType: "gasoline", MPG: 32,
			Description: "A dependable midsize sedan built for the daily commute, with composed city manners and a quiet cabin.",
			Features:    []string{"Adaptive Cruise Control", "Lane Assist", "Apple CarPlay"},
		},
		{
			Manufacturer: "Honda", Model: "CR-V", Year: 2023,
			BodyType: "suv", Price: 33500, PrimaryUse: "family",
			EngineInfo: "1.5L turbo 4-cylinder", Transmission: "CVT", FuelType: "gasoline", MPG: 30,
			Description: "A spacious family crossover with comfortable seating for five and generous cargo room.",
			Features:    []string{"Heated Seats", "Blind Spot Monitor", "Power Tailgate"},
		},
		{
			Manufacturer: "Ford", Model: "F-150", Year: 2024,
			BodyType: "truck", Price: 45000, PrimaryUse: "utility",
			EngineInfo: "3.5L EcoBoost V6", Transmission: "10-speed automatic", FuelType: "gasoline", MPG: 22,
			Description: "A practical full-size pickup for work and towing, versatile enough for the weekend.",
			Features:    []string{"Tow Package", "Bed Liner", "Pro Power Onboard"},
		},
		{
			Manufacturer: "Tesla", Model: "Model 3", Year: 2024,
			BodyType: "sedan", Price: 42000, PrimaryUse: "daily_commute",
			EngineInfo: "Dual-motor electric", Transmission: "Single-speed", FuelType: "electric", MPG: 132,
			Description: "A fast electric sedan with instant torque, ideal for the daily city drive with zero tailpipe emissions.",
			Features:    []string{"Autopilot", "Glass Roof", "Over-the-air Updates"},
		},
		{
			Manufacturer: "BMW", Model: "330i", Year: 2023,
			BodyType: "sedan", Price: 47500, PrimaryUse: "luxury",
			EngineInfo: "2.0L turbo 4-cylinder", Transmission: "8-speed automatic", FuelType: "gasoline", MPG: 28,
			Description: "A premium sport sedan blending luxury appointments with a powerful, engaging drive.",
			Features:    []string{"Leather Upholstery", "Harman Kardon Audio", "Sport Mode"},
		},
		{
			Manufacturer: "Chevrolet", Model: "Corvette Stingray", Year: 2023,
			BodyType: "coupe", Price: 68000, PrimaryUse: "performance",
			EngineInfo: "6.2L V8", Transmission: "8-speed dual-clutch", FuelType: "gasoline", MPG: 19,
			Description: "A mid-engine sport coupe, brutally fast and powerful, built for the track day crowd.",
			Features:    []string{"Launch Control", "Magnetic Ride", "Performance Exhaust"},
		},
		{
			Manufacturer: "Chrysler", Model: "Pacifica", Year: 2023,
			BodyType: "minivan", Price: 39500, PrimaryUse: "family",
			EngineInfo: "3.6L V6 hybrid", Transmission: "CVT", FuelType: "hybrid", MPG: 30,
			Description: "The family road-trip default: spacious, comfortable, and loaded with kid-friendly touches.",
			Features:    []string{"Stow 'n Go Seating", "Rear Entertainment", "Vacuum"},
		},
		{
			Manufacturer: "Mazda", Model: "MX-5 Miata", Year: 2023,
			BodyType: "sport", Price: 29500, PrimaryUse: "performance",
			EngineInfo: "2.0L 4-cylinder", Transmission: "6-speed manual", FuelType: "gasoline", MPG: 29,
			Description: "A light, fun roadster that proves fast is a feeling; sport handling over straight-line power.",
			Features:    []string{"Convertible Soft Top", "Limited-slip Differential", "Bose Audio"},
		},
		{
			Manufacturer: "Subaru", Model: "Outback", Year: 2023,
			BodyType: "wagon", Price: 31500, PrimaryUse: "utility",
			EngineInfo: "2.5L flat-4", Transmission: "CVT", FuelType: "gasoline", MPG: 29,
			Description: "A versatile all-wheel-drive wagon, practical for work gear and comfortable on long hauls.",
			Features:    []string{"All-wheel Drive", "Roof Rails", "X-Mode"},
		},
		{
			Manufacturer: "Mercedes-Benz", Model: "S 500", Year: 2024,
			BodyType: "sedan", Price: 118000, PrimaryUse: "luxury",
			EngineInfo: "3.0L inline-6 mild hybrid", Transmission: "9-speed automatic", FuelType: "gasoline", MPG: 25,
			Description: "The luxury benchmark: premium materials, supreme comfort, and a serene ride.",
			Features:    []string{"Massaging Seats", "Burmester 4D Audio", "Rear-axle Steering"},
		},
	}
}

func SampleReviews() []SampleReview {
	return []SampleReview{
		{
			Manufacturer: "Toyota", Model: "Camry", Year: 2023,
			Author: "dailydriver88", Title: "Exactly what a commuter should be",
			Text:   "Quiet cabin, smooth ride, excellent fuel economy around town. Pros: reliable drivetrain\nCons: bland styling",
			Rating: 4.5,
		},
		{
			Manufacturer: "Honda", Model: "CR-V", Year: 2023,
			Author: "threekidsdad", Title: "Great family hauler",
			Text:   "Spacious interior and comfortable seats, the kids have plenty of legroom. The infotainment screen is responsive.",
			Rating: 4.6,
		},
		{
			Manufacturer: "Chevrolet", Model: "Corvette Stingray", Year: 2023,
			Author: "trackday_tom", Title: "Astonishing performance for the price",
			Text:   "The acceleration is amazing and the handling impressed everyone at the track. Noisy on the highway, but that's the point.",
			Rating: 4.8,
		},
		{
			Manufacturer: "Mercedes-Benz", Model: "S 500", Year: 2024,
			Author: "quietluxury", Title: "A rolling lounge",
			Text:   "Luxurious cabin, quiet and smooth at any speed. Expensive to option, and the software interface takes learning.",
			Rating: 4.4,
		},
	}
}
