package rules

// Limits are the daily quotas and inventory caps.
type Limits struct {
	DailyTransmute int
	DailyExplore   int
	DailyCraft     int
	MaxMaterials   int
	MaxItems       int
	MaxCatalysts   int
	VanishDays     int
}

// RelaxedLimit replaces every quota and cap in debug mode.
const RelaxedLimit = 9999

// DefaultLimits returns the standard game limits.
func DefaultLimits() Limits {
	return Limits{
		DailyTransmute: 3,
		DailyExplore:   1,
		DailyCraft:     3,
		MaxMaterials:   50,
		MaxItems:       30,
		MaxCatalysts:   20,
		VanishDays:     DefaultVanishDays,
	}
}

// Relaxed returns l with quotas and caps lifted. The vanish window is kept.
func (l Limits) Relaxed() Limits {
	return Limits{
		DailyTransmute: RelaxedLimit,
		DailyExplore:   RelaxedLimit,
		DailyCraft:     RelaxedLimit,
		MaxMaterials:   RelaxedLimit,
		MaxItems:       RelaxedLimit,
		MaxCatalysts:   RelaxedLimit,
		VanishDays:     l.VanishDays,
	}
}
