package weather

// WMO weather codes as reported by the archive provider.
var conditionByCode = map[int]Condition{
	0: ConditionSunny, 1: ConditionSunny, 2: ConditionSunny,

	3: ConditionCloudy, 45: ConditionCloudy, 48: ConditionCloudy,

	51: ConditionRainy, 53: ConditionRainy, 55: ConditionRainy,
	56: ConditionRainy, 57: ConditionRainy,
	61: ConditionRainy, 63: ConditionRainy, 65: ConditionRainy,
	66: ConditionRainy, 67: ConditionRainy,
	80: ConditionRainy, 81: ConditionRainy, 82: ConditionRainy,
	95: ConditionRainy, 96: ConditionRainy, 99: ConditionRainy,

	71: ConditionSnowy, 73: ConditionSnowy, 75: ConditionSnowy,
	77: ConditionSnowy, 85: ConditionSnowy, 86: ConditionSnowy,
}

// Classify maps a weather code to its condition. Codes outside the table are unknown.
func Classify(code int) Condition {
	if cond, ok := conditionByCode[code]; ok {
		return cond
	}
	return ConditionUnknown
}

// ClassifyObservation classifies a day, treating a missing code as unknown.
func ClassifyObservation(obs DailyObservation) Condition {
	if obs.WeatherCode == nil {
		return ConditionUnknown
	}
	return Classify(*obs.WeatherCode)
}
