package domain

// ConditionKind is a coarse classification of WMO weather codes, used
// by the recommendation rules.
type ConditionKind string

const (
	ConditionUnknown ConditionKind = "unknown"
	ConditionClear   ConditionKind = "clear"
	ConditionCloudy  ConditionKind = "cloudy"
	ConditionFog     ConditionKind = "fog"
	ConditionRain    ConditionKind = "rain"
	ConditionSnow    ConditionKind = "snow"
	ConditionThunder ConditionKind = "thunder"
)

// ClassifyWeatherCode maps a WMO code to its coarse kind.
func ClassifyWeatherCode(code int) ConditionKind {
	switch {
	case code == 0:
		return ConditionClear
	case code >= 1 && code <= 3:
		return ConditionCloudy
	case code == 45 || code == 48:
		return ConditionFog
	case (code >= 51 && code <= 67) || (code >= 80 && code <= 82):
		return ConditionRain
	case (code >= 71 && code <= 77) || code == 85 || code == 86:
		return ConditionSnow
	case code >= 95 && code <= 99:
		return ConditionThunder
	default:
		return ConditionUnknown
	}
}

// isFreezingRain reports the two WMO codes for freezing rain, which get
// a dedicated ice warning.
func isFreezingRain(code int) bool {
	return code == 66 || code == 67
}
