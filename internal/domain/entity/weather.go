package entity

// concerningConditions are the weather condition groups worth alerting a
// traveler about. Matches the OpenWeather "main" condition vocabulary.
var concerningConditions = map[string]bool{
	"Rain":         true,
	"Drizzle":      true,
	"Thunderstorm": true,
	"Snow":         true,
	"Mist":         true,
	"Fog":          true,
}

// WeatherReport is a single read of current conditions at a location.
type WeatherReport struct {
	Condition    string  // condition group, e.g. "Rain", "Clear"
	Description  string  // human description, e.g. "light rain"
	TemperatureC float64 // celsius
}

// Concerning reports whether the conditions warrant a weather alert.
func (w *WeatherReport) Concerning() bool {
	return concerningConditions[w.Condition]
}
