package weather

// Location identifies the place a run reports on. Coordinates come from
// configuration; Name and State are filled in from the grid-point lookup.
type Location struct {
	Name      string  `json:"name"`
	State     string  `json:"state"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// CurrentConditions is the latest station observation, normalized to the
// units the report uses. Numeric fields are pointers because the upstream
// observation may omit any of them; nil means the station did not report
// that value, which is different from zero.
type CurrentConditions struct {
	Timestamp     string   `json:"timestamp"`
	TemperatureF  *float64 `json:"temperature_f"`
	TemperatureC  *float64 `json:"temperature_c"`
	Humidity      *float64 `json:"humidity"`
	WindSpeedMPH  *float64 `json:"wind_speed_mph"`
	WindDirection *float64 `json:"wind_direction"`
	Description   string   `json:"description"`
}

// ForecastPeriod is an upstream-defined named time segment ("Today",
// "Tonight") with its prose forecast, passed through unchanged.
type ForecastPeriod struct {
	Name             string `json:"name"`
	DetailedForecast string `json:"detailedForecast"`
}

// Snapshot bundles everything a single run fetched. It is built once per
// invocation and never mutated afterwards. Forecast holds at most the first
// two periods (today and tonight).
type Snapshot struct {
	Location          Location          `json:"location"`
	CurrentConditions CurrentConditions `json:"current_conditions"`
	Forecast          []ForecastPeriod  `json:"forecast"`
}
