package domain

// Coordinates is a latitude/longitude pair
type Coordinates struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lng float64 `json:"lng" yaml:"lng"`
}

// HeatwaveRecord summarises one year of heatwaves at a location
type HeatwaveRecord struct {
	Year     int     `json:"year" yaml:"year"`
	Events   int     `json:"events" yaml:"events"`
	MaxTemp  float64 `json:"max_temp" yaml:"max_temp"`
	Duration int     `json:"duration_days" yaml:"duration"`
}

// LocationProfile holds the static climate constants of a site.
// HeatwaveThreshold is always above AverageSummerTemperature.
type LocationProfile struct {
	Key                      string           `json:"key" yaml:"key"`
	Name                     string           `json:"name" yaml:"name"`
	Coordinates              Coordinates      `json:"coordinates" yaml:"coordinates"`
	AverageSummerTemperature float64          `json:"avg_summer_temp" yaml:"avg_summer_temp"`
	HeatwaveThreshold        float64          `json:"heatwave_threshold" yaml:"heatwave_threshold"`
	CarbonIntensity          float64          `json:"carbon_intensity" yaml:"carbon_intensity"` // kg CO2/kWh
	HistoricalHeatwaves      []HeatwaveRecord `json:"historical_heatwaves" yaml:"historical_heatwaves"`
}

// DefaultLocationKey is used when a location key is unknown
const DefaultLocationKey = "san-francisco"
