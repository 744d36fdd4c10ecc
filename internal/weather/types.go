package weather

// Location is the subset of the ipinfo.io document the pipeline reads.
type Location struct {
	IP       string `json:"ip"`
	City     string `json:"city"`
	Region   string `json:"region"`
	Country  string `json:"country"`
	Loc      string `json:"loc"` // "latitude,longitude"
	Timezone string `json:"timezone"`
}

// Coordinates is a validated latitude/longitude pair in decimal degrees.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// CurrentWeather mirrors open-meteo's current_weather object.
type CurrentWeather struct {
	Time          string  `json:"time"`
	Temperature   float64 `json:"temperature"`
	WindSpeed     float64 `json:"windspeed"`
	WindDirection float64 `json:"winddirection"`
	WeatherCode   int     `json:"weathercode"`
	IsDay         int     `json:"is_day"`
}

// CurrentWeatherUnits mirrors open-meteo's current_weather_units object.
type CurrentWeatherUnits struct {
	Temperature   string `json:"temperature"`
	WindSpeed     string `json:"windspeed"`
	WindDirection string `json:"winddirection"`
}

// Report is the open-meteo forecast response with current_weather=true.
type Report struct {
	Latitude       float64             `json:"latitude"`
	Longitude      float64             `json:"longitude"`
	Timezone       string              `json:"timezone"`
	CurrentWeather CurrentWeather      `json:"current_weather"`
	Units          CurrentWeatherUnits `json:"current_weather_units"`
}

// Conditions is the display shape produced by a successful pipeline run.
type Conditions struct {
	City              string  `json:"city"`
	Country           string  `json:"country"`
	Temperature       float64 `json:"temperature"`
	TemperatureUnit   string  `json:"temperature_unit"`
	WindSpeed         float64 `json:"wind_speed"`
	WindSpeedUnit     string  `json:"wind_speed_unit"`
	WindDirection     float64 `json:"wind_direction"`
	WindDirectionUnit string  `json:"wind_direction_unit"`
	WeatherCode       int     `json:"weather_code"`
	IsDay             bool    `json:"is_day"`
	Description       string  `json:"description"`
}
