package openweather

import "math"

// GeoResult is an entry returned by the direct, reverse and zip geocoding endpoints.
type GeoResult struct {
	Name       string            `json:"name"`
	LocalNames map[string]string `json:"local_names,omitempty"`
	Lat        float64           `json:"lat"`
	Lon        float64           `json:"lon"`
	Country    string            `json:"country"`
	State      string            `json:"state,omitempty"`
	Zip        string            `json:"zip,omitempty"`
}

type Coord struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

type Condition struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type MainStats struct {
	Temp      float64 `json:"temp"`
	FeelsLike float64 `json:"feels_like"`
	TempMin   float64 `json:"temp_min"`
	TempMax   float64 `json:"temp_max"`
	Pressure  int     `json:"pressure"`
	Humidity  int     `json:"humidity"`
	SeaLevel  int     `json:"sea_level,omitempty"`
	GrndLevel int     `json:"grnd_level,omitempty"`
}

// RoundTemperatures rounds every temperature field to whole degrees.
func (m *MainStats) RoundTemperatures() {
	m.Temp = math.Round(m.Temp)
	m.FeelsLike = math.Round(m.FeelsLike)
	m.TempMin = math.Round(m.TempMin)
	m.TempMax = math.Round(m.TempMax)
}

type Wind struct {
	Speed float64 `json:"speed"`
	Deg   int     `json:"deg"`
	Gust  float64 `json:"gust,omitempty"`
}

type Clouds struct {
	All int `json:"all"`
}

type Precipitation struct {
	OneHour   float64 `json:"1h,omitempty"`
	ThreeHour float64 `json:"3h,omitempty"`
}

type Sys struct {
	Type    int    `json:"type,omitempty"`
	ID      int    `json:"id,omitempty"`
	Country string `json:"country,omitempty"`
	Sunrise int64  `json:"sunrise,omitempty"`
	Sunset  int64  `json:"sunset,omitempty"`
	Pod     string `json:"pod,omitempty"`
}

// CurrentWeather is the /data/2.5/weather payload.
type CurrentWeather struct {
	Coord      Coord          `json:"coord"`
	Weather    []Condition    `json:"weather"`
	Base       string         `json:"base,omitempty"`
	Main       MainStats      `json:"main"`
	Visibility int            `json:"visibility"`
	Wind       Wind           `json:"wind"`
	Clouds     Clouds         `json:"clouds"`
	Rain       *Precipitation `json:"rain,omitempty"`
	Snow       *Precipitation `json:"snow,omitempty"`
	Dt         int64          `json:"dt"`
	Sys        Sys            `json:"sys"`
	Timezone   int            `json:"timezone"`
	ID         int            `json:"id"`
	Name       string         `json:"name"`
	Cod        int            `json:"cod"`
}

// ForecastEntry is one 3-hour step of the forecast.
type ForecastEntry struct {
	Dt         int64          `json:"dt"`
	Main       MainStats      `json:"main"`
	Weather    []Condition    `json:"weather"`
	Clouds     Clouds         `json:"clouds"`
	Wind       Wind           `json:"wind"`
	Visibility int            `json:"visibility"`
	Pop        float64        `json:"pop"`
	Rain       *Precipitation `json:"rain,omitempty"`
	Snow       *Precipitation `json:"snow,omitempty"`
	Sys        Sys            `json:"sys"`
	DtTxt      string         `json:"dt_txt"`
}

// Description returns the first condition's description, or "" when there is none.
func (e ForecastEntry) Description() string {
	if len(e.Weather) == 0 {
		return ""
	}
	return e.Weather[0].Description
}

type City struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Coord      Coord  `json:"coord"`
	Country    string `json:"country"`
	Population int    `json:"population"`
	Timezone   int    `json:"timezone"`
	Sunrise    int64  `json:"sunrise"`
	Sunset     int64  `json:"sunset"`
}

// Forecast is the /data/2.5/forecast payload (5 days in 3-hour steps).
type Forecast struct {
	Cod     string          `json:"cod"`
	Message int             `json:"message"`
	Cnt     int             `json:"cnt"`
	List    []ForecastEntry `json:"list"`
	City    City            `json:"city"`
}
