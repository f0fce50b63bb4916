package domain

// WeatherEntry is a single weather observation or forecast point
type WeatherEntry struct {
	Temperature float64 `json:"temperature"`
	WeatherCode int     `json:"weathercode"`
	Time        string  `json:"time"`
}

// WeatherBucket is a coarse classification of a WMO weather code
type WeatherBucket string

const (
	BucketSunny  WeatherBucket = "sunny"
	BucketCloudy WeatherBucket = "cloudy"
	BucketRainy  WeatherBucket = "rainy"
	BucketSnowy  WeatherBucket = "snowy"
	BucketFoggy  WeatherBucket = "foggy"
	BucketOther  WeatherBucket = "other"
)

// BucketOf maps a weather code to exactly one bucket. Unmapped codes are "other".
func BucketOf(code int) WeatherBucket {
	switch code {
	case 0, 1:
		return BucketSunny
	case 2, 3:
		return BucketCloudy
	case 61, 63, 65, 66, 67, 80, 81, 82:
		return BucketRainy
	case 71, 73, 75, 77, 85, 86:
		return BucketSnowy
	case 45, 48:
		return BucketFoggy
	}
	return BucketOther
}

// CurrentWeather represents current conditions for a city
type CurrentWeather struct {
	Temperature       float64 `json:"temperature"`
	Humidity          int     `json:"humidity"`
	Pressure          float64 `json:"pressure"`
	WindSpeed         float64 `json:"windSpeed"`
	WindDirection     int     `json:"windDirection"`
	CloudCover        int     `json:"cloudcover"`
	WeatherCode       int     `json:"weathercode"`
	IsDay             bool    `json:"isDay"`
	CloudStatus       string  `json:"cloudStatus"`
	DayNight          string  `json:"dayNight"`
	Time              string  `json:"time"`
	PrecipitationType string  `json:"precipitationType"`
	City              string  `json:"city"`
	IsMock            bool    `json:"isMock"`
}

// Entry returns the observation part used for mood records
func (w CurrentWeather) Entry() WeatherEntry {
	return WeatherEntry{
		Temperature: w.Temperature,
		WeatherCode: w.WeatherCode,
		Time:        w.Time,
	}
}

// City is a named forecast target
type City struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
}

// DefaultCityName is used when no city has been selected
const DefaultCityName = "Moscow"
