// Package weather builds the effects that look up the caller's location and
// its current weather conditions.
package weather

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/gabriel-bornea/monadyssey-showcase/internal/apperror"
	"github.com/gabriel-bornea/monadyssey-showcase/internal/effect"
)

const (
	DefaultLocationURL = "https://ipinfo.io/json"
	DefaultWeatherURL  = "https://api.open-meteo.com/v1/forecast"
)

// Fetcher retrieves a decoded JSON document from a URL.
// *transport.Client satisfies it.
type Fetcher interface {
	Request(ctx context.Context, url string) (any, error)
}

// Service builds the lookup effects. It holds no per-run state.
type Service struct {
	Client      Fetcher
	LocationURL string
	WeatherURL  string
}

// NewService creates a Service, using the public endpoints for empty URLs.
func NewService(client Fetcher, locationURL, weatherURL string) *Service {
	if locationURL == "" {
		locationURL = DefaultLocationURL
	}
	if weatherURL == "" {
		weatherURL = DefaultWeatherURL
	}
	return &Service{
		Client:      client,
		LocationURL: locationURL,
		WeatherURL:  weatherURL,
	}
}

// CurrentLocation looks up the caller's location from its public IP.
// Any transport or decoding failure is a LOCATION_LOOKUP_FAILED.
func (s *Service) CurrentLocation() effect.Effect[*apperror.Error, Location] {
	return effect.Of(
		func(ctx context.Context) (Location, error) {
			doc, err := s.Client.Request(ctx, s.LocationURL)
			if err != nil {
				return Location{}, err
			}
			loc, err := decode[Location](doc)
			if err != nil {
				return Location{}, fmt.Errorf("decode location: %w", err)
			}
			return *loc, nil
		},
		func(err error) *apperror.Error {
			return apperror.Wrap(err, apperror.KindLocationLookupFailed, "failed to retrieve user location")
		},
	)
}

// Coordinates extracts the latitude and longitude from loc.Loc.
// Missing, malformed or out-of-range values fail with INVALID_LOCATION_DATA.
func (s *Service) Coordinates(loc Location) effect.Effect[*apperror.Error, Coordinates] {
	return effect.OfSync(
		func() (Coordinates, error) {
			return splitCoordinates(loc.Loc)
		},
		func(err error) *apperror.Error {
			return apperror.InvalidLocationData(err.Error())
		},
	).Refine(
		Coordinates.valid,
		func(Coordinates) *apperror.Error {
			return apperror.InvalidLocationData("invalid latitude or longitude values")
		},
	)
}

// CurrentWeather fetches current conditions at c.
// Any transport or decoding failure is a WEATHER_LOOKUP_FAILED.
func (s *Service) CurrentWeather(c Coordinates) effect.Effect[*apperror.Error, Report] {
	return effect.Of(
		func(ctx context.Context) (Report, error) {
			endpoint, err := s.forecastURL(c)
			if err != nil {
				return Report{}, err
			}
			doc, err := s.Client.Request(ctx, endpoint)
			if err != nil {
				return Report{}, err
			}
			if m, ok := doc.(map[string]any); !ok || m["current_weather"] == nil {
				return Report{}, errors.New("response has no current_weather")
			}
			report, err := decode[Report](doc)
			if err != nil {
				return Report{}, fmt.Errorf("decode weather: %w", err)
			}
			return *report, nil
		},
		func(err error) *apperror.Error {
			return apperror.Wrap(err, apperror.KindWeatherLookupFailed, "failed to retrieve current weather conditions")
		},
	)
}

func (s *Service) forecastURL(c Coordinates) (string, error) {
	u, err := url.Parse(s.WeatherURL)
	if err != nil {
		return "", fmt.Errorf("parse weather url: %w", err)
	}
	q := u.Query()
	q.Set("latitude", strconv.FormatFloat(c.Latitude, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(c.Longitude, 'f', -1, 64))
	q.Set("current_weather", "true")
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// ToConditions merges a location and a weather report into the display shape.
func ToConditions(loc Location, r Report) Conditions {
	return Conditions{
		City:              loc.City,
		Country:           loc.Country,
		Temperature:       r.CurrentWeather.Temperature,
		TemperatureUnit:   r.Units.Temperature,
		WindSpeed:         r.CurrentWeather.WindSpeed,
		WindSpeedUnit:     r.Units.WindSpeed,
		WindDirection:     r.CurrentWeather.WindDirection,
		WindDirectionUnit: r.Units.WindDirection,
		WeatherCode:       r.CurrentWeather.WeatherCode,
		IsDay:             r.CurrentWeather.IsDay == 1,
		Description:       Describe(r.CurrentWeather.WeatherCode),
	}
}

// splitCoordinates parses "lat,lon". Unparsable numbers become NaN and are
// rejected by the refinement step rather than here.
func splitCoordinates(raw string) (Coordinates, error) {
	if strings.TrimSpace(raw) == "" {
		return Coordinates{}, errors.New("location data is missing")
	}
	parts := strings.Split(raw, ",")
	if len(parts) != 2 {
		return Coordinates{}, fmt.Errorf("malformed location %q", raw)
	}
	return Coordinates{
		Latitude:  parseNumber(parts[0]),
		Longitude: parseNumber(parts[1]),
	}, nil
}

func parseNumber(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

func (c Coordinates) valid() bool {
	if math.IsNaN(c.Latitude) || math.IsNaN(c.Longitude) {
		return false
	}
	return c.Latitude >= -90 && c.Latitude <= 90 && c.Longitude >= -180 && c.Longitude <= 180
}
