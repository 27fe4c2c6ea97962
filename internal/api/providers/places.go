package providers

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"googlemaps.github.io/maps"

	"github.com/FACorreiaa/go-travel-itinerary/internal/types"
)

const (
	PlacesSourceStatic  = "static"
	PlacesSourceMaps    = "google_maps"
	placesSearchLimit   = 5
	placesDefaultCenter = "City Center"
	placesDefaultMarket = "Local Market"
)

type cityPlaces struct {
	city   string
	places []string
}

// Matched in order by case-insensitive containment in the requested city.
var knownPlaces = []cityPlaces{
	{city: "Goa", places: []string{"Baga Beach", "Fort Aguada", "Dudhsagar Falls"}},
	{city: "Delhi", places: []string{"Red Fort", "India Gate", "Qutub Minar"}},
}

// PlaceSearcher is a remote source of attraction names.
type PlaceSearcher interface {
	SearchPlaces(ctx context.Context, city string) ([]string, error)
}

// PlacesProvider returns attractions for a city, consulting the optional
// remote searcher first and the static table otherwise. The list is never empty.
type PlacesProvider struct {
	searcher PlaceSearcher
	logger   *slog.Logger
}

func NewPlacesProvider(searcher PlaceSearcher, logger *slog.Logger) *PlacesProvider {
	return &PlacesProvider{searcher: searcher, logger: logger}
}

func (p *PlacesProvider) Discover(ctx context.Context, city string) types.PlacesRecord {
	if p.searcher != nil {
		found, err := p.searcher.SearchPlaces(ctx, city)
		switch {
		case err != nil:
			p.logger.WarnContext(ctx, "Remote places search failed, using static table",
				slog.String("city", city), slog.Any("error", err))
		case len(found) > 0:
			return types.PlacesRecord{City: city, Places: found, Source: PlacesSourceMaps}
		}
	}
	return types.PlacesRecord{City: city, Places: staticPlaces(city), Source: PlacesSourceStatic}
}

func staticPlaces(city string) []string {
	needle := strings.ToLower(city)
	for _, entry := range knownPlaces {
		if strings.Contains(needle, strings.ToLower(entry.city)) {
			return append([]string(nil), entry.places...)
		}
	}
	return []string{placesDefaultCenter, placesDefaultMarket}
}

// MapsPlaceSearcher finds attractions with the Google Places text search.
type MapsPlaceSearcher struct {
	client *maps.Client
}

func NewMapsPlaceSearcher(apiKey string, opts ...maps.ClientOption) (*MapsPlaceSearcher, error) {
	client, err := maps.NewClient(append([]maps.ClientOption{maps.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &MapsPlaceSearcher{client: client}, nil
}

func (s *MapsPlaceSearcher) SearchPlaces(ctx context.Context, city string) ([]string, error) {
	resp, err := s.client.TextSearch(ctx, &maps.TextSearchRequest{
		Query: "tourist attractions in " + city,
	})
	if err != nil {
		return nil, fmt.Errorf("places api error: %w", err)
	}

	names := make([]string, 0, placesSearchLimit)
	for _, r := range resp.Results {
		if r.Name == "" {
			continue
		}
		names = append(names, r.Name)
		if len(names) == placesSearchLimit {
			break
		}
	}
	return names, nil
}
