package providers

import (
	"fmt"
	"math"
	"strings"

	"github.com/FACorreiaa/go-travel-itinerary/internal/types"
)

var (
	hotelPrefixes       = []string{"Grand", "Royal", "City", "Lemon", "Taj", "Oberoi", "Ginger", "Treebo"}
	hotelSuffixes       = []string{"Palace", "Resort", "Inn", "Suites", "Plaza", "Stay", "Residency"}
	luxuryHotelSuffixes = []string{"Palace", "Grand", "Oberoi", "Marriott"}
)

// HotelProvider produces synthetic hotel recommendations.
type HotelProvider struct {
	rand RandSource
}

func NewHotelProvider(rs RandSource) *HotelProvider {
	return &HotelProvider{rand: rs}
}

func (p *HotelProvider) Recommend(city, preference string) types.HotelRecord {
	rec := types.HotelRecord{
		City:    city,
		Address: "Near City Center, " + city,
	}

	if strings.Contains(strings.ToLower(preference), "luxury") {
		rec.HotelName = fmt.Sprintf("The %s %s", city, choice(p.rand, luxuryHotelSuffixes))
		rec.Price = randInt(p.rand, 8000, 15000)
		rec.Rating = 5.0
		return rec
	}

	rec.HotelName = fmt.Sprintf("%s %s %s", choice(p.rand, hotelPrefixes), city, choice(p.rand, hotelSuffixes))
	rec.Price = randInt(p.rand, 1500, 4000)
	rec.Rating = math.Round((3.5+p.rand.Float64())*10) / 10
	return rec
}
