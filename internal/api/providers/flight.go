package providers

import (
	"fmt"
	"strings"

	"github.com/FACorreiaa/go-travel-itinerary/internal/types"
)

var airlines = []string{"IndiGo", "Air India", "Vistara", "SpiceJet", "Akasa Air"}

var flightDurations = []string{"1.5 hrs", "2.0 hrs", "2.5 hrs", "3.0 hrs"}

const (
	flightBasePrice      = 3000
	flightPremiumAirline = "Vistara"
	flightPremiumCharge  = 4000
)

// FlightProvider produces synthetic flight offers.
type FlightProvider struct {
	rand RandSource
}

func NewFlightProvider(rs RandSource) *FlightProvider {
	return &FlightProvider{rand: rs}
}

// Search returns one flight between source and destination. A "luxury" or
// "fastest" preference books the premium airline at a surcharge.
func (p *FlightProvider) Search(source, destination, preference string) types.FlightRecord {
	price := flightBasePrice + randInt(p.rand, 1000, 5000)

	var airline string
	switch strings.ToLower(strings.TrimSpace(preference)) {
	case "luxury", "fastest":
		price += flightPremiumCharge
		airline = flightPremiumAirline
	default:
		airline = choice(p.rand, airlines)
	}

	departure := fmt.Sprintf("%02d:30", randInt(p.rand, 6, 20))
	duration := choice(p.rand, flightDurations)
	flightID := fmt.Sprintf("%s-%d", strings.ToUpper(airline[:2]), randInt(p.rand, 100, 999))

	return types.FlightRecord{
		FlightID:    flightID,
		Source:      source,
		Destination: destination,
		Airline:     airline,
		Price:       price,
		Departure:   departure,
		Duration:    duration,
	}
}
