package types

// FlightRecord is a synthetic flight offer.
type FlightRecord struct {
	FlightID    string `json:"flight_id"`
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Airline     string `json:"airline"`
	Price       int    `json:"price"`
	Departure   string `json:"departure"`
	Duration    string `json:"duration"`
}

type HotelRecord struct {
	HotelName string  `json:"hotel_name"`
	City      string  `json:"city"`
	Price     int     `json:"price"`
	Rating    float64 `json:"rating"`
	Address   string  `json:"address"`
}

// WeatherRecord holds daily forecast lines, or an error marker when the lookup failed.
type WeatherRecord struct {
	City     string   `json:"city"`
	Forecast []string `json:"forecast"`
	Error    string   `json:"error,omitempty"`
}

type PlacesRecord struct {
	City   string   `json:"city"`
	Places []string `json:"places"`
	Source string   `json:"source"`
}

type BudgetRecord struct {
	EstimatedTotalExpenses int    `json:"estimated_total_expenses"`
	Currency               string `json:"currency"`
	Breakdown              string `json:"breakdown"`
	Error                  string `json:"error,omitempty"`
}

// TripContext is everything the providers produced for one request.
type TripContext struct {
	Flight  FlightRecord  `json:"flight"`
	Hotel   HotelRecord   `json:"hotel"`
	Weather WeatherRecord `json:"weather"`
	Places  PlacesRecord  `json:"places"`
	Budget  BudgetRecord  `json:"budget"`
}

// ToolParam describes one argument of a tool.
type ToolParam struct {
	Name        string
	Type        string // "string" or "integer"
	Description string
	Required    bool
}

// ToolSpec is a backend-neutral description of a callable provider.
type ToolSpec struct {
	Name        string
	Description string
	Params      []ToolParam
}
