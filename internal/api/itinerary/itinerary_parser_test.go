package itinerary

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-travel-itinerary/internal/types"
)

var delhiGoa = types.TripRequest{Source: "Delhi", Destination: "Goa", Days: 3, Budget: types.BudgetTierBudget}

func sampleResult() types.ItineraryResult {
	return types.ItineraryResult{
		TripSummary:          "3-day budget trip from Delhi to Goa",
		FlightSelected:       types.FlightSelection{Airline: "IndiGo", Price: 5200},
		HotelSelected:        types.HotelSelection{HotelName: "Ginger Goa Inn", Price: 2100},
		TotalBudgetEstimated: 17500,
		Reasoning:            "Cheapest flight and a central hotel.",
		DayWisePlan: []types.DayPlan{
			{Day: 1, Activity: "Arrive and relax at Baga Beach."},
			{Day: 2, Activity: "Explore Fort Aguada."},
			{Day: 3, Activity: "Visit Dudhsagar Falls and fly home."},
		},
	}
}

func TestCleaningSteps(t *testing.T) {
	tests := []struct {
		name string
		step cleanStep
		in   string
		want string
	}{
		{"fence labelled", stripCodeFences, "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"fence bare", stripCodeFences, "```\n{}\n```", `{}`},
		{"fence closing same line", stripCodeFences, "```JSON {\"a\":1}```", `{"a":1}`},
		{"fence mid text kept", stripCodeFences, "Here:\n```JSON\n{}\n```\nbye", "Here:\n```JSON\n{}\n```\nbye"},
		{"backticks in payload", stripCodeFences, "{\"a\":\"use ```x``` here\"}", "{\"a\":\"use ```x``` here\"}"},
		{"sentinel", trimBeforeSentinel, "Thought: ok\nFinal Answer: {\"a\":1}", `{"a":1}`},
		{"sentinel any case", trimBeforeSentinel, "FINAL ANSWER:{}", `{}`},
		{"sentinel last wins", trimBeforeSentinel, "final answer: draft\nFinal Answer: {}", `{}`},
		{"sentinel in payload", trimBeforeSentinel, "Final Answer: {\"r\":\"Final answer: IndiGo\"}", `{"r":"Final answer: IndiGo"}`},
		{"sentinel only in payload", trimBeforeSentinel, "{\"r\":\"final answer: x\"}", `{"r":"final answer: x"}`},
		{"no sentinel", trimBeforeSentinel, "  {} ", `{}`},
		{"extract", extractJSONObject, "Sure! {\"a\":{\"b\":2}} Enjoy!", `{"a":{"b":2}}`},
		{"extract none", extractJSONObject, "no json here", "no json here"},
		{"extract reversed", extractJSONObject, "} oops {", "} oops {"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.step(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, tt.step(got), "step must be idempotent")
		})
	}
}

func TestCleanModelOutput_Idempotent(t *testing.T) {
	inputs := []string{
		`{"trip_summary":"x"}`,
		"```json\n{\"trip_summary\":\"x\"}\n```",
		"I think this works.\nFinal Answer: ```{\"a\":1}``` hope it helps",
		"no braces at all, Final Answer: sorry",
		"````` odd fences ``` {} `",
		"",
	}
	for _, in := range inputs {
		once := cleanModelOutput(in)
		assert.Equal(t, once, cleanModelOutput(once), "input %q", in)
	}
}

func TestParseItinerary_RoundTripThroughNoise(t *testing.T) {
	tricky := sampleResult()
	tricky.Reasoning = "Compared three carriers. Final answer: IndiGo, it was cheapest."
	tricky.DayWisePlan[1].Activity = "Pack the ```essentials``` list and explore Fort Aguada."

	results := map[string]types.ItineraryResult{
		"plain":          sampleResult(),
		"tricky strings": tricky,
	}

	wrappers := map[string]string{
		"bare":      "%s",
		"fenced":    "```json\n%s\n```",
		"prose":     "Here is your plan:\n%s\nHave a great trip!",
		"sentinel":  "Thought: I have all tool data.\nFinal Answer: %s",
		"all three": "Thought: done\nfinal answer:\n```json\n%s\n```\nLet me know!",
	}
	for resultName, want := range results {
		body, err := json.Marshal(want)
		require.NoError(t, err)

		for name, wrap := range wrappers {
			t.Run(resultName+"/"+name, func(t *testing.T) {
				raw := strings.Replace(wrap, "%s", string(body), 1)
				got, err := ParseItinerary(raw)
				require.NoError(t, err)
				assert.Equal(t, want, got)
			})
		}
	}
}

func TestParseItinerary_LenientValues(t *testing.T) {
	raw := `{
	  "trip_summary": "Trip",
	  "flight_selected": {"airline": "Vistara", "price": 9000.0},
	  "hotel_selected": {"name": "The Goa Palace", "price": "₹ 12,500"},
	  "total_budget_estimated": "5,000",
	  "reasoning": "Luxury",
	  "day_wise_plan": [{"day": "Day 1", "activity": "Beach"}, "Fort"]
	}`
	got, err := ParseItinerary(raw)
	require.NoError(t, err)
	assert.Equal(t, 9000, got.FlightSelected.Price)
	assert.Equal(t, "The Goa Palace", got.HotelSelected.HotelName)
	assert.Equal(t, 12500, got.HotelSelected.Price)
	assert.Equal(t, 5000, got.TotalBudgetEstimated)
	assert.Equal(t, []types.DayPlan{{Day: 1, Activity: "Beach"}, {Day: 2, Activity: "Fort"}}, got.DayWisePlan)
}

func TestParseItinerary_NegativeTotalClampsToZero(t *testing.T) {
	got, err := ParseItinerary(`{"trip_summary":"x","total_budget_estimated":-300}`)
	require.NoError(t, err)
	assert.Equal(t, 0, got.TotalBudgetEstimated)
}

func TestParseItinerary_Failures(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr error
	}{
		{"prose only", "I could not find any flights, sorry.", ErrNoJSONObject},
		{"empty", "", ErrNoJSONObject},
		{"broken json", `{"trip_summary": "x",}`, ErrNoJSONObject},
		{"two objects", `{"trip_summary":"a"} and {"trip_summary":"b"}`, ErrNoJSONObject},
		{"unrelated object", `{"answer": 42}`, ErrNoItineraryFields},
		{"uncoercible total", `{"total_budget_estimated": "a lot"}`, nil},
		{"object as price", `{"flight_selected": {"airline": "X", "price": {"min": 1}}}`, nil},
		{"plan not a list", `{"day_wise_plan": "relax"}`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseItinerary(tt.raw)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestNormalize_FallbackOnProse(t *testing.T) {
	got, err := Normalize("The weather looks great, enjoy Goa!", delhiGoa)
	assert.Error(t, err)
	assert.Equal(t, 0, got.TotalBudgetEstimated)
	assert.Equal(t, FallbackItinerary(delhiGoa), got)
	assert.Len(t, got.DayWisePlan, 3)
}

func TestNormalize_ReconcilesDayPlan(t *testing.T) {
	tests := []struct {
		name string
		plan string
		want []types.DayPlan
	}{
		{
			name: "extra days dropped",
			plan: `[{"day":1,"activity":"A"},{"day":2,"activity":"B"},{"day":3,"activity":"C"},{"day":4,"activity":"D"}]`,
			want: []types.DayPlan{day(1, "A"), day(2, "B"), day(3, "C")},
		},
		{
			name: "missing days padded",
			plan: `[{"day":1,"activity":"A"}]`,
			want: []types.DayPlan{
				day(1, "A"),
				day(2, "Free day to explore Goa at your own pace."),
				day(3, "Free day to explore Goa at your own pace."),
			},
		},
		{
			name: "renumbered in model order",
			plan: `[{"day":7,"activity":"A"},{"day":7,"activity":""},{"day":2,"activity":"B"},{"day":9,"activity":"C"}]`,
			want: []types.DayPlan{day(1, "A"), day(2, "B"), day(3, "C")},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(`{"trip_summary":"x","day_wise_plan":`+tt.plan+`}`, delhiGoa)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.DayWisePlan)
		})
	}
}

func day(n int, activity string) types.DayPlan {
	return types.DayPlan{Day: n, Activity: activity}
}

func TestFallbackItinerary(t *testing.T) {
	a := FallbackItinerary(delhiGoa)
	b := FallbackItinerary(delhiGoa)
	assert.Equal(t, a, b)

	assert.Equal(t, "Standard Airlines", a.FlightSelected.Airline)
	assert.Equal(t, 4500, a.FlightSelected.Price)
	assert.Equal(t, "Premium City Hotel", a.HotelSelected.HotelName)
	assert.Equal(t, 3500, a.HotelSelected.Price)
	assert.Equal(t, 0, a.TotalBudgetEstimated)
	assert.NotEmpty(t, a.Reasoning)
	for i, d := range a.DayWisePlan {
		assert.Equal(t, i+1, d.Day)
		assert.Contains(t, d.Activity, "Goa")
	}

	one := FallbackItinerary(types.TripRequest{Source: "A", Destination: "B", Days: 1})
	assert.Len(t, one.DayWisePlan, 1)

	none := FallbackItinerary(types.TripRequest{Source: "A", Destination: "B"})
	assert.Len(t, none.DayWisePlan, 3)
}
