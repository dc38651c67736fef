package prospect

import "time"

// Business is one deduplicated result from a business prospecting search.
type Business struct {
	PlaceID    string  `json:"placeId"`
	Name       string  `json:"name"`
	Address    string  `json:"address,omitempty"`
	Rating     float64 `json:"rating,omitempty"`
	Phone      string  `json:"phone,omitempty"`
	Website    string  `json:"website,omitempty"`
	Latitude   float64 `json:"lat,omitempty"`
	Longitude  float64 `json:"lng,omitempty"`
	SearchTerm string  `json:"search_term,omitempty"`
}

// Search archives one prospecting run and its results. Old searches are
// swept by a scheduled job outside this server (30-day retention).
type Search struct {
	ID        string     `json:"id"`
	Category  string     `json:"category"`
	Location  string     `json:"location"`
	Results   []Business `json:"results"`
	CreatedAt time.Time  `json:"createdAt"`
}
