package response

// MovieSummary is one search result
type MovieSummary struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Year   string `json:"year"`
	Poster string `json:"poster,omitempty"`
	Type   string `json:"type,omitempty"`
}

type MovieDetail struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Year       string   `json:"year"`
	Poster     string   `json:"poster,omitempty"`
	Plot       string   `json:"plot"`
	Runtime    string   `json:"runtime"`
	Genres     []string `json:"genres"`
	Rated      string   `json:"rated"`
	Director   string   `json:"director"`
	Actors     []string `json:"actors"`
	ImdbRating *float64 `json:"imdb_rating"`
}

type SearchResponse struct {
	Query   string         `json:"query"`
	Results []MovieSummary `json:"results"`
}
