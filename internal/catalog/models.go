package catalog

// Movie mirrors the directory collaborator's movie record.
type Movie struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Synopsis    string  `json:"synopsis"`
	Genre       string  `json:"genre"`
	Rating      float64 `json:"rating"`
	Duration    int     `json:"duration"`
	ImageURL    string  `json:"imageUrl"`
	TrailerURL  string  `json:"trailerUrl"`
	ReleaseDate string  `json:"releaseDate"`
}

// Session is a scheduled showtime of a movie in a specific room. Price is the
// base price per standard seat and must be positive.
type Session struct {
	ID             string  `json:"id"`
	MovieID        string  `json:"movieId"`
	Date           string  `json:"date"`
	Time           string  `json:"time"`
	RoomNumber     int     `json:"roomNumber"`
	Format         string  `json:"format"`
	Language       string  `json:"language"`
	AvailableSeats int     `json:"availableSeats"`
	Price          float64 `json:"price"`
}
