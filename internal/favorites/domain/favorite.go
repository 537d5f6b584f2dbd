package domain

import "time"

// Favorite is one saved movie for one user. The catalog fields are denormalized
// at save time so listing favorites never touches the upstream API.
type Favorite struct {
	ID             string
	UserID         string
	MovieSlug      string
	MovieName      string
	MoviePosterURL *string
	MovieThumbURL  *string
	MovieYear      *int
	CreatedAt      time.Time
}
