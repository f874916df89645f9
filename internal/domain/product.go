package domain

import "math"

type Category string

const (
	CategoryClothing    Category = "Clothing"
	CategoryElectronics Category = "Electronics"
	CategoryHome        Category = "Home"
	CategoryAccessories Category = "Accessories"
)

// Review is owned by its parent product and immutable once written.
type Review struct {
	ID       string `json:"id"`
	UserID   string `json:"userId"`
	UserName string `json:"userName"`
	Rating   int    `json:"rating"` // 1..5
	Comment  string `json:"comment"`
	Date     string `json:"date"` // RFC3339
}

type Product struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Price       float64  `json:"price"`
	Category    Category `json:"category"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	Rating      float64  `json:"rating"`
	Reviews     int      `json:"reviews"` // always len(ReviewsList) after a review lands
	ReviewsList []Review `json:"reviewsList"`
	Features    []string `json:"features"`
	Stock       int      `json:"stock"`
}

// AverageRating returns the mean review rating rounded to one decimal.
// An empty list keeps the fallback (the author-set catalog rating).
func AverageRating(reviews []Review, fallback float64) float64 {
	if len(reviews) == 0 {
		return fallback
	}
	total := 0
	for _, r := range reviews {
		total += r.Rating
	}
	return math.Round(float64(total)/float64(len(reviews))*10) / 10
}
