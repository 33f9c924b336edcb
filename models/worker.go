package models

import (
	"math"
	"time"
)

// Service categories a worker can register under.
var ServiceTypes = []string{"cleaning", "plumbing", "carpentry", "gardening"}

// IsValidServiceType reports whether t is a known service category.
func IsValidServiceType(t string) bool {
	for _, s := range ServiceTypes {
		if s == t {
			return true
		}
	}
	return false
}

// Worker is the profile record linking an account to a service category and
// a public reputation. Rating stays 0 until the first rating arrives and is
// only ever mutated through the rating fold.
type Worker struct {
	ID           string    `bson:"id" json:"id"`
	UserID       string    `bson:"user_id" json:"user_id"`
	ServiceType  string    `bson:"service_type" json:"service_type"`
	Experience   string    `bson:"experience" json:"experience"`
	Bio          string    `bson:"bio" json:"bio"`
	IDDocument   string    `bson:"id_document" json:"-"`
	IsVerified   bool      `bson:"is_verified" json:"is_verified"`
	Rating       float64   `bson:"rating" json:"rating"`
	TotalRatings int       `bson:"total_ratings" json:"total_ratings"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}

// NextRating folds one score into the rolling average without mutating the
// receiver. With TotalRatings == 0 the result is the score itself; the
// result is rounded half-up to 2 decimal places to bound drift over many
// updates.
func (w *Worker) NextRating(score float64) float64 {
	next := (w.Rating*float64(w.TotalRatings) + score) / float64(w.TotalRatings+1)
	return Round2(next)
}

// Round2 rounds half-up to 2 decimal places.
func Round2(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}

// WorkerSummary is the public directory view of a worker, joined with the
// owning account's contact fields.
type WorkerSummary struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Phone        string  `json:"phone"`
	Address      string  `json:"address,omitempty"`
	ServiceType  string  `json:"service_type"`
	Experience   string  `json:"experience"`
	Bio          string  `json:"bio"`
	IsVerified   bool    `json:"is_verified"`
	Rating       float64 `json:"rating"`
	TotalRatings int     `json:"total_ratings"`
}
