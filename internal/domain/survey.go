package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// NetPromoterScore classifies a respondent.
type NetPromoterScore string

const (
	NPSPromoter  NetPromoterScore = "Promoter"
	NPSPassive   NetPromoterScore = "Passive"
	NPSDetractor NetPromoterScore = "Detractor"
)

// Survey is post-event feedback tied to a user, an event and the specific
// registration. Rating fields are constrained to 1..5 by the schema.
// OverallScore is derived by application code and stored as given; the store
// never computes it.
type Survey struct {
	ID                   int64
	UserID               int64
	EventID              int64
	RegistrationID       int64
	SatisfactionRating   int
	UsefulnessRating     int
	InstructorRating     int
	RecommendationRating int
	NetPromoterScore     NetPromoterScore
	Comments             string
	OverallScore         decimal.Decimal
	CreatedAt            time.Time
}

// Ratings returns the four rating fields in a fixed order.
func (s Survey) Ratings() [4]int {
	return [4]int{s.SatisfactionRating, s.UsefulnessRating, s.InstructorRating, s.RecommendationRating}
}
