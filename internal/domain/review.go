package domain

import "time"

// Review is a client's rating of a provider. Reviews are append-only:
// once created they are never edited or deleted.
type Review struct {
	ID         int64
	ProviderID int64
	AuthorID   int64
	Rating     int // 1..5
	Comment    string
	CreatedAt  time.Time
}

// ReviewStats is the aggregate derived from a provider's review set.
type ReviewStats struct {
	Count   int
	Average float64
}

// CalculateReviewStats aggregates the current review set. The average
// of an empty set is 0, not NaN.
func CalculateReviewStats(reviews []Review) ReviewStats {
	stats := ReviewStats{Count: len(reviews)}
	if stats.Count == 0 {
		return stats
	}

	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	stats.Average = float64(sum) / float64(stats.Count)
	return stats
}

// EligibleForVerification derives the verification gate from review
// aggregates. It is a pure function of the current review set and must
// be recomputed on every evaluation, never cached across mutations.
func EligibleForVerification(stats ReviewStats) bool {
	return stats.Count >= MinReviewsForVerification &&
		stats.Average >= MinRatingForVerification
}
