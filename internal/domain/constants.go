package domain

// Slot generation constants
const (
	// SlotStepMinutes is the fixed granularity used to enumerate candidate
	// slot start times. Service durations do not have to be a multiple of it.
	SlotStepMinutes = 15
)

// Verification eligibility thresholds
const (
	MinReviewsForVerification = 3
	MinRatingForVerification  = 4.0
)

// Business validation constants
const (
	MinRating = 1
	MaxRating = 5

	MinServiceDurationMinutes = 5
	MaxServiceDurationMinutes = 480 // 8 hours

	MaxCommentLength            = 1000
	MaxCancellationReasonLength = 500
	MaxServiceNameLength        = 120
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
