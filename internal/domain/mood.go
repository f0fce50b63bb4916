package domain

import "time"

// DateLayout is the calendar date format of mood entries
const DateLayout = "2006-01-02"

// MoodType is one of the fixed predicted mood categories
type MoodType string

const (
	MoodPositive MoodType = "POSITIVE"
	MoodNeutral  MoodType = "NEUTRAL"
	MoodCozy     MoodType = "COZY"
	MoodRelaxed  MoodType = "RELAXED"
	MoodSad      MoodType = "SAD"
)

// MoodTypes lists every category in its fixed scan order
var MoodTypes = []MoodType{MoodPositive, MoodNeutral, MoodCozy, MoodRelaxed, MoodSad}

// Valid reports whether t is one of the enumerated categories
func (t MoodType) Valid() bool {
	for _, m := range MoodTypes {
		if m == t {
			return true
		}
	}
	return false
}

// MoodEntry is one user-recorded mood. Entries are immutable once stored.
type MoodEntry struct {
	ID        string        `json:"id"`
	Date      string        `json:"date"`
	MoodScore int           `json:"moodScore"`
	Mood      string        `json:"mood,omitempty"`
	Weather   *WeatherEntry `json:"weather,omitempty"`
	Notes     string        `json:"notes,omitempty"`
}

// Day parses the entry date
func (e MoodEntry) Day() (time.Time, error) {
	return time.Parse(DateLayout, e.Date)
}

// Prediction is the predictor output
type Prediction struct {
	Type              MoodType `json:"type"`
	Confidence        float64  `json:"confidence"`
	Recommendations   []string `json:"recommendations"`
	ExpectedMoodScore *int     `json:"expectedMoodScore,omitempty"`
}

// AnalysisResult wraps a prediction with explainability metadata
type AnalysisResult struct {
	Prediction        Prediction  `json:"prediction"`
	SimilarDaysCount  int         `json:"similarDaysCount"`
	TotalDaysAnalyzed int         `json:"totalDaysAnalyzed"`
	ConfidenceFactors []string    `json:"confidenceFactors"`
	SimilarDays       []MoodEntry `json:"similarDays"`
}

// AnalysisSummary is the analysis block of a prediction payload
type AnalysisSummary struct {
	SimilarDaysCount  int         `json:"similarDaysCount"`
	TotalDaysAnalyzed int         `json:"totalDaysAnalyzed"`
	ConfidenceFactors []string    `json:"confidenceFactors"`
	SimilarDays       []MoodEntry `json:"similarDays"`
}

// PredictionResult is the payload served by the prediction endpoints
type PredictionResult struct {
	Prediction     Prediction       `json:"prediction"`
	Weather        WeatherEntry     `json:"weather"`
	Recommendation string           `json:"recommendation"`
	Timestamp      time.Time        `json:"timestamp"`
	City           string           `json:"city,omitempty"`
	Analysis       *AnalysisSummary `json:"analysis,omitempty"`
}
