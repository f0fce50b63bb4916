package predictor

import "github.com/moodcast/backend/internal/domain"

type moodBucket struct {
	count    int
	avgScore float64
}

// distribution counts entries per category and keeps a running mean score
type distribution map[domain.MoodType]*moodBucket

func newDistribution(entries []domain.MoodEntry) distribution {
	d := make(distribution)
	for _, e := range entries {
		d.add(entryMoodType(e), float64(e.MoodScore))
	}
	return d
}

func (d distribution) add(t domain.MoodType, score float64) {
	b, ok := d[t]
	if !ok {
		b = &moodBucket{}
		d[t] = b
	}
	b.count++
	b.avgScore += (score - b.avgScore) / float64(b.count)
}

// dominant returns the most frequent category. Ties go to the earlier
// category in domain.MoodTypes; an empty distribution yields NEUTRAL.
func (d distribution) dominant() (domain.MoodType, *moodBucket) {
	best := domain.MoodNeutral
	bestCount := 0
	for _, t := range domain.MoodTypes {
		if b, ok := d[t]; ok && b.count > bestCount {
			best, bestCount = t, b.count
		}
	}
	return best, d[best]
}

// analysisMoodType maps a score to a category, with SAD at the bottom
func analysisMoodType(score int) domain.MoodType {
	switch {
	case score >= 8:
		return domain.MoodPositive
	case score >= 6:
		return domain.MoodNeutral
	case score >= 4:
		return domain.MoodCozy
	}
	return domain.MoodSad
}

// entryMoodType lets an explicit "sad" or "happy" label override the score
func entryMoodType(e domain.MoodEntry) domain.MoodType {
	t := analysisMoodType(e.MoodScore)
	switch {
	case e.Mood == "sad" && t != domain.MoodSad:
		return domain.MoodSad
	case e.Mood == "happy" && t == domain.MoodSad:
		return domain.MoodPositive
	}
	return t
}
