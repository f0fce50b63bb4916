package predictor

import "github.com/moodcast/backend/internal/domain"

var recommendations = map[domain.MoodType][]string{
	domain.MoodPositive: {
		"Channel your energy into activity: go for a run, bike ride, or a hike in nature.",
		"Perfect day to tackle a challenging project or start something new you’ve been putting off.",
		"Plan a social gathering or call a friend—your positivity is contagious!",
		"Dive into a creative hobby or passion project—your energy will fuel your ideas.",
		"Set new goals or plan an exciting future trip. Your optimism will help you dream big.",
	},
	domain.MoodCozy: {
		"Create a cozy sanctuary: soft blankets, warm tea, dim lighting, and a good book or movie.",
		"Have a self-care evening: a relaxing bath, face mask, and your favorite calming music.",
		"Spend quality time with a loved one or a pet with a board game or deep conversation.",
		"Try some gentle baking or cooking—comforting smells and tastes will enhance the mood.",
		"Practice mindfulness or journaling in a quiet, comfortable spot.",
	},
	domain.MoodRelaxed: {
		"A day for gentle activities and going with the flow",
		"Perfect for quiet hobbies and taking things slow",
		"Listen to your body and rest when needed",
		"Light stretching or a leisurely walk would feel great",
		"Enjoy some quiet time with a book or podcast",
	},
	domain.MoodNeutral: {
		"A great day for routine tasks and organization. Tidy your space or tackle your inbox.",
		"Balance is key. Schedule a mix of work and a pleasant activity you enjoy.",
		"Dedicate time to personal growth: learn a new skill or read an informative article.",
		"Connect with a colleague or acquaintance—low-pressure socializing can be refreshing.",
		"Go with the flow. Be open to spontaneous opportunities that might arise.",
	},
	domain.MoodSad: {
		"Be kind to yourself. Allow yourself to feel without judgment. It’s okay not to be okay.",
		"Reach out for support. Talk to a trusted friend, family member, or therapist.",
		"Find a small comfort: a nostalgic movie, a favorite comfort food, or a warm hug.",
		"Express your feelings through writing, art, or music. Let it out in a creative way.",
		"If you have the energy, a short walk outside or opening a window for fresh air can help shift your perspective, even just a little.",
	},
}

// Recommendations returns a copy of the fixed list for t.
// Categories missing from the table get the NEUTRAL list.
func Recommendations(t domain.MoodType) []string {
	list, ok := recommendations[t]
	if !ok {
		list = recommendations[domain.MoodNeutral]
	}
	out := make([]string, len(list))
	copy(out, list)
	return out
}
