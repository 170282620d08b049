package domain

// Preference is the rating a user has given a movie title.
type Preference int

const (
	PreferenceNone Preference = iota
	PreferenceLike
	PreferenceDislike
)

func (p Preference) String() string {
	switch p {
	case PreferenceLike:
		return "like"
	case PreferenceDislike:
		return "dislike"
	default:
		return "none"
	}
}

// Stats summarizes the stored preferences.
type Stats struct {
	LikedCount    int
	DislikedCount int
	TotalCount    int
}

// Feedback is a snapshot of the liked and disliked title sequences.
type Feedback struct {
	Liked    []string
	Disliked []string
}

// IsEmpty reports whether neither list has any titles.
func (f Feedback) IsEmpty() bool {
	return len(f.Liked) == 0 && len(f.Disliked) == 0
}
