package domain

// PreferenceStore keeps the liked and disliked title sets.
// Reads never fail: missing or corrupt records read as empty.
// Writes are best effort and never surface an error to the caller.
type PreferenceStore interface {
	GetLiked() []string
	GetDisliked() []string

	AddLiked(title string)
	AddDisliked(title string)
	RemoveLiked(title string)
	RemoveDisliked(title string)

	IsLiked(title string) bool
	IsDisliked(title string) bool

	// SetPreference moves title into exactly one of the sets (or neither).
	SetPreference(title string, pref Preference)
	// Preference returns the set title currently belongs to.
	Preference(title string) Preference

	ClearAll()
	Stats() Stats

	Close() error
}

// Rater is the narrow slice of PreferenceStore a movie card needs.
type Rater interface {
	Preference(title string) Preference
	SetPreference(title string, pref Preference)
}
