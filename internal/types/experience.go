package types

// DateRange is a month-year span found in an experience header line.
// Text is the raw matched substring; Start is its byte offset in the source line.
type DateRange struct {
	Text  string `json:"text"`
	Start int    `json:"start"`
}

// End returns the byte offset one past the matched span
func (d DateRange) End() int {
	return d.Start + len(d.Text)
}

// ExperienceEntry is one job block segmented out of the experience section
type ExperienceEntry struct {
	Header   string     `json:"header"`
	Duration *DateRange `json:"duration,omitempty"`
	Subtitle string     `json:"subtitle,omitempty"`
	Bullets  []string   `json:"bullets"`
}

// HasDuration reports whether a date range was isolated from the header
func (e ExperienceEntry) HasDuration() bool {
	return e.Duration != nil
}

// DurationText returns the raw duration text, or "" when absent
func (e ExperienceEntry) DurationText() string {
	if e.Duration == nil {
		return ""
	}
	return e.Duration.Text
}
