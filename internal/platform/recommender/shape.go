package recommender

import "math"

// Recommendation is one normalized feed item as served to clients.
type Recommendation struct {
	EventID      string `json:"eventId"`
	Title        string `json:"title"`
	Venue        string `json:"venue"`
	Date         string `json:"date"` // YYYY-MM-DD, empty when unknown
	MainCategory string `json:"main_category"`
	SubCategory  string `json:"sub_category"`
	Description  string `json:"description"`
	ImageURL     string `json:"imageUrl,omitempty"`
	Score        Score  `json:"score"`
}

// Score is the total relevance score with its per-signal breakdown.
type Score struct {
	Total     float64        `json:"total"`
	Breakdown ScoreBreakdown `json:"breakdown"`
}

type ScoreBreakdown struct {
	Clicks    float64 `json:"clicks"`
	RSVPs     float64 `json:"rsvps"`
	Interests float64 `json:"interests"`
}

// rawRecommendation tolerates missing or null fields from the scorer;
// pointers capture absence so shape can apply defaults.
type rawRecommendation struct {
	EventID      string    `json:"eventId"`
	Title        string    `json:"title"`
	Venue        string    `json:"venue"`
	Date         string    `json:"date"`
	MainCategory string    `json:"main_category"`
	SubCategory  string    `json:"sub_category"`
	Description  string    `json:"description"`
	ImageURL     string    `json:"imageUrl"`
	Score        *rawScore `json:"score"`
}

type rawScore struct {
	Total     *float64 `json:"total"`
	Breakdown *struct {
		Clicks    *float64 `json:"clicks"`
		RSVPs     *float64 `json:"rsvps"`
		Interests *float64 `json:"interests"`
	} `json:"breakdown"`
}

// shape converts a raw scorer item into the client-facing form: defaults
// for absent fields, scores rounded to three decimals, date truncated to
// the calendar day.
func shape(raw rawRecommendation) Recommendation {
	rec := Recommendation{
		EventID:      raw.EventID,
		Title:        defaultStr(raw.Title, "Untitled Event"),
		Venue:        defaultStr(raw.Venue, "TBD"),
		Date:         truncateDate(raw.Date),
		MainCategory: defaultStr(raw.MainCategory, "Other"),
		SubCategory:  defaultStr(raw.SubCategory, "Other"),
		Description:  raw.Description,
		ImageURL:     raw.ImageURL,
	}
	if raw.Score != nil {
		rec.Score.Total = round3(deref(raw.Score.Total))
		if b := raw.Score.Breakdown; b != nil {
			rec.Score.Breakdown = ScoreBreakdown{
				Clicks:    round3(deref(b.Clicks)),
				RSVPs:     round3(deref(b.RSVPs)),
				Interests: round3(deref(b.Interests)),
			}
		}
	}
	return rec
}

// truncateDate keeps only the YYYY-MM-DD prefix of a timestamp string.
func truncateDate(s string) string {
	if len(s) > 10 {
		return s[:10]
	}
	return s
}

func defaultStr(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func deref(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
