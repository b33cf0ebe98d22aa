package dict

// DataSetKind identifies an installable data set
type DataSetKind string

const (
	DataSetKanji    DataSetKind = "kanji"
	DataSetRadicals DataSetKind = "radicals"
)

// KanjiEntry represents one character record from the kanji data set
type KanjiEntry struct {
	Literal     string   `json:"c"`            // The character itself
	Meanings    []string `json:"m"`            // Glosses in the data set's language
	OnReadings  []string `json:"on,omitempty"` // On'yomi readings
	KunReadings []string `json:"kun,omitempty"`
	Radical     string   `json:"rad,omitempty"` // Base radical
	StrokeCount int      `json:"sc,omitempty"`
	Grade       int      `json:"gr,omitempty"`   // School grade (0 = not taught)
	Frequency   int      `json:"freq,omitempty"` // Newspaper frequency rank (0 = unranked)
	JLPT        int      `json:"jlpt,omitempty"` // JLPT level (0 = none)
}

// RadicalEntry represents one record from the radicals data set
type RadicalEntry struct {
	ID       string   `json:"id"`
	Radical  string   `json:"r"`
	Number   int      `json:"n"`
	Meanings []string `json:"m,omitempty"`
}
