package domain

// Color is a short color code as returned by the lookup service (e.g. "W", "U").
type Color string

const (
	ColorWhite Color = "W"
	ColorBlue  Color = "U"
	ColorBlack Color = "B"
	ColorRed   Color = "R"
	ColorGreen Color = "G"
)

// ImageURIs is an opaque bundle of artwork URLs. The core never parses them.
type ImageURIs struct {
	Small      string `json:"small,omitempty" yaml:"small,omitempty"`
	Normal     string `json:"normal,omitempty" yaml:"normal,omitempty"`
	Large      string `json:"large,omitempty" yaml:"large,omitempty"`
	PNG        string `json:"png,omitempty" yaml:"png,omitempty"`
	ArtCrop    string `json:"art_crop,omitempty" yaml:"art_crop,omitempty"`
	BorderCrop string `json:"border_crop,omitempty" yaml:"border_crop,omitempty"`
}

// ParsedEntry is one (quantity, name) pair derived from one non-blank input line.
type ParsedEntry struct {
	Line     int    // 1-based physical line number
	Raw      string // trimmed line text
	Quantity int
	Name     string
}

// CardRecord is the lookup service's canonical view of a card.
// Colors and ImageURIs are nil when the service did not provide them.
type CardRecord struct {
	Name      string
	Colors    []Color
	ImageURIs *ImageURIs
}

// OutputCard is the serialized result for one entry. Name is the user-typed
// name, not the canonical one. Absent colors or images serialize as null.
type OutputCard struct {
	Quantity  int        `json:"quantity"`
	Name      string     `json:"name"`
	Colors    []Color    `json:"colors"`
	ImageURIs *ImageURIs `json:"image_uris"`
}

// NewOutputCard merges a parsed entry with the record returned by the lookup.
func NewOutputCard(e ParsedEntry, rec CardRecord) OutputCard {
	out := OutputCard{
		Quantity: e.Quantity,
		Name:     e.Name,
	}
	if rec.Colors != nil {
		out.Colors = make([]Color, len(rec.Colors))
		copy(out.Colors, rec.Colors)
	}
	if rec.ImageURIs != nil {
		imgs := *rec.ImageURIs
		out.ImageURIs = &imgs
	}
	return out
}
