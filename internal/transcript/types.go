package transcript

import (
	"fmt"
	"strings"
)

// Sentence is a timestamped transcript segment. Start and End are offsets in
// seconds from the beginning of the audio.
type Sentence struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Result is the product of a single transcription.
type Result struct {
	Text      string     `json:"text"`
	Sentences []Sentence `json:"sentences"`
}

// Format names an output encoding.
type Format string

const (
	FormatTXT  Format = "txt"
	FormatSRT  Format = "srt"
	FormatVTT  Format = "vtt"
	FormatJSON Format = "json"
)

// DefaultFormat is used when no format is requested.
const DefaultFormat = FormatTXT

var formatExtensions = map[Format]string{
	FormatTXT:  ".txt",
	FormatSRT:  ".srt",
	FormatVTT:  ".vtt",
	FormatJSON: ".json",
}

// Formats lists the supported formats in display order.
func Formats() []Format {
	return []Format{FormatTXT, FormatSRT, FormatVTT, FormatJSON}
}

// FormatNames returns the supported format names in display order.
func FormatNames() []string {
	formats := Formats()
	names := make([]string, 0, len(formats))
	for _, f := range formats {
		names = append(names, string(f))
	}
	return names
}

// ParseFormat converts user input into a Format. Matching is case-insensitive
// and ignores surrounding whitespace.
func ParseFormat(value string) (Format, error) {
	candidate := Format(strings.ToLower(strings.TrimSpace(value)))
	if candidate == "" {
		return DefaultFormat, nil
	}
	if _, ok := formatExtensions[candidate]; ok {
		return candidate, nil
	}
	return "", fmt.Errorf("invalid format %q (choose from %s)", value, strings.Join(FormatNames(), ", "))
}

// Valid reports whether f is one of the supported formats.
func (f Format) Valid() bool {
	_, ok := formatExtensions[f]
	return ok
}

// Extension returns the file extension, including the leading dot, for f.
// Unknown formats map to ".txt".
func (f Format) Extension() string {
	if ext, ok := formatExtensions[f]; ok {
		return ext
	}
	return formatExtensions[FormatTXT]
}

func (f Format) String() string {
	return string(f)
}
