package transcript

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

const vttHeader = "WEBVTT"

// Render serializes result in the requested format. Unrecognized formats
// produce the plain transcript text.
func Render(result Result, format Format) (string, error) {
	switch format {
	case FormatTXT:
		return result.Text, nil
	case FormatJSON:
		return renderJSON(result)
	case FormatSRT:
		return renderCues(result.Sentences, StyleSRT, ""), nil
	case FormatVTT:
		return renderCues(result.Sentences, StyleVTT, vttHeader), nil
	default:
		return result.Text, nil
	}
}

func renderJSON(result Result) (string, error) {
	payload := Result{Text: result.Text, Sentences: result.Sentences}
	if payload.Sentences == nil {
		payload.Sentences = []Sentence{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(payload); err != nil {
		return "", err
	}
	return keepLineSeparators(strings.TrimSuffix(buf.String(), "\n")), nil
}

// keepLineSeparators turns the \u2028 and \u2029 escapes encoding/json
// always emits back into literal characters. An escape preceded by an
// escaped backslash is text, not an escape, and is left alone.
func keepLineSeparators(encoded string) string {
	if !strings.Contains(encoded, `\u202`) {
		return encoded
	}
	var b strings.Builder
	b.Grow(len(encoded))
	backslashes := 0
	for i := 0; i < len(encoded); i++ {
		c := encoded[i]
		if c == '\\' && backslashes%2 == 0 {
			switch {
			case strings.HasPrefix(encoded[i:], `\u2028`):
				b.WriteRune('\u2028')
				i += len(`\u2028`) - 1
				backslashes = 0
				continue
			case strings.HasPrefix(encoded[i:], `\u2029`):
				b.WriteRune('\u2029')
				i += len(`\u2029`) - 1
				backslashes = 0
				continue
			}
		}
		if c == '\\' {
			backslashes++
		} else {
			backslashes = 0
		}
		b.WriteByte(c)
	}
	return b.String()
}

// renderCues writes one block per sentence: counter, time range, text, and a
// blank line. A non-empty header is emitted first followed by a blank line.
func renderCues(sentences []Sentence, style TimestampStyle, header string) string {
	var b strings.Builder
	if header != "" {
		b.WriteString(header)
		b.WriteString("\n\n")
	}
	for i, sentence := range sentences {
		b.WriteString(strconv.Itoa(i + 1))
		b.WriteByte('\n')
		b.WriteString(FormatTimestamp(sentence.Start, style))
		b.WriteString(" --> ")
		b.WriteString(FormatTimestamp(sentence.End, style))
		b.WriteByte('\n')
		b.WriteString(sentence.Text)
		b.WriteString("\n\n")
	}
	return b.String()
}
