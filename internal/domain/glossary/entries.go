package glossary

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// EntriesFormat is the wire encoding of dictionary entries.
type EntriesFormat string

const (
	FormatTSV EntriesFormat = "tsv"
	FormatCSV EntriesFormat = "csv"
)

// Entry maps one source phrase to its target phrase.
type Entry struct {
	Source string
	Target string
}

// ParseEntries decodes entries in the given format for the pair source→target.
func ParseEntries(format EntriesFormat, raw, sourceLang, targetLang string) ([]Entry, error) {
	switch format {
	case FormatTSV:
		return parseTSV(raw)
	case FormatCSV:
		return parseCSV(raw, sourceLang, targetLang)
	default:
		return nil, ErrEntriesFormat
	}
}

// parseTSV reads one "source<TAB>target" pair per line. Lines are trimmed
// and blank lines skipped; indices in errors count raw lines.
func parseTSV(raw string) ([]Entry, error) {
	var entries []Entry
	seen := make(map[string]int)
	positions := make(map[string]int)

	offset := 0
	for index, line := range strings.Split(raw, "\n") {
		position := offset
		offset += len(line) + 1

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		tab := strings.IndexByte(line, '\t')
		if tab < 0 {
			return nil, ErrInvalidEntries.WithDetail(fmt.Sprintf(
				"Key with the index %d (starting at position %d) misses tab separator", index, position))
		}
		source, target := line[:tab], line[tab+1:]
		if prev, dup := seen[source]; dup {
			return nil, ErrInvalidEntries.WithDetail(fmt.Sprintf(
				"Key with the index %d (starting at position %d) duplicates key with the index %d (starting at position %d)",
				index, position, prev, positions[source]))
		}
		seen[source] = index
		positions[source] = position
		entries = append(entries, Entry{Source: source, Target: target})
	}
	if len(entries) == 0 {
		return nil, ErrInvalidEntries.WithDetail("Missing or invalid argument: entries")
	}
	return entries, nil
}

// parseCSV reads rows of source, target and optional source and target
// language columns. Rows for other language pairs are skipped.
func parseCSV(raw, sourceLang, targetLang string) ([]Entry, error) {
	if raw == "" {
		return nil, ErrInvalidEntries.WithDetail("Missing or invalid argument: entries")
	}

	r := csv.NewReader(strings.NewReader(raw))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var entries []Entry
	seen := make(map[string]struct{})
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, ErrInvalidEntries.WithDetail(err.Error())
		}
		if len(record) < 2 {
			continue
		}
		if len(record) >= 4 {
			if !strings.EqualFold(record[2], sourceLang) || !strings.EqualFold(record[3], targetLang) {
				continue
			}
		}
		source, target := record[0], record[1]
		if source == "" || target == "" {
			continue
		}
		if _, dup := seen[source]; dup {
			return nil, ErrInvalidEntries.WithDetail(fmt.Sprintf("Duplicate source entry %q", source))
		}
		seen[source] = struct{}{}
		entries = append(entries, Entry{Source: source, Target: target})
	}
	if len(entries) == 0 {
		return nil, ErrInvalidEntries
	}
	return entries, nil
}

// EncodeTSV renders entries as TSV, one pair per line.
func EncodeTSV(entries []Entry) string {
	var b strings.Builder
	for i, e := range entries {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(e.Source)
		b.WriteByte('\t')
		b.WriteString(e.Target)
	}
	return b.String()
}
