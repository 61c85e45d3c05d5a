package glossary

import (
	"strings"
	"sync"
	"time"

	"github.com/janhq/translate-mock/internal/domain/language"
	"github.com/janhq/translate-mock/internal/utils/platformerrors"
)

func validation(message string) *platformerrors.PlatformError {
	return platformerrors.Sentinel(platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, message)
}

var (
	ErrGlossaryNotFound    = platformerrors.Sentinel(platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound, "Glossary not found")
	ErrDictionaryNotFound  = platformerrors.Sentinel(platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound, "Dictionary not found")
	ErrInvalidGlossaryID   = validation("Invalid glossary ID")
	ErrMissingName         = validation("Missing or invalid argument: name")
	ErrMissingDictionaries = validation("Glossary dictionaries must be provided")
	ErrTooManyDictionaries = validation("Only dictionaries of length 0 or 1 are supported")
	ErrMissingLanguage     = validation("Source and target language for dictionary are required")
	ErrUnsupportedPair     = validation("Unsupported glossary source and target language pair")
	ErrEntriesFormat       = validation("Value for entries_format not supported.")
	ErrInvalidEntries      = validation("Invalid glossary entries provided")
)

// DictionaryInput is a dictionary as submitted by a client.
type DictionaryInput struct {
	SourceLang string
	TargetLang string
	Entries    string
	Format     EntriesFormat
}

// Dictionary is the entry list for one ordered language pair. It is
// immutable once built; replacing a dictionary swaps the pointer.
type Dictionary struct {
	SourceLang string
	TargetLang string
	Entries    []Entry

	index map[string]string
}

func newDictionary(sourceLang, targetLang string, entries []Entry) *Dictionary {
	d := &Dictionary{
		SourceLang: language.BaseCode(sourceLang),
		TargetLang: language.BaseCode(targetLang),
		Entries:    entries,
		index:      make(map[string]string, len(entries)),
	}
	for _, e := range entries {
		d.index[e.Source] = e.Target
	}
	return d
}

func (d *Dictionary) matches(sourceLang, targetLang string) bool {
	return d.SourceLang == language.BaseCode(sourceLang) && d.TargetLang == language.BaseCode(targetLang)
}

// Translate returns the target phrase for an exact source phrase.
func (d *Dictionary) Translate(phrase string) (string, bool) {
	out, ok := d.index[phrase]
	return out, ok
}

// DictionaryInfo summarizes a dictionary.
type DictionaryInfo struct {
	SourceLang string
	TargetLang string
	EntryCount int
}

// Info is a point-in-time view of a glossary.
type Info struct {
	ID           string
	Name         string
	CreatedAt    time.Time
	Dictionaries []DictionaryInfo
}

// Glossary is a named set of dictionaries owned by one account.
type Glossary struct {
	ID        string
	Owner     string
	CreatedAt time.Time

	mu           sync.RWMutex
	name         string
	dictionaries []*Dictionary
}

// Info returns a snapshot of the glossary.
func (g *Glossary) Info() Info {
	g.mu.RLock()
	defer g.mu.RUnlock()
	info := Info{ID: g.ID, Name: g.name, CreatedAt: g.CreatedAt, Dictionaries: make([]DictionaryInfo, 0, len(g.dictionaries))}
	for _, d := range g.dictionaries {
		info.Dictionaries = append(info.Dictionaries, DictionaryInfo{
			SourceLang: strings.ToLower(d.SourceLang),
			TargetLang: strings.ToLower(d.TargetLang),
			EntryCount: len(d.Entries),
		})
	}
	return info
}

// Dictionary returns the dictionary for the pair, compared by base language.
func (g *Glossary) Dictionary(sourceLang, targetLang string) (*Dictionary, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	for _, d := range g.dictionaries {
		if d.matches(sourceLang, targetLang) {
			return d, true
		}
	}
	return nil, false
}

// Translate looks up phrase in the dictionary for the pair.
func (g *Glossary) Translate(phrase, sourceLang, targetLang string) (string, bool) {
	d, ok := g.Dictionary(sourceLang, targetLang)
	if !ok {
		return "", false
	}
	return d.Translate(phrase)
}

func (g *Glossary) rename(name string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.name = name
}

// putDictionary replaces the dictionary with the same pair or appends d.
func (g *Glossary) putDictionary(d *Dictionary) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for i, existing := range g.dictionaries {
		if existing.matches(d.SourceLang, d.TargetLang) {
			g.dictionaries[i] = d
			return
		}
	}
	g.dictionaries = append(g.dictionaries, d)
}

func (g *Glossary) removeDictionary(sourceLang, targetLang string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	for i, d := range g.dictionaries {
		if d.matches(sourceLang, targetLang) {
			g.dictionaries = append(g.dictionaries[:i:i], g.dictionaries[i+1:]...)
			return true
		}
	}
	return false
}
