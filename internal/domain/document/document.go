package document

import (
	"sync"
	"time"
)

// Document is an uploaded file moving through simulated translation.
type Document struct {
	ID    string
	Key   string
	Owner string

	Filename     string
	Format       Format
	OutputFormat Format

	SourceLang string
	TargetLang string
	GlossaryID string

	BilledCharacters int64
	CreatedAt        time.Time

	mu         sync.Mutex
	inputKey   string
	outputKey  string
	errMessage string
	released   bool
}

// Snapshot is the derived state of a document at one instant.
type Snapshot struct {
	ID               string
	Status           Status
	SecondsRemaining int
	BilledCharacters int64
	ErrorMessage     string
}

func (d *Document) snapshot(now time.Time, t Timing) Snapshot {
	d.mu.Lock()
	hasOutput := d.outputKey != ""
	errMessage := d.errMessage
	d.mu.Unlock()

	status, remaining := DeriveStatus(now.Sub(d.CreatedAt), t, hasOutput, errMessage)
	return Snapshot{
		ID:               d.ID,
		Status:           status,
		SecondsRemaining: remaining,
		BilledCharacters: d.BilledCharacters,
		ErrorMessage:     errMessage,
	}
}

// DownloadName is the file name the result is delivered under.
func (d *Document) DownloadName() string {
	if d.OutputFormat.Extension == "" || d.OutputFormat.Extension == d.Format.Extension {
		return d.Filename
	}
	return outputFilename(d.Filename, d.OutputFormat)
}

// takeArtifacts detaches all artifact keys and marks the document released,
// so exactly one caller deletes each artifact.
func (d *Document) takeArtifacts() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.released = true
	var keys []string
	if d.inputKey != "" {
		keys = append(keys, d.inputKey)
		d.inputKey = ""
	}
	if d.outputKey != "" {
		keys = append(keys, d.outputKey)
		d.outputKey = ""
	}
	return keys
}

func (d *Document) takeInput() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	key := d.inputKey
	d.inputKey = ""
	return key
}

func (d *Document) fail(message string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.errMessage == "" {
		d.errMessage = message
	}
}

// recordOutput attaches the output artifact. It reports false when the
// document was released in the meantime and the caller still owns key.
func (d *Document) recordOutput(key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.released {
		return false
	}
	d.outputKey = key
	return true
}

func (d *Document) output() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.outputKey
}
