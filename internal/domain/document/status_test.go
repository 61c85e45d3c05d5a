package document

import (
	"testing"
	"time"
)

func TestDeriveStatus(t *testing.T) {
	timing := Timing{QueueDelay: 2 * time.Second, TranslateDelay: 3 * time.Second}

	tests := []struct {
		name          string
		age           time.Duration
		timing        Timing
		hasOutput     bool
		errMessage    string
		wantStatus    Status
		wantRemaining int
	}{
		{"queued at start", 0, timing, true, "", StatusQueued, 0},
		{"queued just before boundary", 1999 * time.Millisecond, timing, true, "", StatusQueued, 0},
		{"translating", 4 * time.Second, timing, true, "", StatusTranslating, 1},
		{"translating rounds", 2600 * time.Millisecond, timing, true, "", StatusTranslating, 2},
		{"done after delays", 6 * time.Second, timing, true, "", StatusDone, 0},
		{"done exactly at boundary", 5 * time.Second, timing, true, "", StatusDone, 0},
		{"no output stays translating", 6 * time.Second, timing, false, "", StatusTranslating, 0},
		{"zero delays done immediately", 0, Timing{}, true, "", StatusDone, 0},
		{"error wins", 0, timing, true, "Translation error triggered", StatusError, 0},
		{"error without output", 10 * time.Second, Timing{}, false, "boom", StatusError, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, remaining := DeriveStatus(tt.age, tt.timing, tt.hasOutput, tt.errMessage)
			if status != tt.wantStatus {
				t.Errorf("status = %s, want %s", status, tt.wantStatus)
			}
			if remaining != tt.wantRemaining {
				t.Errorf("seconds remaining = %d, want %d", remaining, tt.wantRemaining)
			}
		})
	}
}

func TestFormatLookup(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		known       bool
		implemented bool
		family      Family
	}{
		{"text", "notes.TXT", true, true, FamilyText},
		{"html", "page.html", true, true, FamilyHTML},
		{"htm", "page.htm", true, true, FamilyHTML},
		{"docx", "report.docx", true, false, FamilyOther},
		{"pdf", "scan.pdf", true, false, FamilyOther},
		{"unknown", "binary.exe", false, false, ""},
		{"no extension", "README", false, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, ok := FormatForFilename(tt.filename)
			if ok != tt.known {
				t.Fatalf("known = %v, want %v", ok, tt.known)
			}
			if f.Implemented != tt.implemented || f.Family != tt.family {
				t.Errorf("got %+v", f)
			}
		})
	}
}

func TestFormatForOutput(t *testing.T) {
	if f, ok := FormatForOutput("HTML"); !ok || f.Extension != ".html" {
		t.Errorf("FormatForOutput(HTML) = %+v, %v", f, ok)
	}
	if f, ok := FormatForOutput(".txt"); !ok || f.Family != FamilyText {
		t.Errorf("FormatForOutput(.txt) = %+v, %v", f, ok)
	}
	if _, ok := FormatForOutput("exe"); ok {
		t.Error("exe should not be recognized")
	}
	if got := outputFilename("a.b.txt", formats[".html"]); got != "a.b.html" {
		t.Errorf("outputFilename = %q", got)
	}
}
