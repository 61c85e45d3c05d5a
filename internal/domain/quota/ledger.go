package quota

import (
	"sort"
	"sync"
	"time"
)

// Class identifies a metered resource.
type Class string

const (
	ClassCharacter    Class = "character"
	ClassDocument     Class = "document"
	ClassTeamDocument Class = "team_document"
)

// Classes lists every class in evaluation order.
var Classes = []Class{ClassCharacter, ClassDocument, ClassTeamDocument}

func classRank(c Class) int {
	for i, cls := range Classes {
		if cls == c {
			return i
		}
	}
	return len(Classes)
}

// Allowance enables a class on a ledger. Unlimited classes are counted by
// nobody and never refuse.
type Allowance struct {
	Class     Class
	Limit     int64
	Unlimited bool
}

// Request asks for amount units of class.
type Request struct {
	Class  Class
	Amount int64
}

// Meter is a read-only view of one enabled class.
type Meter struct {
	Class     Class
	Count     int64
	Limit     int64
	Unlimited bool
}

type meter struct {
	count     int64
	limit     int64
	unlimited bool
}

// Ledger tracks per-class consumption for one account. Safe for concurrent use.
type Ledger struct {
	mu     sync.Mutex
	meters map[Class]*meter
}

// NewLedger returns a ledger with the given classes enabled and zero counts.
func NewLedger(allowances ...Allowance) *Ledger {
	l := &Ledger{meters: make(map[Class]*meter, len(allowances))}
	for _, a := range allowances {
		l.meters[a.Class] = &meter{limit: a.Limit, unlimited: a.Unlimited}
	}
	return l
}

// Enabled reports whether class is metered on this ledger.
func (l *Ledger) Enabled(class Class) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.meters[class]
	return ok
}

// TryConsume adds amount to class if that keeps the count within the limit.
// Classes that are disabled or unlimited always succeed and are not counted.
func (l *Ledger) TryConsume(class Class, amount int64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.consumeLocked(class, amount)
}

// TryConsumeAll evaluates requests in class order and stops at the first
// class that would exceed its limit, returning it. Increments made for earlier
// classes in the same call are kept.
func (l *Ledger) TryConsumeAll(requests ...Request) (Class, bool) {
	ordered := make([]Request, len(requests))
	copy(ordered, requests)
	sort.SliceStable(ordered, func(i, j int) bool {
		return classRank(ordered[i].Class) < classRank(ordered[j].Class)
	})

	l.mu.Lock()
	defer l.mu.Unlock()
	for _, r := range ordered {
		if !l.consumeLocked(r.Class, r.Amount) {
			return r.Class, false
		}
	}
	return "", true
}

func (l *Ledger) consumeLocked(class Class, amount int64) bool {
	m, ok := l.meters[class]
	if !ok || m.unlimited {
		return true
	}
	if m.count+amount > m.limit {
		return false
	}
	m.count += amount
	return true
}

// Snapshot returns the enabled classes in evaluation order.
func (l *Ledger) Snapshot() []Meter {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Meter, 0, len(l.meters))
	for _, class := range Classes {
		m, ok := l.meters[class]
		if !ok {
			continue
		}
		out = append(out, Meter{Class: class, Count: m.count, Limit: m.limit, Unlimited: m.unlimited})
	}
	return out
}

// Period is a billing window.
type Period struct {
	Start time.Time
	End   time.Time
}

// BillingPeriod returns the calendar month containing now, in UTC, with both
// boundaries shifted by offset.
func BillingPeriod(now time.Time, offset time.Duration) Period {
	shifted := now.UTC().Add(-offset)
	start := time.Date(shifted.Year(), shifted.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(shifted.Year(), shifted.Month()+1, 1, 0, 0, 0, 0, time.UTC)
	return Period{Start: start.Add(offset), End: end.Add(offset)}
}
