// Package stats keeps in-memory daily battle records (in-memory for demo).
package stats

import (
	"sync"
	"time"
)

// TopHit is the biggest single hit landed today.
type TopHit struct {
	User    string `json:"user"`
	Pokemon string `json:"pokemon"`
	Move    string `json:"move"`
	Damage  int    `json:"damage"`
	Crit    bool   `json:"crit,omitempty"`
}

// FastestWin is today's quickest finished battle, in turns.
type FastestWin struct {
	User   string `json:"user"`
	Turns  int    `json:"turns"`
	Winner string `json:"winner"`
}

// Daily bundles the records for one UTC day.
type Daily struct {
	Date       string      `json:"date"`
	TopHit     *TopHit     `json:"top_hit,omitempty"`
	FastestWin *FastestWin `json:"fastest_win,omitempty"`
}

var (
	statsMu sync.Mutex
	daily   = make(map[string]*Daily)
)

func today() string { return time.Now().UTC().Format("2006-01-02") }

func dayLocked(key string) *Daily {
	d := daily[key]
	if d == nil {
		d = &Daily{Date: key}
		daily[key] = d
	}
	return d
}

// MaybeTopHit records the hit if it beats today's best.
func MaybeTopHit(hit TopHit) {
	if hit.Damage <= 0 {
		return
	}
	statsMu.Lock()
	defer statsMu.Unlock()
	d := dayLocked(today())
	if d.TopHit == nil || hit.Damage > d.TopHit.Damage {
		d.TopHit = &hit
	}
}

// MaybeFastestWin records the victory if it beats today's fastest.
func MaybeFastestWin(win FastestWin) {
	if win.Turns <= 0 {
		return
	}
	statsMu.Lock()
	defer statsMu.Unlock()
	d := dayLocked(today())
	if d.FastestWin == nil || win.Turns < d.FastestWin.Turns {
		d.FastestWin = &win
	}
}

// Get returns today's records.
func Get() Daily {
	statsMu.Lock()
	defer statsMu.Unlock()
	return *dayLocked(today())
}

// ResetDaily clears all recorded days. Intended for tests and dev convenience.
func ResetDaily() {
	statsMu.Lock()
	defer statsMu.Unlock()
	for k := range daily {
		delete(daily, k)
	}
}
