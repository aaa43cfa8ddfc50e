package services

import (
	"sync"

	"github.com/elizi/goldtool/internal/models"
)

// maxHistoryEntries bounds both recall ledgers
const maxHistoryEntries = 5

// historyLedger keeps the most recent calculations, newest first. It is a
// process-local convenience for operator recall, not a durable record.
type historyLedger struct {
	mu      sync.Mutex
	entries []*models.HistoryEntry
}

func (l *historyLedger) append(e *models.HistoryEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append([]*models.HistoryEntry{e}, l.entries...)
	if len(l.entries) > maxHistoryEntries {
		l.entries = l.entries[:maxHistoryEntries]
	}
}

func (l *historyLedger) list() []*models.HistoryEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]*models.HistoryEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

func (l *historyLedger) clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = nil
}

// scrapLedger mirrors historyLedger for quick scrap quotes
type scrapLedger struct {
	mu     sync.Mutex
	quotes []*models.ScrapQuote
}

func (l *scrapLedger) append(q *models.ScrapQuote) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.quotes = append([]*models.ScrapQuote{q}, l.quotes...)
	if len(l.quotes) > maxHistoryEntries {
		l.quotes = l.quotes[:maxHistoryEntries]
	}
}

func (l *scrapLedger) list() []*models.ScrapQuote {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]*models.ScrapQuote, len(l.quotes))
	copy(out, l.quotes)
	return out
}

func (l *scrapLedger) clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.quotes = nil
}
