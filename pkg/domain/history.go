package domain

// Entry is an immutable record of one past calculation. It is created only
// by a successful calculation and removed only by a full clear or by
// capacity eviction.
type Entry struct {
	Input      string `json:"input"`
	Result     string `json:"result"`
	Annotation string `json:"annotation"`
}

// Ledger is the ordered calculation log, most recent first.
type Ledger []Entry

// Push prepends an entry and evicts the oldest entries past limit.
// A non-positive limit falls back to DefaultHistoryLimit.
func (l *Ledger) Push(e Entry, limit int) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	*l = append(Ledger{e}, *l...)
	if len(*l) > limit {
		*l = (*l)[:limit]
	}
}

// Clear empties the ledger.
func (l *Ledger) Clear() {
	*l = Ledger{}
}
