package calendar

// Predicate reports whether a day qualifies.
type Predicate func(Date) bool

// FirstMatch probes horizon consecutive days beginning at start and returns the
// first one satisfying ok. When none does, it returns the last probed day and
// false, so callers always get a date back without an unbounded walk.
func FirstMatch(start Date, horizon int, ok Predicate) (Date, bool) {
	if horizon <= 0 {
		return start, false
	}
	d := start
	for i := 0; i < horizon; i++ {
		d = start.AddDays(i)
		if ok(d) {
			return d, true
		}
	}
	return d, false
}

// Matches collects up to limit qualifying days among the horizon days
// beginning at start, in ascending order.
func Matches(start Date, horizon, limit int, ok Predicate) []Date {
	found := make([]Date, 0, max(limit, 0))
	for i := 0; i < horizon && len(found) < limit; i++ {
		if d := start.AddDays(i); ok(d) {
			found = append(found, d)
		}
	}
	return found
}
