// Package calendar provides the date primitives used by cutoff and ship-date
// arithmetic: a time-zone-free civil Date, a wall-clock ClockTime, weekday
// sets, inclusive blackout windows and bounded forward searches over days.
//
// Dates are calendar days, not instants. Converting "now" into a Date must go
// through the location of the rule set (time.Time.In) so that daylight-saving
// transitions are handled by the tz database rather than by fixed offsets.
package calendar
