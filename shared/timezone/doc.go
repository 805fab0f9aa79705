// Package timezone keeps every time the application touches in a single
// configured location. Event dates, visit slots and audit timestamps all go
// through these helpers so that a reservation made from any client lands on
// the same calendar day the vendor sees.
//
// Usage:
//
//	now := timezone.Now()                                // current time in the app timezone
//	t, err := timezone.Parse("2006-01-02", "2026-10-20") // parse in the app timezone
//	s := timezone.Format(t, "2006-01-02")                // format in the app timezone
//	loc := timezone.GetLocation()
//
// The location is configured via the APP_TIMEZONE environment variable using
// standard IANA names ("UTC", "Asia/Riyadh", "Europe/London") and falls back
// to UTC when the name cannot be loaded.
package timezone
