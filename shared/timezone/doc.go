// Package timezone keeps the application clock in one configured location.
//
//	now := timezone.Now()                         // current time in app timezone
//	stamp := timezone.Format(t, "20060102T150405") // format in app timezone
//
// The location comes from APP_TIMEZONE (IANA names such as "UTC" or
// "Asia/Jakarta") and is loaded when the package is imported.
package timezone
