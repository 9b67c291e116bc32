// Package timezone centralizes the application's wall-clock reference. All
// time handling in services and repositories goes through this package so the
// configured location is applied consistently.
package timezone
