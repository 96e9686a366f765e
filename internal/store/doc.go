// Package store defines the persistence interfaces for users, camps,
// registrations and feedback, the camp search query, and the error values
// every backend maps its driver errors onto. The MongoDB and PostgreSQL
// implementations live under internal/platform.
package store
