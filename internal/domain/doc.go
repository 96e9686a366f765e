// Package domain contains the CareCamp entities (users, camps, registrations
// and feedback) together with their construction rules and validation. It has
// no knowledge of storage or HTTP.
package domain
