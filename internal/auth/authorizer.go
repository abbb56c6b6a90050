package auth

import (
	"fmt"
	"time"
)

// Status is the human-readable key verdict.
type Status string

const (
	StatusActive  Status = "Active"
	StatusExpired Status = "Expired"
	StatusInvalid Status = "Invalid"
	StatusMissing Status = "Missing"
)

// Result is the authorization verdict for a presented key. It is computed
// fresh per request from the current date and never cached, since days
// remaining changes daily.
type Result struct {
	Authorized    bool
	Status        Status
	DaysRemaining int
	ExpiryDate    string
}

// DaysRemainingLabel renders the remaining validity for display. A key on its
// expiry day is still authorized; the label only distinguishes the last day.
func (r Result) DaysRemainingLabel() string {
	if r.DaysRemaining <= 0 {
		return "Last Day Today"
	}
	return fmt.Sprintf("%d Days", r.DaysRemaining)
}

// Authorizer validates presented keys against the registry. "Today" is always
// computed in the configured zone so the verdict does not depend on server
// locale.
type Authorizer struct {
	registry *Registry
	loc      *time.Location
}

// NewAuthorizer creates a new authorizer over a read-only registry.
func NewAuthorizer(registry *Registry, loc *time.Location) *Authorizer {
	return &Authorizer{
		registry: registry,
		loc:      loc,
	}
}

// Authorize checks a presented key against the registry at the given instant.
// Absent, unknown, and expired keys are all represented as data; this never
// fails.
func (a *Authorizer) Authorize(key string, now time.Time) Result {
	if key == "" {
		return Result{Status: StatusMissing}
	}

	expiry, ok := a.registry.Lookup(key)
	if !ok {
		return Result{Status: StatusInvalid}
	}

	days := daysUntil(now.In(a.loc), expiry)
	result := Result{
		DaysRemaining: days,
		ExpiryDate:    expiry.Format(expiryLayout),
	}

	if days < 0 {
		result.Status = StatusExpired
		return result
	}

	result.Authorized = true
	result.Status = StatusActive
	return result
}

// daysUntil computes whole calendar days from now's civil date to the expiry
// date, inclusive of the expiry day (zero means the key expires today).
func daysUntil(now, expiry time.Time) int {
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	ey, em, ed := expiry.Date()
	exp := time.Date(ey, em, ed, 0, 0, 0, 0, time.UTC)
	return int(exp.Sub(today).Hours() / 24)
}

// ISTLocation returns the Asia/Kolkata zone, falling back to a fixed +05:30
// offset when tzdata is unavailable.
func ISTLocation() *time.Location {
	if loc, err := time.LoadLocation("Asia/Kolkata"); err == nil {
		return loc
	}
	return time.FixedZone("IST", 5*3600+30*60)
}
