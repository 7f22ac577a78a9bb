// Package validator contains the pure input validators for registration,
// login and movie submission. Each validator checks every field independently
// and returns a per-field message map plus a validity flag, so callers can report
// all problems in a single pass.
package validator

import (
	"regexp"
	"strings"
	"time"
)

var emailPattern = regexp.MustCompile(`^([0-9a-zA-Z]([-.\w]*[0-9a-zA-Z])*@([0-9a-zA-Z][-\w]*[0-9a-zA-Z]\.)+[a-zA-Z]{2,9})$`)

// RegisterInput is the raw registration record to validate.
type RegisterInput struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

// LoginInput is the raw login record to validate.
type LoginInput struct {
	Username string
	Password string
}

// MovieInput is the raw movie submission record to validate.
type MovieInput struct {
	Title       string
	Actors      []string
	ReleaseDate string
	Duration    int32
}

// MoviePolicy holds validation behavior that is configurable per deployment.
type MoviePolicy struct {
	// AllowFutureReleaseDate accepts release dates after today, for
	// upcoming-movie listings.
	AllowFutureReleaseDate bool
}

// ValidateRegister checks a registration input. Valid is len(errors) == 0.
func ValidateRegister(in RegisterInput) (map[string]string, bool) {
	errs := map[string]string{}
	if strings.TrimSpace(in.Username) == "" {
		errs["username"] = "username must not be empty"
	}
	if strings.TrimSpace(in.Email) == "" {
		errs["email"] = "email must not be empty"
	} else if !emailPattern.MatchString(in.Email) {
		errs["email"] = "email must have a valid email format"
	}
	if strings.TrimSpace(in.Password) == "" {
		errs["password"] = "password must not be empty"
	} else if in.Password != in.ConfirmPassword {
		errs["confirmPassword"] = "passwords must match"
	}
	return errs, len(errs) == 0
}

// ValidateLogin checks a login input.
func ValidateLogin(in LoginInput) (map[string]string, bool) {
	errs := map[string]string{}
	if strings.TrimSpace(in.Username) == "" {
		errs["username"] = "username must not be empty"
	}
	if strings.TrimSpace(in.Password) == "" {
		errs["password"] = "password must not be empty"
	}
	return errs, len(errs) == 0
}

// ValidateMovie checks a movie submission input against the given policy.
func ValidateMovie(in MovieInput, policy MoviePolicy) (map[string]string, bool) {
	errs := map[string]string{}
	if strings.TrimSpace(in.Title) == "" {
		errs["title"] = "title must not be empty"
	}
	if len(in.Actors) < 1 {
		errs["actors"] = "movie requires actors"
	} else if hasDuplicates(in.Actors) {
		errs["actors"] = "duplicate actors in cast"
	}
	if strings.TrimSpace(in.ReleaseDate) == "" {
		errs["releaseDate"] = "release date must not be empty"
	} else if released, err := ParseReleaseDate(in.ReleaseDate); err != nil {
		errs["releaseDate"] = "release date must be a valid date"
	} else if !policy.AllowFutureReleaseDate && released.After(time.Now()) {
		errs["releaseDate"] = "release date must be before today"
	}
	if in.Duration <= 0 {
		errs["duration"] = "movie must have a positive duration"
	}
	return errs, len(errs) == 0
}

// ParseReleaseDate parses an ISO-8601 calendar date, with or without a time
// component.
func ParseReleaseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

func hasDuplicates(names []string) bool {
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			return true
		}
		seen[n] = struct{}{}
	}
	return false
}
