package utils

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	slugInvalid  = regexp.MustCompile(`[^a-z0-9]+`)
	slugTrim     = regexp.MustCompile(`^-+|-+$`)
	allNumeric   = regexp.MustCompile(`^\d+$`)
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// IsValidEmail checks basic email format
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// Slugify turns a title into a url-safe slug
func Slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = slugInvalid.ReplaceAllString(slug, "-")
	slug = slugTrim.ReplaceAllString(slug, "")
	if slug == "" {
		slug = uuid.NewString()[:8]
	}
	return slug
}

// UniqueSlug returns slug unchanged when free, otherwise appends a short
// random suffix until it no longer collides in the given table.
func UniqueSlug(db *gorm.DB, table, slug string) string {
	candidate := slug
	for {
		var count int64
		db.Table(table).Where("slug = ?", candidate).Count(&count)
		if count == 0 {
			return candidate
		}
		candidate = slug + "-" + uuid.NewString()[:8]
	}
}

// commonPasswords is a small denylist of passwords rejected outright
var commonPasswords = map[string]bool{
	"password":   true,
	"password1":  true,
	"12345678":   true,
	"123456789":  true,
	"qwerty123":  true,
	"iloveyou1":  true,
	"admin123":   true,
	"letmein123": true,
}

// PasswordIssues validates password strength and returns every problem found,
// so a client can fix all of them in one round-trip.
func PasswordIssues(password, username string) []string {
	var issues []string

	if len(password) < 8 {
		issues = append(issues, "Password must be at least 8 characters long!")
	}
	if allNumeric.MatchString(password) {
		issues = append(issues, "Password cannot be entirely numeric!")
	}
	if commonPasswords[strings.ToLower(password)] {
		issues = append(issues, "Password is too common!")
	}
	if username != "" && strings.EqualFold(password, username) {
		issues = append(issues, "Password cannot be the same as the username!")
	}

	return issues
}
