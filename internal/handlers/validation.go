package handlers

import (
	"regexp"

	"github.com/Shubham-7300/Portfolio-Backend/internal/apperr"
)

// Field formats, moved out of the persistence layer so validation is explicit
// instead of happening inside save hooks.
var (
	emailRe     = regexp.MustCompile(`^\S+@\S+\.\S+$`)
	phoneRe     = regexp.MustCompile(`^\d{10}$`)
	portfolioRe = regexp.MustCompile(`^(https?://)?(www\.)?[a-zA-Z0-9._-]+\.[a-zA-Z]{2,}([a-zA-Z0-9._/-]*)?$`)
	githubRe    = regexp.MustCompile(`^(https?://)?(www\.)?github\.com/\S+$`)
	leetcodeRe  = regexp.MustCompile(`^(https?://)?(www\.)?leetcode\.com/\S+$`)
	twitterRe   = regexp.MustCompile(`^(https?://)?(www\.)?twitter\.com/\S+$`)
	linkedInRe  = regexp.MustCompile(`^(https?://)?(www\.)?linkedin\.com/in/\S+$`)
	facebookRe  = regexp.MustCompile(`^(https?://)?(www\.)?facebook\.com/\S+$`)
)

type profileFields struct {
	FullName     string
	Email        string
	Phone        string
	AboutMe      string
	PortfolioURL string
	GithubURL    string
	LeetcodeURL  string
	TwitterURL   string
	LinkedInURL  string
	FacebookURL  string
}

// validateProfile checks the required identity fields and the formats of the
// optional profile URLs. Returns a ValidationError describing the first
// problem found.
func validateProfile(f profileFields) error {
	switch {
	case f.FullName == "":
		return apperr.New(apperr.KindValidation, "Name is required!")
	case f.Email == "":
		return apperr.New(apperr.KindValidation, "Email is required!")
	case !emailRe.MatchString(f.Email):
		return apperr.New(apperr.KindValidation, "Please provide a valid email address!")
	case f.Phone == "":
		return apperr.New(apperr.KindValidation, "Phone number is required!")
	case !phoneRe.MatchString(f.Phone):
		return apperr.New(apperr.KindValidation, "Phone number must be 10 digits!")
	case f.AboutMe == "":
		return apperr.New(apperr.KindValidation, "About Me section is required!")
	}

	optional := []struct {
		value   string
		re      *regexp.Regexp
		message string
	}{
		{f.PortfolioURL, portfolioRe, "Invalid Portfolio URL!"},
		{f.GithubURL, githubRe, "Invalid GitHub URL!"},
		{f.LeetcodeURL, leetcodeRe, "Invalid leetcode URL!"},
		{f.TwitterURL, twitterRe, "Invalid Twitter URL!"},
		{f.LinkedInURL, linkedInRe, "Invalid LinkedIn URL!"},
		{f.FacebookURL, facebookRe, "Invalid Facebook URL!"},
	}
	for _, o := range optional {
		if o.value != "" && !o.re.MatchString(o.value) {
			return apperr.New(apperr.KindValidation, o.message)
		}
	}
	return nil
}

// validatePassword enforces the minimum password length.
func validatePassword(password string) error {
	if password == "" {
		return apperr.New(apperr.KindValidation, "Password is required!")
	}
	if len(password) < 8 {
		return apperr.New(apperr.KindValidation, "Password must contain at least 8 characters!")
	}
	return nil
}
