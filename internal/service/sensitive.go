package service

import (
	"net/url"
	"regexp"
	"strings"
)

// Content length bounds for indexable pages.
const (
	MinContentLength = 100
	MaxContentLength = 1_000_000
)

// sensitiveDomains are hosts whose pages are never indexed. Matching is
// by suffix so subdomains are covered.
var sensitiveDomains = []string{
	"gmail.com",
	"mail.google.com",
	"outlook.com",
	"yahoo.mail.com",
	"web.whatsapp.com",
	"facebook.com",
	"messenger.com",
	"twitter.com",
	"linkedin.com",
	"banking",
	"chase.com",
	"wellsfargo.com",
	"paypal.com",
}

var sensitivePatterns = []*regexp.Regexp{
	regexp.MustCompile(`mail\.`),
	regexp.MustCompile(`email\.`),
	regexp.MustCompile(`account\.`),
	regexp.MustCompile(`login\.`),
	regexp.MustCompile(`signin\.`),
	regexp.MustCompile(`banking\.`),
	regexp.MustCompile(`secure\.`),
	regexp.MustCompile(`private\.`),
}

// IsSensitiveURL reports whether a page URL must be excluded from
// indexing. Unparseable URLs are treated as sensitive.
func IsSensitiveURL(raw string) bool {
	if strings.TrimSpace(raw) == "" {
		return true
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return true
	}
	host := strings.ToLower(parsed.Hostname())
	if host == "" {
		// Bare hosts like "gmail.com/inbox" parse without a scheme.
		host = strings.ToLower(strings.SplitN(raw, "/", 2)[0])
	}
	if host == "" {
		return true
	}

	for _, domain := range sensitiveDomains {
		if host == domain || strings.HasSuffix(host, "."+domain) || strings.Contains(host, domain) {
			return true
		}
	}

	lower := strings.ToLower(raw)
	for _, pattern := range sensitivePatterns {
		if pattern.MatchString(lower) {
			return true
		}
	}
	return false
}

// ShouldIndex decides whether a page is eligible for indexing based on
// its URL and content size.
func ShouldIndex(rawURL, content string) (bool, string) {
	if IsSensitiveURL(rawURL) {
		return false, "sensitive url"
	}
	if len(content) < MinContentLength {
		return false, "content too short"
	}
	if len(content) > MaxContentLength {
		return false, "content too large"
	}
	return true, ""
}
