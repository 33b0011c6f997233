package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsSensitiveURL(t *testing.T) {
	tests := []struct {
		name      string
		url       string
		sensitive bool
	}{
		{"plain article", "https://example.com/blog/post", false},
		{"gmail", "https://gmail.com/inbox", true},
		{"gmail subdomain", "https://mail.google.com/u/0", true},
		{"whatsapp web", "https://web.whatsapp.com/", true},
		{"bank", "https://chase.com/account", true},
		{"banking keyword host", "https://mybanking.example.net/", true},
		{"login pattern", "https://login.example.com/session", true},
		{"secure pattern", "https://secure.example.com/checkout", true},
		{"mail pattern", "https://mail.corp.example.org/", true},
		{"empty", "", true},
		{"whitespace only", "   ", true},
		{"scheme-less sensitive host", "gmail.com/inbox", true},
		{"docs site", "https://pkg.go.dev/net/http", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.sensitive, IsSensitiveURL(tt.url))
		})
	}
}

func TestShouldIndex(t *testing.T) {
	long := strings.Repeat("content ", 20)

	ok, reason := ShouldIndex("https://example.com/post", long)
	assert.True(t, ok)
	assert.Empty(t, reason)

	ok, reason = ShouldIndex("https://gmail.com/inbox", long)
	assert.False(t, ok)
	assert.Equal(t, "sensitive url", reason)

	ok, reason = ShouldIndex("https://example.com/post", "tiny")
	assert.False(t, ok)
	assert.Equal(t, "content too short", reason)

	ok, reason = ShouldIndex("https://example.com/post", strings.Repeat("x", MaxContentLength+1))
	assert.False(t, ok)
	assert.Equal(t, "content too large", reason)
}
