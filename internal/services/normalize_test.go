package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeURL(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"https://x.com/job?ref=abc", "https://x.com/job"},
		{"https://x.com/job?ref=xyz&utm=1", "https://x.com/job"},
		{"https://x.com/job", "https://x.com/job"},
		{"  https://x.com/job  ", "https://x.com/job"},
		{"?only-query", ""},
		{"", ""},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, NormalizeURL(c.in), "NormalizeURL(%q)", c.in)
	}
}

func TestSanitizeReasoning(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\nplain text\n```", "plain text"},
		{"no fence", "a strong match for your skills", "a strong match for your skills"},
		{"whitespace", "  padded  ", "padded"},
		{"empty", "", ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, SanitizeReasoning(c.in))
		})
	}
}

func TestRoundScore(t *testing.T) {
	assert.Equal(t, 8, RoundScore(7.6))
	assert.Equal(t, 7, RoundScore(7.4))
	assert.Equal(t, 8, RoundScore(7.5))
	assert.Equal(t, 0, RoundScore(0))
	assert.Equal(t, 10, RoundScore(10))
}
