package utils_test

import (
	"testing"

	"judgeapi/utils"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Spring Showcase 2026":  "spring-showcase-2026",
		"  Trimmed  ":           "trimmed",
		"Already-Hyphenated":    "already-hyphenated",
		"Punct!uation? (heavy)": "punctuation-heavy",
		"under_scored":          "under-scored",
		"":                      "",
		"!!!":                   "",
	}
	for input, expected := range cases {
		assert.Equal(t, expected, utils.Slugify(input), "input %q", input)
	}
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := utils.HashPassword("sesame")
	assert.NoError(t, err)
	assert.NotEqual(t, "sesame", hash)
	assert.True(t, utils.CheckPasswordHash("sesame", hash))
	assert.False(t, utils.CheckPasswordHash("wrong", hash))
}

func TestGenerateSessionToken(t *testing.T) {
	a, err := utils.GenerateSessionToken()
	assert.NoError(t, err)
	b, err := utils.GenerateSessionToken()
	assert.NoError(t, err)
	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
}
