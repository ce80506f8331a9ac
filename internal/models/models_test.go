package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodePortfolioImages(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want []string
	}{
		{"empty", "", []string{}},
		{"null", "null", []string{}},
		{"array", `["https://a/1.jpg","","https://a/2.jpg"]`, []string{"https://a/1.jpg", "https://a/2.jpg"}},
		{"json string", `"https://a/1.jpg"`, []string{"https://a/1.jpg"}},
		{"bare url", `https://a/1.jpg`, []string{"https://a/1.jpg"}},
		{"garbage", `{"x":1}`, []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DecodePortfolioImages([]byte(tc.raw)))
		})
	}
}

func TestPremiumPlanDuration(t *testing.T) {
	days := 30
	zero := 0
	assert.Equal(t, 365, (&PremiumPlan{}).Duration())
	assert.Equal(t, 365, (&PremiumPlan{DurationDays: &zero}).Duration())
	assert.Equal(t, 30, (&PremiumPlan{DurationDays: &days}).Duration())
}

func TestIsValidApplicationStatus(t *testing.T) {
	for _, s := range []string{"applied", "shortlisted", "selected", "rejected"} {
		assert.True(t, IsValidApplicationStatus(s), s)
	}
	assert.False(t, IsValidApplicationStatus("hired"))
	assert.False(t, IsValidApplicationStatus(""))
}
