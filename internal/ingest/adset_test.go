package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeAdset(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "goal marker truncation",
			raw:  "facebook-adset-longcampaign-namehere-reg-01",
			want: "facebook-adset-longcampaign-namehere-reg",
		},
		{
			name: "adset keyword without marker truncates at space",
			raw:  "myadset-brand-campaign-ua-feb trailing words",
			want: "myadset-brand-campaign-ua-feb",
		},
		{
			name: "hyphen structure without keyword",
			raw:  "fb-ua-spring-promo-buy-targeting-wide-2024",
			want: "fb-ua-spring-promo-buy-targeting-wide-2024",
		},
		{name: "empty", raw: "", want: FallbackBucket},
		{name: "whitespace only", raw: "   ", want: FallbackBucket},
		{name: "plain word", raw: "organic", want: FallbackBucket},
		{name: "few hyphens", raw: "a-b-c", want: FallbackBucket},
		{
			name: "too short after truncation",
			raw:  "adset-one-reg-extra-tail-making-it-long",
			want: FallbackBucket,
		},
		{
			name: "case insensitive keyword",
			raw:  "UA-ADSET-winter-promo-wide-audience",
			want: "UA-ADSET-winter-promo-wide-audience",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeAdset(tt.raw))
		})
	}
}

func TestNormalizeAdsetStableForJoinKeys(t *testing.T) {
	// The platform and panel report the same adset with different suffixes;
	// both must land on the same key.
	platform := NormalizeAdset("facebook-adset-longcampaign-namehere-reg-01")
	panel := NormalizeAdset("facebook-adset-longcampaign-namehere-reg-ua-feb")
	assert.Equal(t, platform, panel)
}
