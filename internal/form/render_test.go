package form

import (
	"testing"
	"time"

	"github.com/AdviTravel/advitravel-backend/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderNotificationMinimal(t *testing.T) {
	sub := &types.Submission{
		Name:    "Jane Doe",
		Email:   "jane@fund.com",
		Message: "Interested",
	}
	now := time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)

	html, err := RenderNotification(sub, now)
	require.NoError(t, err)

	assert.Contains(t, html, "Jane Doe")
	assert.Contains(t, html, "jane@fund.com")
	assert.Contains(t, html, "Interested")
	assert.Contains(t, html, "2025-06-01T12:30:00Z")

	// Optional fields are omitted entirely, not rendered blank.
	assert.NotContains(t, html, "Company / Fund")
	assert.NotContains(t, html, "Check size")
	assert.NotContains(t, html, "UTM source")
	assert.NotContains(t, html, "Consent")
}

func TestRenderNotificationExtended(t *testing.T) {
	sub := &types.Submission{
		Name:        "Jane Doe",
		Email:       "jane@fund.com",
		Company:     "Acme Ventures",
		Role:        "Partner",
		Interest:    "Seed, Series A",
		CheckSize:   "$100k–$250k",
		Geo:         "Global",
		Consent:     true,
		UTMSource:   "linkedin",
		UTMMedium:   "social",
		UTMCampaign: "launch",
		Referrer:    "https://news.example.com",
		Device:      "mobile",
	}

	html, err := RenderNotification(sub, time.Now())
	require.NoError(t, err)

	assert.Contains(t, html, "Acme Ventures")
	assert.Contains(t, html, "Partner")
	assert.Contains(t, html, "Seed, Series A")
	assert.Contains(t, html, "Global")
	assert.Contains(t, html, "<strong>Consent:</strong> yes")
	assert.Contains(t, html, "linkedin")
	assert.Contains(t, html, "social")
	assert.Contains(t, html, "launch")
	assert.Contains(t, html, "https://news.example.com")
	assert.Contains(t, html, "mobile")
}

func TestRenderNotificationEscapesMarkup(t *testing.T) {
	sub := &types.Submission{
		Name:    "<script>alert(1)</script>",
		Email:   "jane@fund.com",
		Message: "a < b && b > c",
	}

	html, err := RenderNotification(sub, time.Now())
	require.NoError(t, err)

	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "&lt;script&gt;")
	assert.Contains(t, html, "&amp;&amp;")
}

func TestRenderNotificationTimestampIsServerSide(t *testing.T) {
	sub := &types.Submission{Name: "Jane", Email: "jane@fund.com"}
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.FixedZone("CET", 3600))

	html, err := RenderNotification(sub, now)
	require.NoError(t, err)

	// Rendered in UTC regardless of the input zone.
	assert.Contains(t, html, "2025-01-02T02:04:05Z")
}

func TestRenderNotificationDeterministic(t *testing.T) {
	sub := &types.Submission{Name: "Jane", Email: "jane@fund.com", Company: "Acme"}
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	first, err := RenderNotification(sub, now)
	require.NoError(t, err)
	second, err := RenderNotification(sub, now)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
