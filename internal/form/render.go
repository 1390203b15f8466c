package form

import (
	"bytes"
	"html/template"
	"time"

	"github.com/AdviTravel/advitravel-backend/types"
)

// RenderNotification produces the HTML body of the notification email.
// Optional fields only appear when non-empty. The timestamp is generated
// server-side so clients cannot forge it; interpolated values are already
// sanitized and html/template escapes any remaining markup characters.
func RenderNotification(sub *types.Submission, now time.Time) (string, error) {
	data := struct {
		*types.Submission
		SubmittedAt string
	}{sub, now.UTC().Format(time.RFC3339)}

	var buf bytes.Buffer
	if err := notificationTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

var notificationTmpl = template.Must(template.New("notification").Parse(notificationTemplate))

const notificationTemplate = `<h2>New investor registration</h2>
<p><strong>Name:</strong> {{.Name}}</p>
<p><strong>Email:</strong> {{.Email}}</p>
{{if .Company}}<p><strong>Company / Fund:</strong> {{.Company}}</p>
{{end}}{{if .Role}}<p><strong>Role:</strong> {{.Role}}</p>
{{end}}{{if .Interest}}<p><strong>Investment interest:</strong> {{.Interest}}</p>
{{end}}{{if .CheckSize}}<p><strong>Check size:</strong> {{.CheckSize}}</p>
{{end}}{{if .Geo}}<p><strong>Geography:</strong> {{.Geo}}</p>
{{end}}{{if .Message}}<p><strong>Message:</strong> {{.Message}}</p>
{{end}}{{if .Consent}}<p><strong>Consent:</strong> yes</p>
{{end}}{{if .UTMSource}}<p><strong>UTM source:</strong> {{.UTMSource}}</p>
{{end}}{{if .UTMMedium}}<p><strong>UTM medium:</strong> {{.UTMMedium}}</p>
{{end}}{{if .UTMCampaign}}<p><strong>UTM campaign:</strong> {{.UTMCampaign}}</p>
{{end}}{{if .Referrer}}<p><strong>Referrer:</strong> {{.Referrer}}</p>
{{end}}{{if .Device}}<p><strong>Device:</strong> {{.Device}}</p>
{{end}}<p><small>Submitted: {{.SubmittedAt}}</small></p>`
