package types

// Submission holds the investor form fields after sanitization and
// validation. Decoding normalizes every wire encoding into flat strings
// first, so multi-value fields (interest tags, UTM parameters) arrive here
// already joined or dotted.
type Submission struct {
	Name        string
	Email       string
	Message     string
	Company     string
	Role        string
	Interest    string
	CheckSize   string
	Geo         string
	Consent     bool
	UTMSource   string
	UTMMedium   string
	UTMCampaign string
	Referrer    string
	Device      string
}

// OutboundMessage is the notification email derived from a validated
// submission. It exists for a single delivery attempt and is never stored.
type OutboundMessage struct {
	From    string
	To      string
	Subject string
	HTML    string
}

// DeliveryResult reports the outcome of one provider send. Payload carries
// the provider's own response body (or a synthesized error description for
// transport faults) for propagation to the HTTP response.
type DeliveryResult struct {
	Delivered  bool
	StatusCode int
	ID         string
	Payload    interface{}
}
