package leads

import (
	"net/url"
	"strings"
)

// StaticFields are the Zoho web-to-lead deployment constants appended to
// every outbound payload. They are configuration, not secrets derived at
// runtime.
type StaticFields struct {
	OrgToken     string // xnQsjsdp
	SessionToken string // xmIwtLD
	ActionType   string // actionType, base64 of the CRM module name
	ReturnURL    string
}

// pairs returns the seven static form fields in the order the CRM form
// expects them. zc_gad, ldeskuid, and LDTuvid are always-empty placeholders
// the form contract still requires.
func (s StaticFields) pairs() []Field {
	return []Field{
		{Name: "xnQsjsdp", Value: s.OrgToken},
		{Name: "zc_gad", Value: ""},
		{Name: "xmIwtLD", Value: s.SessionToken},
		{Name: "actionType", Value: s.ActionType},
		{Name: "returnURL", Value: s.ReturnURL},
		{Name: "ldeskuid", Value: ""},
		{Name: "LDTuvid", Value: ""},
	}
}

// BuildPayload copies every user field in its original order, then appends
// the static fields. A user field whose name collides with a static field is
// dropped so the static value always wins; nothing else is transformed.
func BuildPayload(sub *Submission, statics StaticFields) []Field {
	staticPairs := statics.pairs()
	reserved := make(map[string]struct{}, len(staticPairs))
	for _, f := range staticPairs {
		reserved[f.Name] = struct{}{}
	}

	out := make([]Field, 0, len(sub.Fields())+len(staticPairs))
	for _, f := range sub.Fields() {
		if _, clash := reserved[f.Name]; clash {
			continue
		}
		out = append(out, f)
	}
	return append(out, staticPairs...)
}

// EncodePayload serializes fields as application/x-www-form-urlencoded,
// preserving order.
func EncodePayload(fields []Field) string {
	var b strings.Builder
	for i, f := range fields {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(f.Name))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(f.Value))
	}
	return b.String()
}
