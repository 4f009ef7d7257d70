package leads

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
)

// Recognized form field names. Everything else passes through to the CRM
// untouched.
const (
	FieldFirstName  = "First Name"
	FieldLastName   = "Last Name"
	FieldPhone      = "Phone"
	FieldEmail      = "Email"
	FieldLeadSource = "Lead Source"
)

// Region selects which validation rules apply to a submission.
type Region string

const (
	RegionAU Region = "AU"
	RegionNZ Region = "NZ"
)

// webFormAU is the Lead Source value that selects Australian rules.
// Any other value, including an absent field, selects New Zealand rules.
const webFormAU = "WebForm-AU"

// DetectRegion derives the region from the Lead Source field.
func DetectRegion(leadSource string) Region {
	if leadSource == webFormAU {
		return RegionAU
	}
	return RegionNZ
}

// ErrInvalidBody is returned when the request body cannot be parsed as a
// field mapping.
var ErrInvalidBody = errors.New("leads: invalid request body")

// Field is a single submitted name/value pair.
type Field struct {
	Name  string
	Value string
}

// Submission is the inbound field set in its original order. The form
// contract is order-sensitive on the CRM side, so fields are kept as a slice
// with a first-occurrence index for lookups.
type Submission struct {
	fields []Field
	index  map[string]int
}

// NewSubmission creates an empty submission.
func NewSubmission() *Submission {
	return &Submission{index: make(map[string]int)}
}

// Add appends a field, preserving arrival order. Lookups resolve to the
// first occurrence of a duplicated name.
func (s *Submission) Add(name, value string) {
	if _, ok := s.index[name]; !ok {
		s.index[name] = len(s.fields)
	}
	s.fields = append(s.fields, Field{Name: name, Value: value})
}

// Get returns the value of the first field with the given name, or "".
func (s *Submission) Get(name string) string {
	if i, ok := s.index[name]; ok {
		return s.fields[i].Value
	}
	return ""
}

// Has reports whether the field is present with a non-empty value.
func (s *Submission) Has(name string) bool {
	return s.Get(name) != ""
}

// Fields returns the fields in arrival order.
func (s *Submission) Fields() []Field {
	return s.fields
}

// ParseSubmission reads a form-encoded or JSON request body into an ordered
// submission.
func ParseSubmission(r *http.Request) (*Submission, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}

	contentType := r.Header.Get("Content-Type")
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
		contentType = mediaType
	}

	switch contentType {
	case "application/json":
		return parseJSONBody(body)
	default:
		return parseFormBody(string(body))
	}
}

// parseFormBody decodes application/x-www-form-urlencoded input without
// losing pair order, which url.Values would.
func parseFormBody(body string) (*Submission, error) {
	sub := NewSubmission()
	for _, pair := range strings.Split(body, "&") {
		if pair == "" {
			continue
		}
		rawName, rawValue, _ := strings.Cut(pair, "=")
		name, err := url.QueryUnescape(rawName)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidBody, err)
		}
		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidBody, err)
		}
		sub.Add(name, value)
	}
	return sub, nil
}

// parseJSONBody decodes a flat JSON object via the token stream so key order
// survives. Values must be JSON primitives; nested structures are rejected.
func parseJSONBody(body []byte) (*Submission, error) {
	dec := json.NewDecoder(strings.NewReader(string(body)))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("%w: expected object", ErrInvalidBody)
	}

	sub := NewSubmission()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidBody, err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("%w: non-string key", ErrInvalidBody)
		}

		valTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidBody, err)
		}
		switch v := valTok.(type) {
		case string:
			sub.Add(key, v)
		case json.Number:
			sub.Add(key, v.String())
		case bool:
			sub.Add(key, fmt.Sprintf("%t", v))
		case nil:
			sub.Add(key, "")
		default:
			return nil, fmt.Errorf("%w: field %q is not a primitive", ErrInvalidBody, key)
		}
	}
	return sub, nil
}
