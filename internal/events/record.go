package events

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Type tags an event record with its lifecycle point.
type Type string

const (
	// TypeRequest is emitted when an HTTP request arrives.
	TypeRequest Type = "request"
	// TypeResponse is emitted just before an HTTP response is sent.
	TypeResponse Type = "response"
	// TypeError is emitted when a request fails outside validation.
	TypeError Type = "error"
	// TypeZohoRequest is emitted before forwarding a lead to the CRM.
	TypeZohoRequest Type = "zoho_request"
	// TypeZohoResponse is emitted after the CRM forward completes.
	TypeZohoResponse Type = "zoho_response"
	// TypeServerStart is emitted once on boot.
	TypeServerStart Type = "server_start"
	// TypeTLSError is emitted when the TLS listener fails.
	TypeTLSError Type = "tls_error"
	// TypeTLSConnection is emitted per accepted TLS connection.
	TypeTLSConnection Type = "tls_connection"
)

// Record is an immutable, append-only event. It is created at a lifecycle
// point, handed to the sink, and never mutated afterwards.
type Record struct {
	ID        string          `json:"id"`
	Type      Type            `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

// New builds a record for the given type, stamping a UUID and the current UTC
// time. Marshal failures of the payload degrade to an empty payload rather
// than blocking the event.
func New(t Type, payload any) Record {
	rec := Record{
		ID:        uuid.NewString(),
		Type:      t,
		Timestamp: time.Now().UTC(),
	}
	if payload != nil {
		if data, err := json.Marshal(payload); err == nil {
			rec.Payload = data
		}
	}
	return rec
}

// FormField is one outbound payload pair. Order matters for the CRM form
// encoding, so fields travel as a slice rather than a map.
type FormField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// RequestPayload describes an inbound HTTP request.
type RequestPayload struct {
	Method  string              `json:"method"`
	Path    string              `json:"path"`
	Headers map[string][]string `json:"headers"`
	Body    string              `json:"body,omitempty"`
}

// ResponsePayload describes the response sent for an inbound request.
type ResponsePayload struct {
	Method     string `json:"method"`
	Path       string `json:"path"`
	Status     int    `json:"status"`
	Body       string `json:"body,omitempty"`
	DurationMS int64  `json:"duration_ms"`
}

// ErrorPayload describes a request-scoped failure.
type ErrorPayload struct {
	Message string `json:"message"`
	Trace   string `json:"trace,omitempty"`
}

// ZohoRequestPayload carries the full outbound CRM payload.
type ZohoRequestPayload struct {
	Endpoint string      `json:"endpoint"`
	Fields   []FormField `json:"fields"`
}

// ZohoResponsePayload carries the CRM's raw response.
type ZohoResponsePayload struct {
	Status int    `json:"status"`
	Body   string `json:"body,omitempty"`
}

// ServerStartPayload describes the listener at boot.
type ServerStartPayload struct {
	Addr string `json:"addr"`
	TLS  bool   `json:"tls"`
}

// TLSErrorPayload describes a TLS listener failure.
type TLSErrorPayload struct {
	Message string `json:"message"`
}

// TLSConnectionPayload describes one accepted TLS connection.
type TLSConnectionPayload struct {
	RemoteAddr string `json:"remote_addr"`
}
