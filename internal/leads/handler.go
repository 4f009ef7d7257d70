package leads

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/oceaniadigital/lead-relay/internal/events"
	"github.com/oceaniadigital/lead-relay/internal/observability/metrics"
	"github.com/oceaniadigital/lead-relay/pkg/logging"
)

// Forwarder issues the outbound POST to the CRM endpoint and returns its raw
// response. A non-nil error means the forward failed.
type Forwarder interface {
	Forward(ctx context.Context, formBody string) (status int, body string, err error)
}

// Notifier receives best-effort alerts about submission outcomes.
// Implementations must not block request handling on failure.
type Notifier interface {
	LeadSubmitted(ctx context.Context, name, email, phone, source string)
	ForwardFailed(ctx context.Context, name, source string, err error)
}

// SubmitResponse is the JSON envelope returned to the form caller.
type SubmitResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// Handler orchestrates one submission: parse, validate, normalize, forward,
// respond. Requests are independent; the only shared state is the event sink.
type Handler struct {
	forwarder   Forwarder
	sink        events.Sink
	statics     StaticFields
	amountField string
	endpoint    string
	metrics     *metrics.SubmissionMetrics
	notifier    Notifier
	logger      *logging.Logger
}

// HandlerConfig wires a submission handler.
type HandlerConfig struct {
	Forwarder   Forwarder
	Sink        events.Sink
	Statics     StaticFields
	AmountField string
	Endpoint    string
	Metrics     *metrics.SubmissionMetrics
	Notifier    Notifier
	Logger      *logging.Logger
}

// NewHandler creates a submission handler.
func NewHandler(cfg HandlerConfig) *Handler {
	sink := cfg.Sink
	if sink == nil {
		sink = events.NopSink{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	amountField := cfg.AmountField
	if amountField == "" {
		amountField = "LEADCF66"
	}
	return &Handler{
		forwarder:   cfg.Forwarder,
		sink:        sink,
		statics:     cfg.Statics,
		amountField: amountField,
		endpoint:    cfg.Endpoint,
		metrics:     cfg.Metrics,
		notifier:    cfg.Notifier,
		logger:      logger,
	}
}

// SubmitLead handles POST /submit-lead.
func (h *Handler) SubmitLead(w http.ResponseWriter, r *http.Request) {
	sub, err := ParseSubmission(r)
	if err != nil {
		h.logger.Error("failed to parse submission", "error", err)
		h.metrics.ObserveSubmission("rejected")
		writeJSON(w, http.StatusBadRequest, SubmitResponse{Success: false, Message: "Invalid request body"})
		return
	}

	if res := ValidateSubmission(sub, h.amountField); !res.Valid {
		h.logger.Info("submission rejected",
			"field", res.Field,
			"reason", res.Reason,
			"lead_source", sub.Get(FieldLeadSource),
		)
		h.metrics.ObserveSubmission("rejected")
		h.metrics.ObserveValidationFailure(res.Field)
		writeJSON(w, http.StatusBadRequest, SubmitResponse{Success: false, Message: res.Reason})
		return
	}

	payload := BuildPayload(sub, h.statics)
	h.sink.Append(events.New(events.TypeZohoRequest, events.ZohoRequestPayload{
		Endpoint: h.endpoint,
		Fields:   toEventFields(payload),
	}))

	start := time.Now()
	status, body, err := h.forwarder.Forward(r.Context(), EncodePayload(payload))
	h.metrics.ObserveForwardLatency(time.Since(start).Seconds())

	name := sub.Get(FieldFirstName) + " " + sub.Get(FieldLastName)
	source := sub.Get(FieldLeadSource)

	if err != nil {
		h.logger.Error("lead forward failed", "error", err, "lead_source", source)
		h.sink.Append(events.New(events.TypeError, events.ErrorPayload{Message: err.Error()}))
		h.metrics.ObserveSubmission("forward_error")
		if h.notifier != nil {
			h.notifier.ForwardFailed(r.Context(), name, source, err)
		}
		writeJSON(w, http.StatusInternalServerError, SubmitResponse{
			Success: false,
			Message: "Error submitting lead",
			Error:   err.Error(),
		})
		return
	}

	h.sink.Append(events.New(events.TypeZohoResponse, events.ZohoResponsePayload{
		Status: status,
		Body:   body,
	}))
	h.metrics.ObserveSubmission("accepted")
	h.logger.Info("lead forwarded", "status", status, "lead_source", source)
	if h.notifier != nil {
		h.notifier.LeadSubmitted(r.Context(), name, sub.Get(FieldEmail), sub.Get(FieldPhone), source)
	}

	writeJSON(w, http.StatusOK, SubmitResponse{Success: true, Message: "Lead submitted successfully"})
}

func toEventFields(fields []Field) []events.FormField {
	out := make([]events.FormField, len(fields))
	for i, f := range fields {
		out[i] = events.FormField{Name: f.Name, Value: f.Value}
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
