// Package main runs end-to-end tests of the lead relay against a running
// instance. Scenarios cover:
//   - Happy-path AU and NZ submissions (JSON and form-encoded)
//   - Validation rejections (missing names, bad email, bad amount,
//     keyboard-mash names, wrong-region phone numbers)
//   - Macron characters in NZ names
//   - Health endpoint
//
// Point ZOHO_ENDPOINT at a capture server before running this against
// anything other than a sandbox — accepted leads are forwarded for real.
//
// Usage:
//
//	API_BASE_URL=http://localhost:8080 go run scripts/e2e/run_e2e.go            # runs all
//	API_BASE_URL=http://localhost:8080 go run scripts/e2e/run_e2e.go happy-au   # runs one
package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
)

var apiBase string

// ---------------------------------------------------------------------------
// Scenario definition
// ---------------------------------------------------------------------------

type scenario struct {
	Name string
	Fn   func(t *T)
}

// T is a lightweight test context for a single scenario.
type T struct {
	passed int
	failed int
	name   string
}

func (t *T) check(name string, ok bool) {
	if ok {
		fmt.Printf("    PASS: %s\n", name)
		t.passed++
	} else {
		fmt.Printf("    FAIL: %s\n", name)
		t.failed++
	}
}

func (t *T) fatalf(format string, args ...interface{}) {
	fmt.Printf("    FATAL: "+format+"\n", args...)
	t.failed++
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

type submitResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

func submitJSON(fields map[string]string) (int, submitResponse, error) {
	// Marshal through a map; the relay does not care about key order for
	// validation, only for the forwarded payload.
	body, _ := json.Marshal(fields)
	resp, err := http.Post(apiBase+"/submit-lead", "application/json", strings.NewReader(string(body)))
	if err != nil {
		return 0, submitResponse{}, err
	}
	defer resp.Body.Close()
	var out submitResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return resp.StatusCode, submitResponse{}, err
	}
	return resp.StatusCode, out, nil
}

func submitForm(pairs [][2]string) (int, submitResponse, error) {
	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		parts = append(parts, url.QueryEscape(p[0])+"="+url.QueryEscape(p[1]))
	}
	body := strings.Join(parts, "&")
	resp, err := http.Post(apiBase+"/submit-lead", "application/x-www-form-urlencoded", strings.NewReader(body))
	if err != nil {
		return 0, submitResponse{}, err
	}
	defer resp.Body.Close()
	var out submitResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return resp.StatusCode, submitResponse{}, err
	}
	return resp.StatusCode, out, nil
}

func auLead() map[string]string {
	return map[string]string{
		"First Name":  "Mary",
		"Last Name":   "Jones",
		"Email":       "mary.jones@example.com",
		"Phone":       "0412 345 678",
		"LEADCF66":    "250",
		"Lead Source": "WebForm-AU",
	}
}

func nzLead() map[string]string {
	return map[string]string{
		"First Name":  "Wiremu",
		"Last Name":   "Tāne",
		"Email":       "wiremu@example.co.nz",
		"Phone":       "021 234 5678",
		"LEADCF66":    "250",
		"Lead Source": "WebForm-NZ",
	}
}

// ---------------------------------------------------------------------------
// Scenarios
// ---------------------------------------------------------------------------

func scenarioHealth(t *T) {
	resp, err := http.Get(apiBase + "/health")
	if err != nil {
		t.fatalf("health request failed: %v", err)
		return
	}
	defer resp.Body.Close()
	t.check("health returns 200", resp.StatusCode == http.StatusOK)
}

func scenarioHappyAU(t *T) {
	status, out, err := submitJSON(auLead())
	if err != nil {
		t.fatalf("submit failed: %v", err)
		return
	}
	t.check("status 200", status == http.StatusOK)
	t.check("success true", out.Success)
	t.check("success message", out.Message == "Lead submitted successfully")
}

func scenarioHappyNZ(t *T) {
	status, out, err := submitJSON(nzLead())
	if err != nil {
		t.fatalf("submit failed: %v", err)
		return
	}
	t.check("status 200", status == http.StatusOK)
	t.check("macron surname accepted", out.Success)
}

func scenarioFormEncoded(t *T) {
	status, out, err := submitForm([][2]string{
		{"First Name", "Mary"},
		{"Last Name", "Jones"},
		{"Email", "mary.jones@example.com"},
		{"LEADCF66", "100"},
		{"Lead Source", "WebForm-AU"},
	})
	if err != nil {
		t.fatalf("submit failed: %v", err)
		return
	}
	t.check("status 200", status == http.StatusOK)
	t.check("success true", out.Success)
}

func scenarioMissingNames(t *T) {
	lead := auLead()
	delete(lead, "Last Name")
	status, out, err := submitJSON(lead)
	if err != nil {
		t.fatalf("submit failed: %v", err)
		return
	}
	t.check("status 400", status == http.StatusBadRequest)
	t.check("missing-names message", out.Message == "First Name and Last Name are required")
}

func scenarioBadEmail(t *T) {
	lead := auLead()
	lead["Email"] = "not-an-email"
	status, out, err := submitJSON(lead)
	if err != nil {
		t.fatalf("submit failed: %v", err)
		return
	}
	t.check("status 400", status == http.StatusBadRequest)
	t.check("bad-email message", out.Message == "Invalid email address format")
}

func scenarioBadAmount(t *T) {
	lead := auLead()
	lead["LEADCF66"] = "free"
	status, out, err := submitJSON(lead)
	if err != nil {
		t.fatalf("submit failed: %v", err)
		return
	}
	t.check("status 400", status == http.StatusBadRequest)
	t.check("bad-amount message", out.Message == "Amount is required and must be greater than 0")
}

func scenarioKeyboardMashName(t *T) {
	lead := auLead()
	lead["First Name"] = "qwerty"
	status, out, _ := submitJSON(lead)
	t.check("status 400", status == http.StatusBadRequest)
	t.check("rejected", !out.Success)
}

func scenarioWrongRegionPhone(t *T) {
	lead := auLead()
	lead["Phone"] = "021 234 5678" // NZ number on an AU lead
	status, out, _ := submitJSON(lead)
	t.check("status 400", status == http.StatusBadRequest)
	t.check("rejected", !out.Success)
}

func scenarioEmptyPhoneAccepted(t *T) {
	lead := auLead()
	lead["Phone"] = ""
	status, out, _ := submitJSON(lead)
	t.check("status 200", status == http.StatusOK)
	t.check("accepted", out.Success)
}

// ---------------------------------------------------------------------------
// Runner
// ---------------------------------------------------------------------------

func main() {
	apiBase = os.Getenv("API_BASE_URL")
	if apiBase == "" {
		fmt.Fprintln(os.Stderr, "ERROR: API_BASE_URL required")
		os.Exit(1)
	}

	scenarios := []scenario{
		{"health", scenarioHealth},
		{"happy-au", scenarioHappyAU},
		{"happy-nz", scenarioHappyNZ},
		{"form-encoded", scenarioFormEncoded},
		{"missing-names", scenarioMissingNames},
		{"bad-email", scenarioBadEmail},
		{"bad-amount", scenarioBadAmount},
		{"keyboard-mash", scenarioKeyboardMashName},
		{"wrong-region-phone", scenarioWrongRegionPhone},
		{"empty-phone", scenarioEmptyPhoneAccepted},
	}

	// Filter by name if argument provided
	filter := ""
	if len(os.Args) > 1 {
		filter = os.Args[1]
	}

	totalPassed := 0
	totalFailed := 0
	results := make([]string, 0, len(scenarios))

	for _, s := range scenarios {
		if filter != "" && s.Name != filter {
			continue
		}
		fmt.Printf("==> %s\n", s.Name)
		t := &T{name: s.Name}
		s.Fn(t)
		totalPassed += t.passed
		totalFailed += t.failed
		verdict := "PASS"
		if t.failed > 0 {
			verdict = "FAIL"
		}
		results = append(results, fmt.Sprintf("%s %s (%d passed, %d failed)", verdict, s.Name, t.passed, t.failed))
	}

	fmt.Println()
	for _, r := range results {
		fmt.Println(r)
	}
	fmt.Printf("\nTotal: %d passed, %d failed\n", totalPassed, totalFailed)
	if totalFailed > 0 {
		os.Exit(1)
	}
}
