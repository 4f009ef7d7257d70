package leads

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// User-facing validation messages. The wording is part of the public API of
// the endpoint and must not change.
const (
	MsgMissingNames   = "First Name and Last Name are required"
	MsgInvalidEmail   = "Invalid email address format"
	MsgInvalidAmount  = "Amount is required and must be greater than 0"
	MsgInvalidNameAU  = "Invalid First/Last Name format for Australian submission"
	MsgInvalidNameNZ  = "Invalid First/Last Name format for New Zealand submission. Name may include Māori characters (e.g., ā, ē, ī, ō, ū)"
	MsgInvalidPhoneAU = "Invalid Australian mobile number format. Please enter a valid Australian mobile number (e.g., 0412345678 or +61412345678)"
	MsgInvalidPhoneNZ = "Invalid New Zealand mobile number format. Please enter a valid New Zealand mobile number (e.g., 0211234567 or +64211234567)"
)

// ValidationResult classifies one submission. Reason is always populated
// when Valid is false, and carries the exact user-facing message. Field
// names the failing check for metrics.
type ValidationResult struct {
	Valid  bool
	Reason string
	Field  string
}

func pass() ValidationResult {
	return ValidationResult{Valid: true}
}

func fail(field, reason string) ValidationResult {
	return ValidationResult{Valid: false, Field: field, Reason: reason}
}

// bannedNamePatterns are keyboard-mash sequences plus two opaque signatures
// observed in automated spam submissions. Matched case-insensitively as
// substrings.
var bannedNamePatterns = []string{
	"qwerty", "asdfgh", "zxcvbn", "qwertz", "azerty",
	"asdf", "qwer", "wasd",
	"vyzkwj", "xqbhzt",
}

// nameRules parameterizes the shared name validator. AU and NZ differ only
// in the allowed character range and the vowel set; NZ admits the five
// macron vowels in both cases.
type nameRules struct {
	allowed *regexp.Regexp
	vowels  string
}

var (
	auNameRules = nameRules{
		allowed: regexp.MustCompile(`^[A-Za-z '\-]+$`),
		vowels:  "aeiou",
	}
	nzNameRules = nameRules{
		allowed: regexp.MustCompile(`^[A-Za-zĀāĒēĪīŌōŪū '\-]+$`),
		vowels:  "aeiouāēīōū",
	}
)

func rulesFor(region Region) nameRules {
	if region == RegionAU {
		return auNameRules
	}
	return nzNameRules
}

// ValidName reports whether name passes the region's personal-name checks.
// The function is pure: same input, same answer, no side effects.
func ValidName(name string, region Region) bool {
	rules := rulesFor(region)
	trimmed := strings.TrimSpace(name)

	if n := utf8.RuneCountInString(trimmed); n < 2 || n > 40 {
		return false
	}
	if !rules.allowed.MatchString(trimmed) {
		return false
	}
	if hasTripleRepeat(trimmed) {
		return false
	}

	lower := strings.ToLower(trimmed)
	for _, pattern := range bannedNamePatterns {
		if strings.Contains(lower, pattern) {
			return false
		}
	}
	if !strings.ContainsAny(lower, rules.vowels) {
		return false
	}

	return uppercaseWithinBudget(trimmed)
}

// hasTripleRepeat reports whether any rune occurs 3+ times consecutively.
func hasTripleRepeat(s string) bool {
	var prev rune
	run := 0
	for _, r := range s {
		if r == prev {
			run++
			if run >= 3 {
				return true
			}
		} else {
			prev = r
			run = 1
		}
	}
	return false
}

// uppercaseWithinBudget enforces the uppercase-density rule: a single-word
// name may carry at most 1 uppercase letter, a multi-word name at most 3
// across the whole string.
func uppercaseWithinBudget(name string) bool {
	upper := 0
	for _, r := range name {
		if unicode.IsUpper(r) {
			upper++
		}
	}
	if len(strings.Fields(name)) == 1 {
		return upper <= 1
	}
	return upper <= 3
}

// emailPattern is an RFC-5322-lite shape: permissive local part, dot-
// separated host labels of alphanumerics and hyphens with alphanumeric
// edges, and at least one dot in the domain.
var emailPattern = regexp.MustCompile(
	`^[A-Za-z0-9.!#$%&'*+/=?^_` + "`" + `{|}~-]+@[A-Za-z0-9](?:[A-Za-z0-9-]*[A-Za-z0-9])?(?:\.[A-Za-z0-9](?:[A-Za-z0-9-]*[A-Za-z0-9])?)+$`,
)

// ValidEmail reports whether the address matches the accepted shape and the
// standard length ceilings (254 total, 64 local part, 255 domain).
func ValidEmail(email string) bool {
	if email == "" || len(email) > 254 {
		return false
	}
	at := strings.LastIndex(email, "@")
	if at <= 0 {
		return false
	}
	local, domain := email[:at], email[at+1:]
	if len(local) > 64 || len(domain) > 255 {
		return false
	}
	if !strings.Contains(domain, ".") {
		return false
	}
	return emailPattern.MatchString(email)
}

var (
	nonDigits = regexp.MustCompile(`\D`)
	// 0412345678 or +61412345678 once non-digits are stripped.
	auMobile = regexp.MustCompile(`^(?:04\d{8}|614\d{8})$`)
	// 021/022/... with 7-8 subscriber digits, or the +642 form.
	nzMobile = regexp.MustCompile(`^(?:02\d{7,8}|642\d{7,8})$`)
)

// ValidMobile reports whether phone is a plausible mobile number for the
// region. All non-digit characters are stripped first, so spacing, hyphens,
// and a leading + are tolerated. An empty phone is valid: the field is
// optional.
func ValidMobile(phone string, region Region) bool {
	if strings.TrimSpace(phone) == "" {
		return true
	}
	digits := nonDigits.ReplaceAllString(phone, "")
	if region == RegionAU {
		return auMobile.MatchString(digits)
	}
	return nzMobile.MatchString(digits)
}

// validAmount requires a parseable number strictly greater than zero.
func validAmount(raw string) bool {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	return err == nil && v > 0
}

// ValidateSubmission runs the full validation chain in order, stopping at
// the first failure. The region is derived from the Lead Source field.
func ValidateSubmission(sub *Submission, amountField string) ValidationResult {
	if !sub.Has(FieldFirstName) || !sub.Has(FieldLastName) {
		return fail("names", MsgMissingNames)
	}
	if !ValidEmail(sub.Get(FieldEmail)) {
		return fail("email", MsgInvalidEmail)
	}
	if !validAmount(sub.Get(amountField)) {
		return fail("amount", MsgInvalidAmount)
	}

	region := DetectRegion(sub.Get(FieldLeadSource))
	nameMsg := MsgInvalidNameNZ
	phoneMsg := MsgInvalidPhoneNZ
	if region == RegionAU {
		nameMsg = MsgInvalidNameAU
		phoneMsg = MsgInvalidPhoneAU
	}

	if !ValidName(sub.Get(FieldFirstName), region) {
		return fail("first_name", nameMsg)
	}
	if !ValidName(sub.Get(FieldLastName), region) {
		return fail("last_name", nameMsg)
	}
	if !ValidMobile(sub.Get(FieldPhone), region) {
		return fail("phone", phoneMsg)
	}

	return pass()
}
