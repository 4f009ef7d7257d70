package leads

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidNameLengthBounds(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"single char", "A", false},
		{"two chars", "Jo", true},
		{"forty chars", strings.Repeat("jane ", 7) + "smith", true}, // 40 runes
		{"forty one chars", strings.Repeat("ab", 20) + "a", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidName(tt.in, RegionAU), "input %q", tt.in)
		})
	}
}

func TestValidNameBannedPatterns(t *testing.T) {
	tests := []string{
		"Maqwerty",
		"QWERTY",
		"Asdfgh",
		"Zxcvbnia",
		"Liqwertzon",
		"Mazerty",
		"Masdfon",
		"Maqwern", // contains qwer
		"Wasdley", // contains wasd
	}
	for _, in := range tests {
		t.Run(in, func(t *testing.T) {
			assert.False(t, ValidName(in, RegionAU), "banned pattern should reject %q", in)
			assert.False(t, ValidName(in, RegionNZ), "banned pattern should reject %q under NZ rules", in)
		})
	}
}

func TestValidNameUppercaseDensity(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"single word one upper", "Mary", true},
		{"single word no upper", "mary", true},
		{"single word two upper", "MaRy", false},
		{"single word all upper", "MARY", false},
		{"two words two upper", "Mary Jones", true},
		{"three words three upper", "Mary Anne Smith", true},
		{"two words four upper", "MAry JOnes", false},
		{"leading space trimmed", "  Mary Jones  ", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidName(tt.in, RegionAU), "input %q", tt.in)
		})
	}
}

func TestValidNameCharacterRules(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		region Region
		want   bool
	}{
		{"hyphen allowed", "Mary-anne", RegionAU, true},
		{"apostrophe allowed", "O'brien", RegionAU, true},
		{"digits rejected", "Mary2", RegionAU, false},
		{"symbols rejected", "Mary!", RegionAU, false},
		{"triple repeat rejected", "Maaary", RegionAU, false},
		{"double repeat fine", "Maary", RegionAU, true},
		{"no vowel rejected", "Bcdfg", RegionAU, false},
		{"macron rejected for AU", "Māori", RegionAU, false},
		{"macron allowed for NZ", "Māori", RegionNZ, true},
		{"macron vowel satisfies NZ vowel rule", "Ngā", RegionNZ, true},
		{"macron not a vowel for AU rules", "Ngā", RegionAU, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidName(tt.in, tt.region), "input %q region %s", tt.in, tt.region)
		})
	}
}

func TestValidNameIdempotent(t *testing.T) {
	inputs := []string{"Mary", "MaRy", "Maqwerty", "Māori", ""}
	for _, in := range inputs {
		first := ValidName(in, RegionNZ)
		second := ValidName(in, RegionNZ)
		assert.Equal(t, first, second, "re-validating %q must not change the answer", in)
	}
}

func TestValidEmail(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"plain", "user@example.com", true},
		{"subdomains", "user@sub.example.com.au", true},
		{"plus tag", "user+tag@example.com", true},
		{"no dot in domain", "user@localhost", false},
		{"missing at", "userexample.com", false},
		{"empty", "", false},
		{"leading hyphen label", "user@-example.com", false},
		{"trailing hyphen label", "user@example-.com", false},
		{"long local part", strings.Repeat("a", 255) + "@example.com", false},
		{"local part at limit", strings.Repeat("a", 64) + "@example.com", true},
		{"total too long", strings.Repeat("a", 60) + "@" + strings.Repeat("b", 60) + "." + strings.Repeat("c", 60) + "." + strings.Repeat("d", 60) + "." + strings.Repeat("e", 60) + ".com", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidEmail(tt.in), "input %q", tt.in)
		})
	}
}

func TestValidMobileAU(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"local format", "0412345678", true},
		{"international format", "+61412345678", true},
		{"spaced", "0412 345 678", true},
		{"hyphenated", "0412-345-678", true},
		{"wrong prefix", "0212345678", false},
		{"too short", "041234567", false},
		{"too long", "04123456789", false},
		{"letters only", "abcdefghij", false},
		{"empty is valid (optional)", "", true},
		{"whitespace only is valid", "   ", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidMobile(tt.in, RegionAU), "input %q", tt.in)
		})
	}
}

func TestValidMobileNZ(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"nine digit local", "021123456", true},
		{"ten digit local", "0211234567", true},
		{"international format", "+64211234567", true},
		{"AU number rejected", "0412345678", false},
		{"too short", "02112345", false},
		{"too long", "02112345678", false},
		{"empty is valid (optional)", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidMobile(tt.in, RegionNZ), "input %q", tt.in)
		})
	}
}

func TestDetectRegion(t *testing.T) {
	assert.Equal(t, RegionAU, DetectRegion("WebForm-AU"))
	assert.Equal(t, RegionNZ, DetectRegion("WebForm-NZ"))
	assert.Equal(t, RegionNZ, DetectRegion(""))
	assert.Equal(t, RegionNZ, DetectRegion("webform-au")) // exact match only
}

func validSubmission() *Submission {
	sub := NewSubmission()
	sub.Add(FieldFirstName, "Mary")
	sub.Add(FieldLastName, "Jones")
	sub.Add(FieldEmail, "mary@example.com")
	sub.Add("LEADCF66", "100")
	sub.Add(FieldLeadSource, "WebForm-AU")
	sub.Add(FieldPhone, "0412345678")
	return sub
}

func TestValidateSubmissionPasses(t *testing.T) {
	res := ValidateSubmission(validSubmission(), "LEADCF66")
	assert.True(t, res.Valid)
	assert.Empty(t, res.Reason)
}

func TestValidateSubmissionShortCircuits(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Submission)
		reason string
	}{
		{
			"missing first name",
			func(s *Submission) { s.fields[0].Value = "" },
			MsgMissingNames,
		},
		{
			"invalid email",
			func(s *Submission) { s.fields[2].Value = "not-an-email" },
			MsgInvalidEmail,
		},
		{
			"zero amount",
			func(s *Submission) { s.fields[3].Value = "0" },
			MsgInvalidAmount,
		},
		{
			"non-numeric amount",
			func(s *Submission) { s.fields[3].Value = "lots" },
			MsgInvalidAmount,
		},
		{
			"bad AU name",
			func(s *Submission) { s.fields[0].Value = "MaRy" },
			MsgInvalidNameAU,
		},
		{
			"bad AU mobile",
			func(s *Submission) { s.fields[5].Value = "0212345678" },
			MsgInvalidPhoneAU,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := validSubmission()
			tt.mutate(sub)
			res := ValidateSubmission(sub, "LEADCF66")
			assert.False(t, res.Valid)
			assert.Equal(t, tt.reason, res.Reason)
		})
	}
}

func TestValidateSubmissionNZMessages(t *testing.T) {
	sub := NewSubmission()
	sub.Add(FieldFirstName, "MaRi")
	sub.Add(FieldLastName, "Kāmaka")
	sub.Add(FieldEmail, "mari@example.co.nz")
	sub.Add("LEADCF66", "250")
	// No Lead Source: defaults to NZ rules.

	res := ValidateSubmission(sub, "LEADCF66")
	assert.False(t, res.Valid)
	assert.Equal(t, MsgInvalidNameNZ, res.Reason)

	sub.fields[0].Value = "Mari"
	sub.Add(FieldPhone, "0412345678") // AU shape fails NZ rules
	res = ValidateSubmission(sub, "LEADCF66")
	assert.False(t, res.Valid)
	assert.Equal(t, MsgInvalidPhoneNZ, res.Reason)
}

func TestValidateSubmissionMobileOptional(t *testing.T) {
	sub := validSubmission()
	sub.fields[5].Value = ""
	res := ValidateSubmission(sub, "LEADCF66")
	assert.True(t, res.Valid)
}

func TestValidateSubmissionAmountMissing(t *testing.T) {
	sub := NewSubmission()
	sub.Add(FieldFirstName, "Mary")
	sub.Add(FieldLastName, "Jones")
	sub.Add(FieldEmail, "mary@example.com")
	res := ValidateSubmission(sub, "LEADCF66")
	assert.False(t, res.Valid)
	assert.Equal(t, MsgInvalidAmount, res.Reason)
}
