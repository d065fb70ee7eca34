package domain

import (
	"fmt"
	"time"
)

// TestType classifies the laboratory result backing an issuance request.
type TestType string

const (
	TestTypeConfirmed TestType = "confirmed"
	TestTypeLikely    TestType = "likely"
	TestTypeNegative  TestType = "negative"
)

// Valid reports whether t is one of the known test types.
func (t TestType) Valid() bool {
	switch t {
	case TestTypeConfirmed, TestTypeLikely, TestTypeNegative:
		return true
	}
	return false
}

const dateLayout = "2006-01-02"

// IssueRequest is the inbound request body for code issuance. Two field
// pairs are aliased for backwards compatibility with older callers:
// mobile/phone and onsetDate/symptomDate. At most one of each pair may be
// supplied.
type IssueRequest struct {
	Mobile      *string  `json:"mobile" validate:"omitempty,min=5,max=50"`
	Phone       *string  `json:"phone" validate:"omitempty,min=5,max=50"`
	OnsetDate   *string  `json:"onsetDate" validate:"omitempty,datetime=2006-01-02"`
	SymptomDate *string  `json:"symptomDate" validate:"omitempty,datetime=2006-01-02"`
	TestDate    *string  `json:"testDate" validate:"omitempty,datetime=2006-01-02"`
	TestType    TestType `json:"testType" validate:"omitempty,oneof=confirmed likely negative"`
	JobID       string   `json:"jobId"`
}

// Issuance is the canonical, alias-free form of an IssueRequest.
type Issuance struct {
	Mobile    string // raw as supplied; empty means no delivery requested
	OnsetDate *time.Time
	TestDate  *time.Time
	TestType  TestType
	JobID     string
}

// Resolve merges the aliased field pairs into an Issuance. Supplying both
// halves of a pair is rejected; a missing test type defaults to confirmed.
func (r IssueRequest) Resolve() (*Issuance, error) {
	if r.Mobile != nil && r.Phone != nil {
		return nil, fmt.Errorf("mobile and phone are mutually exclusive: %w", ErrValidation)
	}
	if r.OnsetDate != nil && r.SymptomDate != nil {
		return nil, fmt.Errorf("onsetDate and symptomDate are mutually exclusive: %w", ErrValidation)
	}

	iss := &Issuance{
		TestType: TestTypeConfirmed,
		JobID:    r.JobID,
	}
	if r.Mobile != nil {
		iss.Mobile = *r.Mobile
	} else if r.Phone != nil {
		iss.Mobile = *r.Phone
	}
	if r.TestType != "" {
		if !r.TestType.Valid() {
			return nil, fmt.Errorf("unknown test type %q: %w", r.TestType, ErrValidation)
		}
		iss.TestType = r.TestType
	}

	var err error
	if iss.OnsetDate, err = parseDate(r.OnsetDate); err != nil {
		return nil, err
	}
	if iss.OnsetDate == nil {
		if iss.OnsetDate, err = parseDate(r.SymptomDate); err != nil {
			return nil, err
		}
	}
	if iss.TestDate, err = parseDate(r.TestDate); err != nil {
		return nil, err
	}
	return iss, nil
}

func parseDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, *s)
	if err != nil {
		return nil, fmt.Errorf("date must be in YYYY-MM-DD format: %w", ErrValidation)
	}
	return &t, nil
}
