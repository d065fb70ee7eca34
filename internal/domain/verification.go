package domain

// VerificationCode is the persisted record backing an issued code.
// Only hashes are stored: the control hash (first half of the code) lets the
// redemption side detect partial-guess brute forcing, the full-code hash
// gates actual redemption. The record is written exactly once and never
// updated by this service.
// PK: code (full-code hash). ExpiresAt is a Unix timestamp used as DynamoDB TTL.
type VerificationCode struct {
	Control   string `json:"control" dynamodbav:"control"`
	Code      string `json:"code" dynamodbav:"code"`
	OnsetDate string `json:"onset_date,omitempty" dynamodbav:"onset_date,omitempty"` // YYYY-MM-DD
	TestType  string `json:"test_type" dynamodbav:"test_type"`
	Mobile    string `json:"mobile,omitempty" dynamodbav:"mobile,omitempty"` // encrypted, present only for deferred delivery
	LongCode  bool   `json:"long_code" dynamodbav:"long_code"`
	CreatedAt int64  `json:"created_at" dynamodbav:"created_at"`
	ExpiresAt int64  `json:"expires_at" dynamodbav:"expires_at"` // TTL (Unix seconds)
}
