package domain

// DeliveryJob describes one SMS dispatch handed to the asynchronous delivery
// queue. The code travels in plaintext and exists only in transit; this
// service is the sole producer. SendCount starts at 1 and is incremented by
// the downstream consumer on retries, never here.
type DeliveryJob struct {
	Code      string `json:"code"`
	Mobile    string `json:"mobile"`
	OnsetDate string `json:"onsetDate,omitempty"`
	TestDate  string `json:"testDate,omitempty"`
	JobID     string `json:"jobId,omitempty"`
	SendCount int    `json:"sendCount"`
}
