package domain

// Metric event names. Every issuance request ends in exactly one terminal
// event; SMS_FAIL is additionally recorded when a queued dispatch could not
// be enqueued.
const (
	EventCodeGenerated = "VERIFICATION_CODE_GENERATED"
	EventCodeFail      = "VERIFICATION_CODE_FAIL"
	EventSMSFail       = "SMS_FAIL"
)
