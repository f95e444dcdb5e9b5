// Package bda submits documents to Bedrock Data Automation and waits for the
// extraction to finish.
//
// Retry and polling decisions are pure functions (RetryPolicy.Next,
// PollPolicy.Next). Runner drives them against a JobService, which in
// production is a Client over the bedrockdataautomationruntime API.
package bda

// Handle is the invocation ARN returned when a job is submitted
type Handle string

func (h Handle) String() string { return string(h) }

// JobStatus mirrors the service's AutomationJobStatus
type JobStatus string

const (
	StatusCreated      JobStatus = "Created"
	StatusInProgress   JobStatus = "InProgress"
	StatusSuccess      JobStatus = "Success"
	StatusServiceError JobStatus = "ServiceError"
	StatusClientError  JobStatus = "ClientError"
)

// Terminal reports whether polling should stop at this status.
// Unknown statuses are treated as still running.
func (s JobStatus) Terminal() bool {
	switch s {
	case StatusSuccess, StatusServiceError, StatusClientError:
		return true
	}
	return false
}

// Failed reports a service-reported terminal failure
func (s JobStatus) Failed() bool {
	return s == StatusServiceError || s == StatusClientError
}

// Status is one answer from a status query
type Status struct {
	State          JobStatus
	OutputLocation string // s3 URI of job_metadata.json, empty until the service reports it
	ErrorMessage   string
	ErrorType      string
}
