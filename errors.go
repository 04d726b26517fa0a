package walletprobe

import "errors"

// Validation errors
var (
	// ErrSchemaViolation indicates a payload does not match its wire schema
	ErrSchemaViolation = errors.New("schema violation")

	// ErrBusinessRuleViolation indicates a transaction spec breaks a domain rule
	ErrBusinessRuleViolation = errors.New("business rule violation")

	// ErrConsistencyViolation indicates wallet state diverged from the expected outcome
	ErrConsistencyViolation = errors.New("consistency violation")
)

// Transport errors
var (
	// ErrTransportFailure indicates the wallet service could not be reached
	ErrTransportFailure = errors.New("transport failure")

	// ErrLoginFailed indicates authentication was rejected
	ErrLoginFailed = errors.New("login failed")

	// ErrUnexpectedStatus indicates a setup call returned a non-success status
	ErrUnexpectedStatus = errors.New("unexpected response status")
)

// Workflow errors
var (
	// ErrNoSession indicates an operation ran without an open session
	ErrNoSession = errors.New("no session")

	// ErrNoAPI indicates the orchestrator was built without a wallet API client
	ErrNoAPI = errors.New("wallet API client is required")
)

// Configuration errors
var (
	// ErrInvalidConfig indicates the configuration is invalid
	ErrInvalidConfig = errors.New("invalid configuration")
)
