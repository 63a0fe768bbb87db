package pipeline

import "errors"

var (
	// ErrExtractorRequired indicates that no extractor was provided.
	ErrExtractorRequired = errors.New("extractor is required")

	// ErrSinkRequired indicates that no sink was provided.
	ErrSinkRequired = errors.New("sink is required")

	// ErrQuarantineRequired indicates PolicyQuarantine was chosen without a store.
	ErrQuarantineRequired = errors.New("quarantine policy requires a quarantine store")

	// ErrUnknownPolicy indicates an unrecognized policy name.
	ErrUnknownPolicy = errors.New("unknown error policy")

	// ErrInvalidBatchSize indicates a batch size below 1.
	ErrInvalidBatchSize = errors.New("batch size must be at least 1")
)
