package descent

import "errors"

// Common errors used throughout the descent package
var (
	// ErrConfigValidation is returned when configuration validation fails
	ErrConfigValidation = errors.New("configuration validation failed")
	// ErrFixtureFailed is returned when one or more fixture cases do not match.
	ErrFixtureFailed = errors.New("fixture cases failed")
	// ErrNoFixtures indicates a fixture directory without any Markdown documents.
	ErrNoFixtures = errors.New("no fixture documents found")
)
