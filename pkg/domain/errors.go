package domain

import "errors"

// ErrInvalidQuery is returned when a query is missing its start or end node.
var ErrInvalidQuery = errors.New("invalid query")

// ErrDefinitionNotFound is returned when a source has no definition for the requested key.
var ErrDefinitionNotFound = errors.New("definition not found")

// ErrMalformedDefinition is returned when a definition cannot be decoded into a graph.
var ErrMalformedDefinition = errors.New("malformed definition")

// ErrSourceUnavailable is returned when a remote source answers with an unexpected status.
var ErrSourceUnavailable = errors.New("definition source unavailable")

// ErrCacheMiss is returned by a DefinitionCache when the key is not cached.
var ErrCacheMiss = errors.New("cache miss")
