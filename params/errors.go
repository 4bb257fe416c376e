package params

import "errors"

var (
	ErrMalformedLine      = errors.New("params: malformed line")
	ErrMalformedValue     = errors.New("params: malformed value")
	ErrUnknownKeyword     = errors.New("params: unknown keyword")
	ErrMissingProblemFile = errors.New("params: missing PROBLEM_FILE")
)
