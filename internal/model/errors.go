package model

import "errors"

// ErrEmptyInput - the request carried no topic or sentence.
var ErrEmptyInput = errors.New("empty input")

// ErrContentGenerationFailed - the AI collaborator failed to produce a valid document.
var ErrContentGenerationFailed = errors.New("content generation failed")

// ErrInvalidDocument - the generated JSON parsed but failed schema validation.
var ErrInvalidDocument = errors.New("invalid generated document")

// ErrRasterizationFailed - the headless browser failed to produce a screenshot.
var ErrRasterizationFailed = errors.New("rasterization failed")

// ErrNotFound - the requested item does not exist (or has no readable metadata).
var ErrNotFound = errors.New("not found")
