package utils

import "errors"

var (
	ErrEmptyInput             = errors.New("input text cannot be empty")
	ErrInvalidInput           = errors.New("invalid user input")
	ErrUnexpectedBehaviorOfAI = errors.New("unexpected response from generative model")
	ErrMissingAPIKey          = errors.New("missing API key")
)
