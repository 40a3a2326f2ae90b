package dashboard

import "errors"

var (
	// ErrEmptyMessage is returned by SendMessage when the recipient or the
	// content is blank. No request is made.
	ErrEmptyMessage = errors.New("recipient and message are required")

	ErrUnknownQuestionType = errors.New("unknown application question type")
	ErrInvalidReviewAction = errors.New("review action must be approve or deny")
	ErrMissingApplication  = errors.New("application id is required")
)
