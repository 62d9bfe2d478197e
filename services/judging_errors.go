package services

import (
	"errors"
	"net/http"
)

// Judging error taxonomy. Services return these sentinels (optionally wrapped)
// so handlers can map them to HTTP statuses without string matching.
var (
	ErrNotAuthenticated           = errors.New("not authenticated")
	ErrNotAuthorized              = errors.New("not authorized")
	ErrGroupNotFound              = errors.New("judging group not found")
	ErrGroupInactive              = errors.New("judging group is not active")
	ErrGroupNotStarted            = errors.New("judging has not started yet")
	ErrGroupEnded                 = errors.New("judging has ended")
	ErrInvalidScoreRange          = errors.New("score must be an integer between 1 and 5")
	ErrCriterionGroupMismatch     = errors.New("criterion does not belong to the judge's group")
	ErrSubmissionNotInGroup       = errors.New("submission is not part of the judging group")
	ErrSessionNotFound            = errors.New("judge session not found")
	ErrDuplicateReferenceConflict = errors.New("criterion is still referenced by scores")
	ErrInvalidJudgeName           = errors.New("judge name must be at least 2 characters")
	ErrIncompleteCoverage         = errors.New("judge has not scored every criterion")
	ErrSubmissionCompleted        = errors.New("submission is already completed")
	ErrScoreNotFound              = errors.New("score not found")
	ErrJudgeNotFound              = errors.New("judge not found")
	ErrCriterionNotFound          = errors.New("criterion not found")
)

// StatusFor maps a taxonomy error to an HTTP status code.
// Unknown errors are treated as internal.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, ErrNotAuthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNotAuthorized):
		return http.StatusForbidden
	case errors.Is(err, ErrGroupNotFound),
		errors.Is(err, ErrScoreNotFound),
		errors.Is(err, ErrJudgeNotFound),
		errors.Is(err, ErrCriterionNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrGroupInactive),
		errors.Is(err, ErrGroupNotStarted),
		errors.Is(err, ErrGroupEnded):
		return http.StatusForbidden
	case errors.Is(err, ErrSessionNotFound):
		return http.StatusUnauthorized
	case errors.Is(err, ErrInvalidScoreRange),
		errors.Is(err, ErrCriterionGroupMismatch),
		errors.Is(err, ErrSubmissionNotInGroup),
		errors.Is(err, ErrInvalidJudgeName):
		return http.StatusBadRequest
	case errors.Is(err, ErrDuplicateReferenceConflict),
		errors.Is(err, ErrIncompleteCoverage),
		errors.Is(err, ErrSubmissionCompleted):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
