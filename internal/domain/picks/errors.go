package picks

import "errors"

// Sentinel kinds for validation rejections. The validator reports the first
// violated rule; callers surface it to the submitting participant.
var (
	ErrTooManyEntrants       = errors.New("entrant selection exceeds the field size")
	ErrFinalFourTooLarge     = errors.New("final four selection exceeds four entrants")
	ErrSideNotInMatch        = errors.New("predicted winning side does not belong to the match")
	ErrFinishPickNotAllowed  = errors.New("finish picks are not accepted for two-participant matches")
	ErrInvalidFinishMethod   = errors.New("unrecognized finish method")
	ErrFinishWinnerNotOnSide = errors.New("finish winner is not on the predicted winning side")
	ErrFinishLoserOnWinning  = errors.New("finish loser is on the predicted winning side")
)
