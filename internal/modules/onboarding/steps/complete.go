package steps

import (
	"errors"

	types "github.com/stoiccoach/stoic-coach-backend/internal/domain"
)

// Onboarding step identifiers returned to the client router.
const (
	StepAlwaysNever   = "always-never"
	StepAgreeDisagree = "agree-disagree"
	StepComplete      = "complete"
)

// ErrAnswerOutOfRange rejects questionnaire writes whose answers fall
// outside the 1-5 scale.
var ErrAnswerOutOfRange = errors.New("answers must be integers between 1 and 5")

// scaleComplete requires every field set and in [1,5].
func scaleComplete(fields []*int) bool {
	if len(fields) == 0 {
		return false
	}
	for _, f := range fields {
		if f == nil || *f < 1 || *f > 5 {
			return false
		}
	}
	return true
}

func AlwaysNeverComplete(record *types.AlwaysNever) bool {
	return record != nil && scaleComplete(record.ScaleFields())
}

func AgreeDisagreeComplete(record *types.AgreeDisagree) bool {
	return record != nil && scaleComplete(record.ScaleFields())
}

// validateScale allows unanswered fields through (partial saves) but
// rejects out-of-range answers.
func validateScale(fields []*int) error {
	for _, f := range fields {
		if f != nil && (*f < 1 || *f > 5) {
			return ErrAnswerOutOfRange
		}
	}
	return nil
}
