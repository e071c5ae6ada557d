package state

import (
	"github.com/matzehuels/rxtimeline/pkg/errors"
)

// Rejection is an activity excluded from the geometry and the reason why.
type Rejection struct {
	Activity Activity `json:"activity"`
	Err      error    `json:"-"`
	Reason   string   `json:"reason"`
}

// Validation splits activities into those that can be drawn and those that
// cannot.
type Validation struct {
	Valid    []Activity
	Rejected []Rejection
}

// Validate checks each activity on its own. An activity is rejected when it
// has no series, when its series is not one of declared (if any are
// declared), or when it finishes before it starts. Each rejection carries an
// [errors.ErrCodeInvalidActivity] error. The relative order of activities is
// preserved in both outputs.
func Validate(activities []Activity, declared []string) Validation {
	var known map[string]bool
	if len(declared) > 0 {
		known = make(map[string]bool, len(declared))
		for _, r := range declared {
			known[r] = true
		}
	}

	v := Validation{Valid: make([]Activity, 0, len(activities))}
	for _, a := range activities {
		if err := validateActivity(a, known); err != nil {
			v.Rejected = append(v.Rejected, Rejection{Activity: a, Err: err, Reason: errors.UserMessage(err)})
			continue
		}
		v.Valid = append(v.Valid, a)
	}
	return v
}

func validateActivity(a Activity, known map[string]bool) error {
	switch {
	case a.Series == "":
		return errors.New(errors.ErrCodeInvalidActivity, "activity %q has no series", a.ID)
	case known != nil && !known[a.Series]:
		return errors.New(errors.ErrCodeInvalidActivity, "activity %q: series %q is not a declared resource", a.ID, a.Series)
	case a.Finish.Before(a.Start):
		return errors.New(errors.ErrCodeInvalidActivity, "activity %q finishes before it starts (%s < %s)",
			a.ID, a.Finish.Format("2006-01-02T15:04:05Z07:00"), a.Start.Format("2006-01-02T15:04:05Z07:00"))
	}
	return nil
}

// Resources returns the lane keys: the declared list when non-empty,
// otherwise the series of activities. Either way keys are distinct,
// non-empty and in first-seen order.
func Resources(activities []Activity, declared []string) []string {
	seen := make(map[string]bool)
	out := make([]string, 0)
	add := func(key string) {
		if key == "" || seen[key] {
			return
		}
		seen[key] = true
		out = append(out, key)
	}
	if len(declared) > 0 {
		for _, key := range declared {
			add(key)
		}
		return out
	}
	for _, a := range activities {
		add(a.Series)
	}
	return out
}
