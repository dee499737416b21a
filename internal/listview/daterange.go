package listview

import "errors"

var ErrFromAfterTo = errors.New("From date must be before or equal to To date.")

// DateRange is an inclusive ISO-day filter. Either bound may be empty.
// Setting one bound past the other drags the other bound along, so the
// range a user can build is always ordered.
type DateRange struct {
	From string
	To   string
}

func (r *DateRange) SetFrom(value string) {
	r.From = value
	if r.To != "" && value != "" && value > r.To {
		r.To = value
	}
}

func (r *DateRange) SetTo(value string) {
	r.To = value
	if r.From != "" && value != "" && value < r.From {
		r.From = value
	}
}

// Validate rejects an inverted range. Bounds set through SetFrom/SetTo never
// invert; this guards ranges assembled directly.
func (r DateRange) Validate() error {
	if r.From != "" && r.To != "" && r.From > r.To {
		return ErrFromAfterTo
	}
	return nil
}

// Contains reports whether the ISO day falls inside the range. ISO day
// strings compare lexicographically in chronological order.
func (r DateRange) Contains(date string) bool {
	if r.From != "" && date < r.From {
		return false
	}
	if r.To != "" && date > r.To {
		return false
	}
	return true
}

func (r DateRange) IsZero() bool {
	return r.From == "" && r.To == ""
}
