package inputval

import (
	"github.com/YatharthSanghavi/wt-project/internal/app/system/apierr"
)

const (
	msgMinOverMax     = "Minimum participants cannot be greater than maximum participants"
	msgMinBelowOne    = "Minimum participants must be at least 1"
	msgMaxBelowOne    = "Maximum participants must be at least 1"
	msgGroupsBelowOne = "Maximum groups allowed must be at least 1"
	msgNegativeFees   = "Fees cannot be negative"
	msgEventFull      = "Event is full"
	msgGroupFull      = "Group already has the maximum number of participants"
)

// EventBounds are the numeric limits of an event.
type EventBounds struct {
	GroupMin  int
	GroupMax  int
	MaxGroups int
	Fees      float64
}

// EventPatch holds the bound fields present in an update body. Nil means the
// field was not supplied.
type EventPatch struct {
	GroupMin  *int
	GroupMax  *int
	MaxGroups *int
	Fees      *float64
}

// CheckEventBounds validates the limits of a new event.
func CheckEventBounds(b EventBounds) error {
	if b.GroupMin > b.GroupMax {
		return apierr.Validation(msgMinOverMax)
	}
	if b.GroupMin < 1 {
		return apierr.Validation(msgMinBelowOne)
	}
	if b.GroupMax < 1 {
		return apierr.Validation(msgMaxBelowOne)
	}
	if b.MaxGroups < 1 {
		return apierr.Validation(msgGroupsBelowOne)
	}
	if b.Fees < 0 {
		return apierr.Validation(msgNegativeFees)
	}
	return nil
}

// CheckEventPatch validates an update against the stored limits. When only
// one half of the min/max pair is supplied, the other half comes from stored.
// Fields absent from the patch are not re-validated.
func CheckEventPatch(stored EventBounds, p EventPatch) error {
	if p.GroupMin != nil || p.GroupMax != nil {
		lo, hi := stored.GroupMin, stored.GroupMax
		if p.GroupMin != nil {
			lo = *p.GroupMin
		}
		if p.GroupMax != nil {
			hi = *p.GroupMax
		}
		if lo > hi {
			return apierr.Validation(msgMinOverMax)
		}
		if lo < 1 {
			return apierr.Validation(msgMinBelowOne)
		}
		if hi < 1 {
			return apierr.Validation(msgMaxBelowOne)
		}
	}
	if p.MaxGroups != nil && *p.MaxGroups < 1 {
		return apierr.Validation(msgGroupsBelowOne)
	}
	if p.Fees != nil && *p.Fees < 0 {
		return apierr.Validation(msgNegativeFees)
	}
	return nil
}

// Apply returns stored with the patch's fields overlaid.
func (p EventPatch) Apply(stored EventBounds) EventBounds {
	if p.GroupMin != nil {
		stored.GroupMin = *p.GroupMin
	}
	if p.GroupMax != nil {
		stored.GroupMax = *p.GroupMax
	}
	if p.MaxGroups != nil {
		stored.MaxGroups = *p.MaxGroups
	}
	if p.Fees != nil {
		stored.Fees = *p.Fees
	}
	return stored
}

// CheckGroupCapacity refuses a new registration once an event has
// maxGroups groups.
func CheckGroupCapacity(registered int64, maxGroups int) error {
	if registered >= int64(maxGroups) {
		return apierr.Conflict(msgEventFull)
	}
	return nil
}

// CheckGroupSize refuses a participant that would push a group past max.
func CheckGroupSize(current int64, max int) error {
	if current >= int64(max) {
		return apierr.Validation(msgGroupFull)
	}
	return nil
}
