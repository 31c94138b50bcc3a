package finding

import "github.com/shaneholloman/ultimate-bug-scanner/internal/common"

// Category identifies one defect catalogue entry.
type Category uint8

const (
	CategoryUnknown Category = iota
	CategoryConcurrency
	CategoryOwnership
	CategoryLockBalance
	CategoryDestructor
	CategoryMacro
	CategoryAsync

	// CategoryTotal is the number of categories defined.
	CategoryTotal = int(iota)
)

// String returns the canonical category name, matching the fixture
// directory convention.
func (c Category) String() string {
	switch c {
	case CategoryConcurrency:
		return "concurrency"
	case CategoryOwnership:
		return "ownership"
	case CategoryLockBalance:
		return "lock_balance"
	case CategoryDestructor:
		return "destructor"
	case CategoryMacro:
		return "macro"
	case CategoryAsync:
		return "async_errors"
	default:
		return common.UnknownStr
	}
}

// ParseCategory maps a canonical name back to its Category.
// Unrecognized names yield CategoryUnknown.
func ParseCategory(name string) Category {
	for c := CategoryConcurrency; int(c) < CategoryTotal; c++ {
		if c.String() == name {
			return c
		}
	}

	return CategoryUnknown
}

// Categories returns all defined categories in declaration order.
func Categories() []Category {
	out := make([]Category, 0, CategoryTotal-1)
	for c := CategoryConcurrency; int(c) < CategoryTotal; c++ {
		out = append(out, c)
	}

	return out
}

// CategorySet is a bitmask of enabled categories.
type CategorySet uint16

const (
	// CategorySetAll enables every defined category.
	CategorySetAll CategorySet = 1<<CategoryTotal - 2

	// CategorySetNone disables everything.
	CategorySetNone CategorySet = 0
)

// Has reports whether the category is in the set.
func (s CategorySet) Has(c Category) bool {
	return s&(1<<c) != 0
}

// With returns the set extended with c.
func (s CategorySet) With(c Category) CategorySet {
	return s | 1<<c
}
