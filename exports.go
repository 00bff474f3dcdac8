package billfold

import "github.com/billfold/billfold/types"

// Re-export common types for convenience so users don't have to import types package.

// Date is re-exported from types package.
type Date = types.Date

// Entity is re-exported from types package.
type Entity = types.Entity

// Re-export Date constructors and normalization
var (
	NewDate       = types.NewDate
	DateOf        = types.DateOf
	ParseDate     = types.ParseDate
	NormalizeDate = types.NormalizeDate
)

// Re-export Entity constructor
var NewEntity = types.NewEntity
