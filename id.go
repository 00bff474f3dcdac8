package billfold

import "github.com/billfold/billfold/id"

// ID is the primary identifier type for all Billfold entities.
type ID = id.ID

// Prefix identifies the entity type encoded in a TypeID.
type Prefix = id.Prefix
