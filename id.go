package exgroup

import "github.com/xraph/exgroup/id"

// ID is the primary identifier type for all exgroup entities.
type ID = id.ID

// Prefix identifies the entity type encoded in a TypeID.
type Prefix = id.Prefix
