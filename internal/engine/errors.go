package engine

import "github.com/cockroachdb/errors"

// ErrInvalidInput marks failures the caller can fix: missing origin,
// non-positive radius. Never retried.
var ErrInvalidInput = errors.New("invalid input")

// ErrStoreFailure marks failures of the station or community-report queries.
// These fail the whole resolution: an empty community result is
// indistinguishable from "no reports exist", so a real fetch error must not
// degrade silently. Reference price fetch errors, in contrast, degrade to an
// empty mapping.
var ErrStoreFailure = errors.New("store failure")
