package errors

import "errors"

// ErrOptimisticLock the row changed since it was read; the caller should reload and retry.
var ErrOptimisticLock = errors.New("record was modified by another request, reload and retry")
