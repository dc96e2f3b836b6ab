package history

import "errors"

// ErrItemNotFound is returned by ItemByID when no entry has the given id.
var ErrItemNotFound = errors.New("history item not found")
