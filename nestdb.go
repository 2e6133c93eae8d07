// Package nestdb is an in-memory key/value store with nested transactions
// and a value index. Writes are journaled per transaction level; rollback
// undoes exactly the innermost level, commit flattens all of them.
package nestdb

import "errors"

// ErrNoTransaction is returned by Rollback when no transaction is open.
// It is informational, not fatal: state is unchanged and the session goes on.
var ErrNoTransaction = errors.New("transaction not found")
