// Package result defines the uniform envelope every manager operation
// returns. Configuration, validation and network failures all collapse into
// the same shape with a descriptive error; callers branch on Err instead of
// handling panics.
package result

// Read is the envelope for read/list operations. Loading is always false by
// the time the envelope is returned (calls run to completion); the field is
// part of the wire shape consumers already depend on.
type Read[T any] struct {
	Data    T
	Total   int
	Loading bool
	Err     error
}

// Write is the envelope for create/update/delete operations.
type Write[T any] struct {
	Data    T
	Success bool
	Err     error
}

func OkRead[T any](data T, total int) Read[T] {
	return Read[T]{Data: data, Total: total}
}

func FailRead[T any](err error) Read[T] {
	return Read[T]{Err: err}
}

func OkWrite[T any](data T) Write[T] {
	return Write[T]{Data: data, Success: true}
}

func FailWrite[T any](err error) Write[T] {
	return Write[T]{Err: err}
}
