package dataset

import "context"

/*
Writer is an interface for a destination to which samples
can be written to.
*/
type Writer interface {
	// Write will attempt to write the given samples
	// and will return the actually written number of
	// samples and an error (if not all samples could
	// be written)
	Write(context.Context, []Sample) (int, error)
	// Count returns the total number of samples written
	// to the writer
	Count() int
	// Flush ensures any pending written operations finish
	// before returning. It returns an error if that cannot
	// be ensured.
	Flush() error
}
