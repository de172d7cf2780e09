package sqldataset

import "context"

/*
Adapter is an interface providing the methods
needed to implement a Set with a database backend.

Raw samples are slices with the ids of the discrete values of a
sample, in the order of the columns passed along with them.
*/
type Adapter interface {
	ColumnName(string) (string, error)

	CreateDiscreteValuesTable(context.Context) error
	CreateSampleTable(ctx context.Context, columns []string) error

	AddDiscreteValues(context.Context, []string) (int, error)
	ListDiscreteValues(context.Context) (map[int]string, error)

	AddSamples(ctx context.Context, rawSamples [][]int, columns []string) (int, error)
	IterateOnSamples(ctx context.Context, columns []string, lambda func(int, []int) (bool, error)) error
	CountSamples(context.Context) (int, error)

	Close() error
}
