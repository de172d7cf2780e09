package feature

import "fmt"

// CriterionError represents an error evaluating a criterion on a sample
type CriterionError string

/*
ErrAttributeOutOfRange is the error returned when a criterion tests an
attribute index the evaluated sample does not have a value for.
*/
const ErrAttributeOutOfRange = CriterionError("attribute index out of range for sample")

func (ce CriterionError) Error() string {
	return string(ce)
}

/*
Sample is an interface for something that can satisfy a Criterion.

Its Values method returns the ordered categorical values of the sample.
*/
type Sample interface {
	Values() []string
}

/*
Criterion represents a binary test on a sample: whether the value at a given
attribute index equals a given value.

Its SatisfiedBy method takes a sample and returns a boolean indicating if the
sample satisfies the criterion, or ErrAttributeOutOfRange (wrapped) when the
sample has no value at the tested index.
*/
type Criterion interface {
	Index() int
	Value() string
	SatisfiedBy(Sample) (bool, error)
}

type equalityCriterion struct {
	index int
	value string
}

/*
NewEqualityCriterion takes an attribute index and a value and returns a
Criterion satisfied by samples whose value at that index equals the given
value.
*/
func NewEqualityCriterion(index int, value string) Criterion {
	return &equalityCriterion{index, value}
}

func (ec *equalityCriterion) Index() int {
	return ec.index
}

func (ec *equalityCriterion) Value() string {
	return ec.value
}

func (ec *equalityCriterion) SatisfiedBy(s Sample) (bool, error) {
	return Satisfies(s.Values(), ec.index, ec.value)
}

func (ec *equalityCriterion) String() string {
	return fmt.Sprintf("a[%d]=%s", ec.index, ec.value)
}

/*
Satisfies takes a slice of sample values, an attribute index and a value and
returns whether the value at the index equals the given one. It returns an
error wrapping ErrAttributeOutOfRange if the index is not a valid position
of the slice.
*/
func Satisfies(values []string, index int, value string) (bool, error) {
	if index < 0 || index >= len(values) {
		return false, fmt.Errorf("%w: index %d, sample has %d values", ErrAttributeOutOfRange, index, len(values))
	}
	return values[index] == value, nil
}
