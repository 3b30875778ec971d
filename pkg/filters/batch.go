package filters

import (
	"context"
	"fmt"
	"iter"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/nicholas-fedor/gafilter/pkg/types"
)

// MaxExpressionLength is the management API limit on a filter expression, in characters.
const MaxExpressionLength = 255

// Separator joins values inside one expression.
const Separator = "|"

// Batch is one filter's worth of values.
type Batch struct {
	Number     int    // 1-based sequence number.
	Name       string // Prefix plus the two-digit sequence number.
	Expression string // Values joined by Separator.
}

// CreateFunc creates one filter for a batch.
type CreateFunc func(ctx context.Context, name, expression string) (*types.Filter, error)

// PaceFunc blocks until the next remote write is allowed.
type PaceFunc func(ctx context.Context) error

// BatchName renders the filter name for a sequence number: "Name 01" through "Name 09", then "Name 10" onward.
//
// Parameters:
//   - prefix: Filter name prefix.
//   - number: 1-based sequence number.
//
// Returns:
//   - string: Prefix and number separated by a space.
func BatchName(prefix string, number int) string {
	return fmt.Sprintf("%s %02d", prefix, number)
}

// Batches groups values into expressions no longer than MaxExpressionLength.
//
// Empty values are skipped. Values keep their order and are never split, so a single value
// longer than the limit is yielded as a batch of its own. The sequence is lazy: each batch
// is produced only when the consumer asks for it.
//
// Parameters:
//   - values: Raw values in the order they should appear.
//   - prefix: Filter name prefix.
//
// Returns:
//   - iter.Seq[Batch]: Batches in sequence order.
func Batches(values []string, prefix string) iter.Seq[Batch] {
	return func(yield func(Batch) bool) {
		number := 1
		expression := ""
		length := 0

		for _, value := range values {
			if value == "" {
				continue
			}

			valueLength := utf8.RuneCountInString(value)

			if expression == "" {
				expression = value
				length = valueLength

				continue
			}

			if length+len(Separator)+valueLength > MaxExpressionLength {
				if !yield(Batch{Number: number, Name: BatchName(prefix, number), Expression: expression}) {
					return
				}

				number++
				expression = value
				length = valueLength

				continue
			}

			expression += Separator + value
			length += len(Separator) + valueLength
		}

		if expression != "" {
			yield(Batch{Number: number, Name: BatchName(prefix, number), Expression: expression})
		}
	}
}

// BuildFilters calls create once per batch of values and returns the created filters.
//
// pace runs between consecutive creations, never before the first one. The first error from
// create or pace stops the run; filters created before it are returned alongside the error
// and are not rolled back.
//
// Parameters:
//   - ctx: Context passed to create and pace.
//   - values: Raw values to batch.
//   - prefix: Filter name prefix.
//   - create: Creation function invoked per batch.
//   - pace: Cooldown between creations, or nil for none.
//
// Returns:
//   - []*types.Filter: Filters created, in batch order.
//   - error: Unchanged error from create or pace, nil on success.
func BuildFilters(
	ctx context.Context,
	values []string,
	prefix string,
	create CreateFunc,
	pace PaceFunc,
) ([]*types.Filter, error) {
	var created []*types.Filter

	for batch := range Batches(values, prefix) {
		if batch.Number > 1 && pace != nil {
			if err := pace(ctx); err != nil {
				return created, err
			}
		}

		logrus.WithFields(logrus.Fields{
			"name":   batch.Name,
			"length": utf8.RuneCountInString(batch.Expression),
		}).Debug("Creating filter for batch")

		filter, err := create(ctx, batch.Name, batch.Expression)
		if err != nil {
			return created, err
		}

		created = append(created, filter)
	}

	return created, nil
}
