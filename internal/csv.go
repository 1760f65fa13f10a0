package internal

import (
	"encoding/csv"
	"io"
	"iter"
)

type CSVRecord[T any] struct {
	Value T
	Error error
}

// ParseCSV yields parsed records one at a time. When hasHeader is true the
// first row is consumed and passed to the parse function alongside each
// record; otherwise headers is nil.
func ParseCSV[T any](r io.Reader, hasHeader bool, parse func(record, headers []string) (T, error)) iter.Seq[CSVRecord[T]] {
	return func(yield func(CSVRecord[T]) bool) {
		reader := csv.NewReader(r)

		var headers []string
		if hasHeader {
			row, err := reader.Read()
			if err != nil {
				var zero T
				yield(CSVRecord[T]{Value: zero, Error: err})
				return
			}
			headers = row
		}

		for {
			row, err := reader.Read()
			if err == io.EOF {
				return
			}
			if err != nil {
				var zero T
				if !yield(CSVRecord[T]{Value: zero, Error: err}) {
					return
				}
				continue
			}

			value, err := parse(row, headers)
			if !yield(CSVRecord[T]{Value: value, Error: err}) {
				return
			}
		}
	}
}
