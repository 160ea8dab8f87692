package dataprocessing

import (
	"fmt"
	"io"
	"log/slog"

	"sheetops/pkg/contracts/domain"
)

// row builds a domain.Row from field/value pairs. Values may be string, int or float64.
func row(pairs ...interface{}) domain.Row {
	r := make(domain.Row, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		field := pairs[i].(string)
		switch v := pairs[i+1].(type) {
		case string:
			r[field] = domain.StringValue(v)
		case int:
			r[field] = domain.IntValue(int64(v))
		case float64:
			r[field] = domain.FloatValue(v)
		default:
			panic(fmt.Sprintf("unsupported test value %T", v))
		}
	}
	return r
}

func table(rows ...domain.Row) domain.Table {
	return domain.NewTable(rows...)
}

func newTestProcessor() *Processor {
	return NewProcessor(slog.New(slog.NewTextHandler(io.Discard, nil)), DefaultPolicy())
}

func f64(v float64) *float64 {
	return &v
}
