package serializer

import (
	"strconv"
	"testing"

	"github.com/ValentinKolb/kvql/lib/convert"
	"github.com/ValentinKolb/kvql/lib/query"
	"github.com/ValentinKolb/kvql/lib/result"
)

// benchmarkResults returns a set of results of growing size
func benchmarkResults(b *testing.B) map[string]result.Result {
	q, err := query.Parse("XRANGE events - +")
	if err != nil {
		b.Fatal(err)
	}

	entries := func(n int) []any {
		out := make([]any, n)
		for i := range out {
			out[i] = convert.NewFieldMap(2).
				Set("id", strconv.Itoa(i)+"-0").
				Set("fields", convert.NewFieldMap(2).Set("kind", "login").Set("user", "u"+strconv.Itoa(i)))
		}
		return out
	}

	return map[string]result.Result{
		"Scalar":       result.NewListResult(q, []any{"PONG"}),
		"SmallList":    result.NewListResult(q, entries(10)),
		"LargeList":    result.NewListResult(q, entries(1000)),
		"FlatFieldMap": result.NewMapResult(q, convert.NewFieldMap(3).Set("a", int64(1)).Set("b", 2.5).Set("c", nil)),
	}
}

func BenchmarkSerialize(b *testing.B) {
	for name, res := range benchmarkResults(b) {
		for sName, factory := range testSerializers {
			s := factory()
			b.Run(sName+"/"+name, func(b *testing.B) {
				b.ReportAllocs()
				var size int
				for i := 0; i < b.N; i++ {
					data, err := s.Serialize(res)
					if err != nil {
						b.Fatal(err)
					}
					size = len(data)
				}
				b.ReportMetric(float64(size), "bytes/op")
			})
		}
	}
}
