package fdw

import (
	"fmt"
	"strings"
	"testing"

	"github.com/aarondl/null/v8"
)

type BenchDest struct {
	ID          string
	Name        string
	Email       string
	City        string
	Active      bool
	Description string
}

type BenchDestWithAdditional struct {
	ID             string
	Name           string
	AdditionalData null.JSON
}

func benchRecordBody(n int) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i := 0; i < n; i++ {
		if i > 0 {
			sb.WriteByte(',')
		}
		fmt.Fprintf(&sb, `{"ID":"%d","Name":"John Doe","Email":"john@example.com","City":"Boston","Active":true,"Description":"A sample user for benchmarking purposes","meta":{"b":2,"a":[1,2,3]}}`, i)
	}
	sb.WriteByte(']')
	return sb.String()
}

var benchCols = []Column{
	{Name: "ID", Type: TypeString},
	{Name: "Name", Type: TypeString},
	{Name: "Email", Type: TypeString},
	{Name: "City", Type: TypeString},
	{Name: "Active", Type: TypeBool},
	{Name: "Description", Type: TypeString},
	{Name: "meta", Type: TypeJSON},
}

func BenchmarkDecodeRows(b *testing.B) {
	body := []byte(benchRecordBody(1000))

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if _, err := decodeRows(body); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkMaterialize(b *testing.B) {
	rows, err := decodeRows([]byte(benchRecordBody(1)))
	if err != nil {
		b.Fatal(err)
	}
	m := newMaterializer(nil)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if _, err := m.materialize(rows[0], benchCols); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDecoder_Decode(b *testing.B) {
	rows, _ := decodeRows([]byte(benchRecordBody(1)))
	cells, err := newMaterializer(nil).materialize(rows[0], benchCols)
	if err != nil {
		b.Fatal(err)
	}
	d := NewDecoder()
	d.WarmMetadata(BenchDest{})

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		dst := &BenchDest{}
		_ = d.Decode(benchCols, cells, dst)
	}
}

func BenchmarkDecoder_MarshalToAdditionalData(b *testing.B) {
	rows, _ := decodeRows([]byte(benchRecordBody(1)))
	cells, err := newMaterializer(nil).materialize(rows[0], benchCols)
	if err != nil {
		b.Fatal(err)
	}
	d := NewDecoder()

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		dst := &BenchDestWithAdditional{}
		_ = d.Decode(benchCols, cells, dst)
	}
}

func BenchmarkJSONCellTo(b *testing.B) {
	cell := Cell{Type: TypeJSON, Value: null.JSONFrom([]byte(`{"a":[1,2,3],"b":2}`))}
	type meta struct {
		A []int `json:"a"`
		B int   `json:"b"`
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if _, err := JSONCellTo[meta](cell); err != nil {
			b.Fatal(err)
		}
	}
}
