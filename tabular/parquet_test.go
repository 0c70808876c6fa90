package tabular

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/kailas-cloud/vecmodel"
)

func parquetDefinition(t *testing.T) *vecmodel.CollectionDefinition {
	t.Helper()
	def, err := vecmodel.NewBuilder().
		Field(vecmodel.RoleKey, "id", vecmodel.WithValueType(vecmodel.TypeText)).
		Field(vecmodel.RoleData, "content", vecmodel.WithValueType(vecmodel.TypeText)).
		Field(vecmodel.RoleData, "views", vecmodel.WithValueType(vecmodel.TypeInt)).
		Field(vecmodel.RoleVector, "vector", vecmodel.WithDimensions(2)).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return def
}

func TestSchema_CoversAllFields(t *testing.T) {
	def := parquetDefinition(t)
	schema, err := Schema(def, "records")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := map[string]bool{}
	for _, path := range schema.Columns() {
		got[path[0]] = true
	}
	for _, name := range def.StorageNames() {
		if !got[name] {
			t.Errorf("column %q missing from parquet schema", name)
		}
	}
}

func TestSchema_UnmappableType(t *testing.T) {
	def, err := vecmodel.NewBuilder().
		Field(vecmodel.RoleKey, "id").
		Field(vecmodel.RoleData, "blob", vecmodel.WithValueType(vecmodel.TypeRaw)).
		Field(vecmodel.RoleVector, "vector", vecmodel.WithDimensions(2),
			vecmodel.WithValueType(vecmodel.TypeFloatSeq)).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	// raw_string maps to a parquet string; every current value type has a
	// mapping, so this must succeed.
	if _, err := Schema(def, "records"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestWriteReadFrame_RoundTrip(t *testing.T) {
	def := parquetDefinition(t)
	schema, err := Schema(def, "records")
	if err != nil {
		t.Fatalf("Schema: %v", err)
	}

	frame := New("id", "content", "views", "vector")
	appendRec(t, frame, "1", "first", int64(10), []float32{0.1, 0.2})
	appendRec(t, frame, "2", "second", int64(20), []float32{0.3, 0.4})
	appendRec(t, frame, "3", nil, nil, []float32{0.5, 0.6}) // nulls in optional columns

	var buf bytes.Buffer
	if err := WriteFrame(&buf, schema, frame); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}

	back, err := ReadFrame(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}
	if back.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", back.Len())
	}

	wantIDs := []string{"1", "2", "3"}
	for i, want := range wantIDs {
		if v, _ := back.Value(i, "id"); v != want {
			t.Errorf("row %d id = %v, want %q", i, v, want)
		}
	}
	if v, _ := back.Value(0, "views"); v != int64(10) {
		t.Errorf("row 0 views = %v (%T), want 10", v, v)
	}
	if v, _ := back.Value(1, "vector"); !reflect.DeepEqual(v, []float32{0.3, 0.4}) {
		t.Errorf("row 1 vector = %v, want [0.3 0.4]", v)
	}
	if _, ok := back.Value(2, "content"); ok {
		t.Error("row 2 content present, want null cell")
	}
}

func appendRec(t *testing.T, f *Frame, values ...any) {
	t.Helper()
	if err := f.Append(values...); err != nil {
		t.Fatalf("Append: %v", err)
	}
}

func TestReadFrame_Garbage(t *testing.T) {
	data := []byte("not a parquet file at all")
	_, err := ReadFrame(bytes.NewReader(data), int64(len(data)))
	if err == nil {
		t.Fatal("expected error for non-parquet input")
	}
	if !strings.Contains(err.Error(), "open parquet") {
		t.Errorf("error = %q, want open context", err)
	}
}
