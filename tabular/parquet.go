package tabular

import (
	"errors"
	"fmt"
	"io"

	"github.com/parquet-go/parquet-go"

	"github.com/kailas-cloud/vecmodel"
)

// Schema renders a parquet file schema from a collection definition, for
// writing batch-ingestion files that carry the collection's records. The key
// column is required, data columns are optional, vector columns are repeated
// float leaves.
func Schema(def *vecmodel.CollectionDefinition, name string) (*parquet.Schema, error) {
	group := parquet.Group{}
	for _, f := range def.Fields() {
		node, err := columnNode(f)
		if err != nil {
			return nil, err
		}
		group[f.StorageName()] = node
	}
	return parquet.NewSchema(name, group), nil
}

func columnNode(f vecmodel.Field) (parquet.Node, error) {
	var node parquet.Node
	switch f.Type() {
	case vecmodel.TypeText, vecmodel.TypeRaw:
		node = parquet.String()
	case vecmodel.TypeInt:
		node = parquet.Int(64)
	case vecmodel.TypeFloat:
		node = parquet.Leaf(parquet.DoubleType)
	case vecmodel.TypeBool:
		node = parquet.Leaf(parquet.BooleanType)
	case vecmodel.TypeFloatSeq, vecmodel.TypeVectorOrText:
		return parquet.Repeated(parquet.Leaf(parquet.FloatType)), nil
	case "":
		// Builder-made fields may omit the value type; fall back by role.
		if f.Role() == vecmodel.RoleVector {
			return parquet.Repeated(parquet.Leaf(parquet.FloatType)), nil
		}
		node = parquet.String()
	default:
		return nil, fmt.Errorf("tabular: no parquet mapping for value type %q (field %q)", f.Type(), f.StorageName())
	}

	if f.Role() == vecmodel.RoleData {
		node = parquet.Optional(node)
	}
	return node, nil
}

// WriteFrame writes a frame to w as one parquet file. Nil cells become nulls
// in optional columns.
func WriteFrame(w io.Writer, schema *parquet.Schema, frame *Frame) error {
	rows := make([]map[string]any, frame.Len())
	for i := 0; i < frame.Len(); i++ {
		row := make(map[string]any, len(frame.columns))
		for j, col := range frame.columns {
			if v := frame.records[i][j]; v != nil {
				row[col] = v
			}
		}
		rows[i] = row
	}

	pw := parquet.NewGenericWriter[map[string]any](w, schema)
	for off := 0; off < len(rows); {
		n, err := pw.Write(rows[off:])
		if err != nil {
			return fmt.Errorf("write rows: %w", err)
		}
		off += n
	}
	if err := pw.Close(); err != nil {
		return fmt.Errorf("close writer: %w", err)
	}
	return nil
}

// ReadFrame reads a parquet file back into a frame. Columns follow the file
// schema order; repeated float columns reassemble into []float32 cells and
// nulls into nil cells.
func ReadFrame(r io.ReaderAt, size int64) (*Frame, error) {
	pf, err := parquet.OpenFile(r, size)
	if err != nil {
		return nil, fmt.Errorf("open parquet: %w", err)
	}

	schema := pf.Schema()
	paths := schema.Columns()
	columns := make([]string, len(paths))
	repeated := make([]bool, len(paths))
	for i, path := range paths {
		columns[i] = path[0]
		if fld := fieldByName(schema, path[0]); fld != nil {
			repeated[i] = fld.Repeated()
		}
	}

	frame := New(columns...)
	for _, rg := range pf.RowGroups() {
		if err := readRowGroup(rg, frame, repeated); err != nil {
			return nil, err
		}
	}
	return frame, nil
}

func readRowGroup(rg parquet.RowGroup, frame *Frame, repeated []bool) error {
	rows := parquet.NewRowGroupReader(rg)
	buf := make([]parquet.Row, 256)

	for {
		cnt, readErr := rows.ReadRows(buf)
		for i := 0; i < cnt; i++ {
			rec := make([]any, len(frame.columns))
			for _, v := range buf[i] {
				col := v.Column()
				if col < 0 || col >= len(rec) || v.IsNull() {
					continue
				}
				if repeated[col] {
					seq, _ := rec[col].([]float32)
					rec[col] = append(seq, v.Float())
					continue
				}
				rec[col] = scalarValue(v)
			}
			if err := frame.Append(rec...); err != nil {
				return err
			}
		}

		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				return nil
			}
			return fmt.Errorf("read rows: %w", readErr)
		}
	}
}

func fieldByName(schema *parquet.Schema, name string) parquet.Field {
	for _, f := range schema.Fields() {
		if f.Name() == name {
			return f
		}
	}
	return nil
}

func scalarValue(v parquet.Value) any {
	switch v.Kind() {
	case parquet.Boolean:
		return v.Boolean()
	case parquet.Int32:
		return int64(v.Int32())
	case parquet.Int64:
		return v.Int64()
	case parquet.Float:
		return v.Float()
	case parquet.Double:
		return v.Double()
	case parquet.ByteArray, parquet.FixedLenByteArray:
		return v.String()
	default:
		return nil
	}
}
