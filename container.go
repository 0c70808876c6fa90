package vecmodel

import (
	"fmt"

	"github.com/kailas-cloud/vecmodel/internal/metrics"
)

// Row maps storage names to field values for one record. Keys are storage
// names, not property names: any rename declared on a field is already
// applied by the time a row reaches the adapter.
type Row = map[string]any

// Rows is an ordered sequence of row-mappings.
type Rows = []Row

// Adapter converts between a sequence of row-mappings and one bulk container
// value for container-mode definitions. With no hooks configured the
// container representation is the row sequence itself.
type Adapter struct {
	def *CollectionDefinition
}

// Adapter returns the container adapter bound to this definition.
func (d *CollectionDefinition) Adapter() *Adapter {
	return &Adapter{def: d}
}

// ToContainer converts rows into the bulk container value, preserving row
// order. Rows are structurally checked against the definition before the
// hook runs; a failing hook surfaces as a SerializationError.
func (a *Adapter) ToContainer(rows Rows) (any, error) {
	if err := a.checkRows(rows); err != nil {
		metrics.ContainerConversionsTotal.WithLabelValues("to", "error").Inc()
		return nil, err
	}

	if a.def.toContainer == nil {
		metrics.ContainerConversionsTotal.WithLabelValues("to", "ok").Inc()
		return copyRows(rows), nil
	}

	container, err := a.def.toContainer(copyRows(rows))
	if err != nil {
		metrics.ContainerConversionsTotal.WithLabelValues("to", "error").Inc()
		return nil, &SerializationError{RowIndex: -1, Detail: fmt.Sprintf("to-container hook: %v", err), Cause: err}
	}
	metrics.ContainerConversionsTotal.WithLabelValues("to", "ok").Inc()
	return container, nil
}

// FromContainer converts a bulk container value back into rows, preserving
// row order. The hook result is structurally checked against the definition;
// a row with a storage name outside the schema surfaces as a
// SerializationError carrying the row index.
func (a *Adapter) FromContainer(container any) (Rows, error) {
	var rows Rows
	if a.def.fromContainer == nil {
		switch c := container.(type) {
		case Rows:
			rows = c
		default:
			metrics.ContainerConversionsTotal.WithLabelValues("from", "error").Inc()
			return nil, NewSerializationError(-1, "container is %T, want %T", container, Rows{})
		}
	} else {
		var err error
		rows, err = a.def.fromContainer(container)
		if err != nil {
			metrics.ContainerConversionsTotal.WithLabelValues("from", "error").Inc()
			return nil, &SerializationError{RowIndex: -1, Detail: fmt.Sprintf("from-container hook: %v", err), Cause: err}
		}
	}

	if err := a.checkRows(rows); err != nil {
		metrics.ContainerConversionsTotal.WithLabelValues("from", "error").Inc()
		return nil, err
	}
	metrics.ContainerConversionsTotal.WithLabelValues("from", "ok").Inc()
	return copyRows(rows), nil
}

// checkRows rejects rows referencing storage names outside the definition.
func (a *Adapter) checkRows(rows Rows) error {
	for i, row := range rows {
		for name := range row {
			if _, ok := a.def.FieldByStorageName(name); !ok {
				return NewSerializationError(i, "unknown storage name %q", name)
			}
		}
	}
	return nil
}

func copyRows(rows Rows) Rows {
	out := make(Rows, len(rows))
	for i, row := range rows {
		r := make(Row, len(row))
		for k, v := range row {
			r[k] = v
		}
		out[i] = r
	}
	return out
}
