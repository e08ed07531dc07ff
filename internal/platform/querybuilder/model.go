package querybuilder

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// InsertModel builds a single-row insert from the exported `db`-tagged
// fields of model.
func InsertModel(table string, model any, suffix string) (string, []any, error) {
	cols, vals, err := columnsAndValues(model)
	if err != nil {
		return "", nil, err
	}
	return InsertInto(table).Columns(cols...).Values(vals...).Suffix(suffix).ToSQL()
}

// InsertModels builds one multi-row insert. All models share T, so the
// column list is resolved once.
func InsertModels[T any](table string, models []T, suffix string) (string, []any, error) {
	if len(models) == 0 {
		return "", nil, errors.New("models are required")
	}
	builder := InsertInto(table).Suffix(suffix)
	for i := range models {
		cols, vals, err := columnsAndValues(models[i])
		if err != nil {
			return "", nil, fmt.Errorf("model %d: %w", i, err)
		}
		if i == 0 {
			builder.Columns(cols...)
		}
		builder.Values(vals...)
	}
	return builder.ToSQL()
}

type columnField struct {
	name  string
	index int
}

// columnCache maps reflect.Type to []columnField. Batch writers insert
// thousands of rows of the same table model per run.
var columnCache sync.Map

func columnsAndValues(model any) ([]string, []any, error) {
	value := reflect.ValueOf(model)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return nil, nil, errors.New("model cannot be nil")
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil, nil, errors.New("model must be struct")
	}

	fields := columnFields(value.Type())
	if len(fields) == 0 {
		return nil, nil, errors.New("model has no db columns")
	}
	cols := make([]string, len(fields))
	vals := make([]any, len(fields))
	for i, f := range fields {
		cols[i] = f.name
		vals[i] = value.Field(f.index).Interface()
	}
	return cols, vals, nil
}

func columnFields(typ reflect.Type) []columnField {
	if cached, ok := columnCache.Load(typ); ok {
		return cached.([]columnField)
	}

	fields := make([]columnField, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(field.Tag.Get("db"), ",")
		name = strings.TrimSpace(name)
		if name == "" || name == "-" {
			continue
		}
		fields = append(fields, columnField{name: name, index: i})
	}
	columnCache.Store(typ, fields)
	return fields
}
