// Package subtract computes the difference between two counter snapshots.
package subtract

import (
	"reflect"
)

// Sub returns curr minus prev, without modifying either argument.
//
// If T has a `func (T) Sub(T) T` method, it is used.
// Otherwise, each exported field is subtracted:
//   - integers: numerical difference, wrapping on overflow.
//   - structs and arrays: element-wise.
//   - slices: element-wise, truncated to the shorter slice.
//   - pointers: element-wise if both are non-nil, otherwise nil.
//
// Fields tagged `subtract:"-"`, and fields of other kinds, take the value from curr.
func Sub[T any](curr, prev T) T {
	return sub(reflect.ValueOf(curr), reflect.ValueOf(prev)).Interface().(T)
}

func hasSubMethod(typ reflect.Type) (reflect.Method, bool) {
	m, ok := typ.MethodByName("Sub")
	if !ok || m.Type.NumIn() != 2 || m.Type.NumOut() != 1 {
		return m, false
	}
	return m, m.Type.In(1) == typ && m.Type.Out(0) == typ
}

func sub(curr, prev reflect.Value) reflect.Value {
	typ := curr.Type()
	if m, ok := hasSubMethod(typ); ok {
		return m.Func.Call([]reflect.Value{curr, prev})[0]
	}

	diff := reflect.New(typ).Elem()
	switch typ.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		diff.SetUint(curr.Uint() - prev.Uint())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		diff.SetInt(curr.Int() - prev.Int())
	case reflect.Struct:
		for _, field := range reflect.VisibleFields(typ) {
			if len(field.Index) > 1 || !field.IsExported() {
				continue
			}
			df, cf := diff.Field(field.Index[0]), curr.Field(field.Index[0])
			if field.Tag.Get("subtract") == "-" {
				df.Set(cf)
				continue
			}
			df.Set(sub(cf, prev.Field(field.Index[0])))
		}
	case reflect.Array:
		for i := 0; i < typ.Len(); i++ {
			diff.Index(i).Set(sub(curr.Index(i), prev.Index(i)))
		}
	case reflect.Slice:
		n := min(curr.Len(), prev.Len())
		diff.Set(reflect.MakeSlice(typ, n, n))
		for i := 0; i < n; i++ {
			diff.Index(i).Set(sub(curr.Index(i), prev.Index(i)))
		}
	case reflect.Ptr:
		if !curr.IsNil() && !prev.IsNil() {
			diff.Set(reflect.New(typ.Elem()))
			diff.Elem().Set(sub(curr.Elem(), prev.Elem()))
		}
	default:
		diff.Set(curr)
	}
	return diff
}
