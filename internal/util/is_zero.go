// Package util holds small reflection helpers shared by config merging.
package util

import "reflect"

func IsZero(i any) bool {
	return IsZeroVal(reflect.ValueOf(i))
}

// IsZeroVal reports whether v holds its type's zero value. Only works
// for comparable field types, which is all config structs use.
func IsZeroVal(v reflect.Value) bool {
	return v.Interface() == reflect.Zero(v.Type()).Interface()
}
