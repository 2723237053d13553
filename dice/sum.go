package dice

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrNotSummable indicates a value that is neither an integer nor a sequence of integers.
var ErrNotSummable = errors.New("value is not an integer or a sequence of integers")

// Summer is implemented by roll results that know their own total.
type Summer interface {
	Sum() int
}

// DeepSum returns the total of all the integers in v, at any depth of nesting. v may be
// an integer, a Summer, or an arbitrarily nested slice or array of these. An empty
// sequence sums to 0.
func DeepSum(v any) (int, error) {
	switch value := v.(type) {
	case nil:
		return 0, fmt.Errorf("%w: nil", ErrNotSummable)

	case int:
		return value, nil

	case Summer:
		return value.Sum(), nil

	case []int:
		total := 0
		for _, i := range value {
			total += i
		}
		return total, nil

	case []any:
		total := 0
		for _, item := range value {
			if n, err := DeepSum(item); err != nil {
				return 0, err
			} else {
				total += n
			}
		}
		return total, nil
	}

	return deepSum(reflect.ValueOf(v))
}

func deepSum(v reflect.Value) (int, error) {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return int(v.Int()), nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int(v.Uint()), nil

	case reflect.Interface, reflect.Pointer:
		if v.IsNil() {
			return 0, fmt.Errorf("%w: nil", ErrNotSummable)
		}
		return DeepSum(v.Elem().Interface())

	case reflect.Slice, reflect.Array:
		total := 0
		for i := 0; i < v.Len(); i++ {
			if n, err := DeepSum(v.Index(i).Interface()); err != nil {
				return 0, err
			} else {
				total += n
			}
		}
		return total, nil
	}

	return 0, fmt.Errorf("%w: %v", ErrNotSummable, v.Type())
}
