package logging

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
)

const (
	maxDumpDepth    = 10
	maxDumpElements = 10
	dumpRootKey     = "value"
)

// Dump logs v at Debug level as a single record, one field per leaf value.
// Struct fields, map keys and slice indexes are flattened into keys such as
// "Limits.MaxSize" or "Tags[0]". Only exported struct fields are included.
// Nothing is computed when Debug is disabled.
func (s *Service) Dump(msg string, v interface{}) {
	event := s.DebugWith()
	if le, ok := event.(*logEvent); ok && le.event == nil {
		return
	}

	fields := make(map[string]string)
	flatten(reflect.ValueOf(v), emptyString, fields, make(map[uintptr]bool), 0)

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		event.Str(k, fields[k])
	}
	event.Msg(msg)
}

func flatten(val reflect.Value, prefix string, out map[string]string, visited map[uintptr]bool, depth int) {
	key := prefix
	if key == emptyString {
		key = dumpRootKey
	}

	if depth > maxDumpDepth {
		out[key] = "<max depth reached>"
		return
	}

	for val.IsValid() && (val.Kind() == reflect.Interface || val.Kind() == reflect.Ptr) {
		if val.IsNil() {
			out[key] = "<nil>"
			return
		}
		if val.Kind() == reflect.Ptr {
			ptr := val.Pointer()
			if visited[ptr] {
				out[key] = "<circular reference>"
				return
			}
			visited[ptr] = true
		}
		val = val.Elem()
	}
	if !val.IsValid() {
		out[key] = "<nil>"
		return
	}

	switch val.Kind() {
	case reflect.Struct:
		typ := val.Type()
		for i := 0; i < val.NumField(); i++ {
			if !typ.Field(i).IsExported() {
				continue
			}
			flatten(val.Field(i), joinKey(prefix, typ.Field(i).Name), out, visited, depth+1)
		}

	case reflect.Map:
		iter := val.MapRange()
		for iter.Next() {
			mapKey := fmt.Sprintf("%s[%v]", prefix, iter.Key().Interface())
			flatten(iter.Value(), mapKey, out, visited, depth+1)
		}

	case reflect.Slice, reflect.Array:
		for i := 0; i < val.Len() && i < maxDumpElements; i++ {
			flatten(val.Index(i), prefix+"["+strconv.Itoa(i)+"]", out, visited, depth+1)
		}
		if val.Len() > maxDumpElements {
			out[prefix+"[...]"] = fmt.Sprintf("%d more elements", val.Len()-maxDumpElements)
		}

	default:
		if val.CanInterface() {
			out[key] = fmt.Sprintf("%v", val.Interface())
		} else {
			out[key] = val.String()
		}
	}
}

func joinKey(prefix, name string) string {
	if prefix == emptyString {
		return name
	}
	return prefix + "." + name
}
