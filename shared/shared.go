package shared

import (
	"crypto/sha1" //nolint:gosec
	"encoding/hex"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"todos/shared/constant"
	"todos/shared/dto"
	"todos/shared/timezone"

	"github.com/rs/zerolog/log"
)

const cacheKeySeparator = ":"

func ConvertStringToBool(value string) *bool {
	if value == "" {
		return nil
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		log.Error().Err(err).Msg("failed to convert string to bool")

		return nil
	}

	return &boolValue
}

// TransformFields converts the non-zero db-tagged fields of a struct into a
// column map for an UPDATE and stamps the modification time.
func TransformFields(data any) map[string]any {
	val := reflect.ValueOf(data)
	typ := reflect.TypeOf(data)

	updatedFields := make(map[string]any)

	for index := range val.NumField() {
		field := val.Field(index)
		if field.IsZero() {
			continue
		}

		fieldName := typ.Field(index).Tag.Get("db")
		if fieldName == "" || fieldName == "-" {
			continue
		}

		if field.Kind() == reflect.Pointer {
			field = field.Elem()
		}

		updatedFields[fieldName] = field.Interface()
	}

	updatedFields[constant.FieldModifiedAt] = timezone.Now()

	return updatedFields
}

func FilterByID(id any, fieldID, table string) dto.FilterGroup {
	return dto.FilterGroup{
		Filters: []any{
			dto.Filter{
				Field:    fieldID,
				Value:    id,
				Operator: dto.FilterOperatorEq,
				Table:    table,
			},
		},
	}
}

// BuildCacheKey joins a prefix and its parts with ":".
func BuildCacheKey(prefix string, parts ...any) string {
	key := make([]string, 0, len(parts)+1)
	key = append(key, prefix)

	for _, part := range parts {
		key = append(key, fmt.Sprint(part))
	}

	return strings.Join(key, cacheKeySeparator)
}

// BuildCacheKeyWithFilter derives a stable key for a filtered listing.
func BuildCacheKeyWithFilter(prefix string, filter dto.FilterGroup) string {
	where, args := filter.GetWhereClause()
	if where == "" {
		return BuildCacheKey(prefix, "all")
	}

	hash := sha1.New() //nolint:gosec
	hash.Write([]byte(where))

	// map iteration is random, the where clause fixes the argument order
	for _, name := range argNames(where) {
		fmt.Fprintf(hash, "|%s=%v", name, args[name])
	}

	return BuildCacheKey(prefix, hex.EncodeToString(hash.Sum(nil)))
}

func argNames(where string) []string {
	names := []string{}

	for _, token := range strings.FieldsFunc(where, func(r rune) bool {
		return r == ' ' || r == '(' || r == ')' || r == ','
	}) {
		if name, ok := strings.CutPrefix(token, ":"); ok {
			names = append(names, name)
		}
	}

	return names
}
