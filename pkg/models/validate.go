package models

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	validate.RegisterValidation("chapter_status", validateChapterStatus)
	validate.RegisterValidation("tag_group", validateTagGroup)
	validate.RegisterCustomTypeFunc(followsFeedValue, FollowsFeed{})
}

// followsFeedValue exposes an absent feed as nil so required catches it
func followsFeedValue(field reflect.Value) interface{} {
	feed, ok := field.Interface().(FollowsFeed)
	if !ok || !feed.IsSet() {
		return nil
	}
	return true
}

func validateChapterStatus(fl validator.FieldLevel) bool {
	return ChapterStatus(fl.Field().String()).IsValid()
}

func validateTagGroup(fl validator.FieldLevel) bool {
	return TagGroup(fl.Field().String()).IsValid()
}

// Validate checks a decoded payload against the struct shape rules. Slices
// and maps are checked element by element. Returns nil or a *ShapeError.
func Validate(v interface{}) error {
	if v == nil {
		return nil
	}
	return validateValue(reflect.ValueOf(v))
}

func validateValue(val reflect.Value) error {
	for val.Kind() == reflect.Pointer || val.Kind() == reflect.Interface {
		if val.IsNil() {
			return nil
		}
		val = val.Elem()
	}

	switch val.Kind() {
	case reflect.Struct:
		return toShapeError(validate.Struct(val.Interface()))
	case reflect.Slice, reflect.Array:
		for i := 0; i < val.Len(); i++ {
			if err := validateValue(val.Index(i)); err != nil {
				return prefixShape(err, fmt.Sprintf("[%d]", i))
			}
		}
	case reflect.Map:
		iter := val.MapRange()
		for iter.Next() {
			if err := validateValue(iter.Value()); err != nil {
				return prefixShape(err, fmt.Sprintf("[%v]", iter.Key().Interface()))
			}
		}
	}
	return nil
}

func prefixShape(err error, prefix string) error {
	var shapeErr *ShapeError
	if errors.As(err, &shapeErr) {
		return shapeErr.withPrefix(prefix)
	}
	return err
}

func toShapeError(err error) error {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return NewShapeError("", err.Error(), err)
	}

	problems := make([]FieldProblem, 0, len(verrs))
	for _, fe := range verrs {
		problems = append(problems, FieldProblem{Field: fieldPath(fe.Namespace()), Message: describe(fe)})
	}
	return &ShapeError{Problems: problems, Err: err}
}

// fieldPath drops the root type and embedded struct names from a
// validator namespace, leaving the json path
func fieldPath(namespace string) string {
	segments := strings.Split(namespace, ".")
	kept := make([]string, 0, len(segments))
	for _, seg := range segments[1:] {
		if seg == "" || unicode.IsUpper(rune(seg[0])) {
			continue
		}
		kept = append(kept, seg)
	}
	return strings.Join(kept, ".")
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of %s", fe.Param())
	case "chapter_status":
		return "must be OK or error"
	case "tag_group":
		return "must be one of Format, Genre, Theme, Content"
	default:
		return "is invalid"
	}
}
