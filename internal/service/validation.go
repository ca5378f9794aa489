package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/maxviazov/railway-blog-service/internal/pagination"
	"github.com/maxviazov/railway-blog-service/internal/repository"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report json names so field errors match what API clients sent
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// validateInput runs struct tags and converts failures into aggregated FieldErrors.
func validateInput(in any, extra ...FieldError) error {
	ferrs := append([]FieldError(nil), extra...)
	if err := validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		for _, fe := range verrs {
			ferrs = append(ferrs, FieldError{Field: fe.Field(), Message: describe(fe)})
		}
	}
	return newInvalidInput(ferrs)
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must not be empty"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "gt":
		return "must be > " + fe.Param()
	case "gte":
		return "must be >= " + fe.Param()
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(fe.Param()), ", ")
	case "datetime":
		return "must match layout " + fe.Param()
	default:
		return "is invalid"
	}
}

func normalizePage(p repository.Page) repository.Page {
	return p.Sanitize()
}

// pageWindow turns a 1-based page number into a repository window.
func pageWindow(page, perPage int) (int, repository.Page, error) {
	if perPage <= 0 {
		return 0, repository.Page{}, NewInvalidInputError("per_page", "must be > 0")
	}
	if page < 1 {
		page = 1
	}
	return page, repository.Page{Limit: perPage, Offset: pagination.Offset(page, perPage)}, nil
}

func requirePositiveID(id int64) error {
	if id <= 0 {
		return NewInvalidInputError("id", "must be > 0")
	}
	return nil
}

// optionalID maps absent and non-positive form values to nil.
func optionalID(id *int64) *int64 {
	if id == nil || *id <= 0 {
		return nil
	}
	v := *id
	return &v
}

// optionalString trims and maps blank values to nil.
func optionalString(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

// splitList accepts both JSON arrays and comma-separated form values.
func splitList(in []string) []string {
	out := []string{}
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

// exists checks an optional reference and reports it as a field error when missing.
func exists[T any](ctx context.Context, field string, id *int64, get func(context.Context, int64) (T, error)) ([]FieldError, error) {
	if id == nil {
		return nil, nil
	}
	if _, err := get(ctx, *id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return []FieldError{{Field: field, Message: "does not exist"}}, nil
		}
		return nil, err
	}
	return nil, nil
}
