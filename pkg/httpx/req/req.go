package req

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"git.appkode.ru/pub/go/failure"
	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"

	"buyback/pkg/errcodes"
)

var (
	json     = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip
	validate = newValidator()                               //nolint:gochecknoglobals // skip
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// В сообщениях об ошибках нужны имена полей из JSON, а не из Go.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	return v
}

func Read(r *http.Request, dest any) error {
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		return failure.NewInvalidArgumentError(
			fmt.Errorf("json.Decode: %w", err).Error(),
			failure.WithCode(errcodes.ValidationError),
			failure.WithDescription("Invalid JSON"),
		)
	}

	if err := validate.StructCtx(r.Context(), dest); err != nil {
		return failure.NewInvalidArgumentError(
			"validation error",
			failure.WithCode(errcodes.ValidationError),
			failure.WithDescription(describe(err)),
		)
	}

	return nil
}

// PositiveInt reads an optional positive integer query parameter.
func PositiveInt(r *http.Request, name string, fallback int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return fallback, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, failure.NewInvalidArgumentError(
			fmt.Sprintf("query %s=%q", name, raw),
			failure.WithCode(errcodes.InvalidPaging),
			failure.WithDescription(name+" must be a positive integer"),
		)
	}

	return n, nil
}

// NonNegativeInt reads an optional integer query parameter that may be zero.
func NonNegativeInt(r *http.Request, name string, fallback int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return fallback, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, failure.NewInvalidArgumentError(
			fmt.Sprintf("query %s=%q", name, raw),
			failure.WithCode(errcodes.InvalidPaging),
			failure.WithDescription(name+" must be a non-negative integer"),
		)
	}

	return n, nil
}

// Bool reads an optional boolean query parameter.
func Bool(r *http.Request, name string) (*bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil //nolint:nilnil
	}

	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, failure.NewInvalidArgumentError(
			fmt.Sprintf("query %s=%q", name, raw),
			failure.WithCode(errcodes.ValidationError),
			failure.WithDescription(name+" must be a boolean"),
		)
	}

	return &b, nil
}

func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	parts := make([]string, 0, len(verrs))

	for _, fe := range verrs {
		field := fe.Namespace()
		if _, rest, ok := strings.Cut(field, "."); ok {
			field = rest
		}

		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s: failed %s=%s", field, fe.Tag(), fe.Param()))
			continue
		}

		parts = append(parts, fmt.Sprintf("%s: failed %s", field, fe.Tag()))
	}

	return strings.Join(parts, "; ")
}
