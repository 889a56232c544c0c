package config

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/arthur-debert/devgen/pkg/errors"
)

var runnerIDPattern = regexp.MustCompile(`^[a-z][a-z0-9_-]*$`)

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("koanf"), ",", 2)[0]
		if name == "" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("runnerid", func(fl validator.FieldLevel) bool {
		return runnerIDPattern.MatchString(fl.Field().String())
	})
	v.RegisterStructValidation(func(sl validator.StructLevel) {
		te := sl.Current().Interface().(TypeEntry)
		if te.Runner == "" {
			sl.ReportError(te.Runner, "runner", "Runner", "required", "")
		}
	}, TypeEntry{})
	return v
}

// validate checks every type entry and compound group and reports all
// problems in one CONFIG_INVALID error.
func validate(types map[string]TypeEntry, compounds map[string]CompoundList) error {
	v := newValidator()
	var problems []string

	for _, name := range sortedKeys(types) {
		if err := v.Struct(types[name]); err != nil {
			problems = append(problems, describe("types."+name, err)...)
		}
	}
	for _, name := range sortedKeys(compounds) {
		for i, g := range compounds[name] {
			if err := v.Struct(g); err != nil {
				problems = append(problems, describe(fmt.Sprintf("compounds.%s[%d]", name, i), err)...)
			}
		}
	}

	if len(problems) == 0 {
		return nil
	}
	return errors.Newf(errors.ErrConfigValid, "invalid configuration: %s", strings.Join(problems, "; ")).
		WithDetail("problems", problems)
}

func describe(prefix string, err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{fmt.Sprintf("%s: %v", prefix, err)}
	}
	out := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		// Namespace is "TypeEntry.Entry.runner"; keep the config path part.
		field := fe.Namespace()
		if i := strings.Index(field, "."); i >= 0 {
			field = field[i+1:]
		}
		field = strings.TrimPrefix(field, "Entry.")
		switch fe.Tag() {
		case "required":
			out = append(out, fmt.Sprintf("%s.%s is required", prefix, field))
		case "runnerid":
			out = append(out, fmt.Sprintf("%s.%s %q is not a valid runner id", prefix, field, fe.Value()))
		case "min":
			out = append(out, fmt.Sprintf("%s.%s needs at least %s entries", prefix, field, fe.Param()))
		default:
			out = append(out, fmt.Sprintf("%s.%s failed %s", prefix, field, fe.Tag()))
		}
	}
	return out
}
