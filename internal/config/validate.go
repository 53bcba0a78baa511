package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	validator "github.com/go-playground/validator/v10"
	"go.uber.org/multierr"
)

// Validate checks the config for errors. All problems are reported together.
func Validate(cfg *Config) error {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(yamlName)

	var err error
	var verrs validator.ValidationErrors
	if e := v.Struct(cfg); errors.As(e, &verrs) {
		for _, fe := range verrs {
			err = multierr.Append(err, fieldError(fe))
		}
	} else if e != nil {
		return fmt.Errorf("config: %w", e)
	}

	fl := cfg.Logging.FileLogger
	if fl.Level != "none" && fl.Destination == "" {
		err = multierr.Append(err, fmt.Errorf("config: 'logging.file.destination' is required when file logging is enabled"))
	}
	return err
}

func fieldError(fe validator.FieldError) error {
	// Namespace starts with the root type name.
	_, field, _ := strings.Cut(fe.Namespace(), ".")
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("config: '%s' is required", field)
	case "oneof":
		return fmt.Errorf("config: '%s' must be one of [%s], got %q", field, fe.Param(), fe.Value())
	case "hostname_port":
		return fmt.Errorf("config: '%s' must be host:port, got %q", field, fe.Value())
	case "excludesall":
		return fmt.Errorf("config: '%s' must be a table name, not a path: %q", field, fe.Value())
	default:
		return fmt.Errorf("config: '%s' failed %q validation", field, fe.Tag())
	}
}

func yamlName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}
