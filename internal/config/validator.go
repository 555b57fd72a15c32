package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/aleister1102/snapgallery/internal/common"
	"github.com/aleister1102/snapgallery/internal/snapshot"
	"github.com/go-playground/validator/v10"
)

var cookieNamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

func newValidator() *validator.Validate {
	validate := validator.New()

	// Register custom validation for directory existence
	_ = validate.RegisterValidation("direxists", func(fl validator.FieldLevel) bool {
		dirPath := fl.Field().String()
		if dirPath == "" {
			return true
		}
		info, err := os.Stat(dirPath)
		return err == nil && info.IsDir()
	})

	// Register custom validation for LogLevel
	_ = validate.RegisterValidation("loglevel", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "", "trace", "debug", "info", "warn", "error", "fatal", "panic":
			return true
		default:
			return false
		}
	})

	// Register custom validation for LogFormat
	_ = validate.RegisterValidation("logformat", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "", "console", "text", "json":
			return true
		default:
			return false
		}
	})

	// HH:MM on a 24-hour clock
	_ = validate.RegisterValidation("timeofday", func(fl validator.FieldLevel) bool {
		_, err := snapshot.ParseTimeOfDay(fl.Field().String())
		return err == nil
	})

	_ = validate.RegisterValidation("fixednow", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(FixedNowLayout, fl.Field().String())
		return err == nil
	})

	_ = validate.RegisterValidation("storedriver", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case StoreDriverSQLite, StoreDriverMemory:
			return true
		default:
			return false
		}
	})

	_ = validate.RegisterValidation("cookiename", func(fl validator.FieldLevel) bool {
		return cookieNamePattern.MatchString(fl.Field().String())
	})

	return validate
}

// ValidateConfig performs validation on the GlobalConfig structure: field
// rules first, then the checks that span fields.
func ValidateConfig(cfg *GlobalConfig) error {
	if cfg == nil {
		return common.NewConfigurationError("", "", "configuration is nil")
	}

	if err := newValidator().Struct(cfg); err != nil {
		var errs validator.ValidationErrors
		if errors.As(err, &errs) {
			messages := make([]string, 0, len(errs))
			for _, e := range errs {
				msg := fmt.Sprintf("Validation failed for '%s': rule '%s'", e.Namespace(), e.Tag())
				if e.Param() != "" {
					msg += fmt.Sprintf(" (expected: %s)", e.Param())
				}
				if e.Value() != nil && e.Value() != "" {
					msg += fmt.Sprintf(", actual: '%v'", e.Value())
				}
				messages = append(messages, msg)
			}
			return common.NewConfigurationError("", "", "configuration validation failed:\n  "+strings.Join(messages, "\n  "))
		}
		return fmt.Errorf("configuration validation error: %w", err)
	}

	return validateGallery(cfg.GalleryConfig)
}

// validateGallery checks what field tags cannot express.
func validateGallery(g GalleryConfig) error {
	if _, err := g.Window(); err != nil {
		return err
	}

	for i, r := range g.TimeResolutions {
		if i > 0 && r <= g.TimeResolutions[i-1] {
			return common.NewConfigurationError("gallery_config", "time_resolutions",
				fmt.Sprintf("must be strictly ascending without duplicates, got %s", common.JoinInts(g.TimeResolutions)))
		}
	}

	found := false
	for _, r := range g.TimeResolutions {
		if r == g.DefaultResolution {
			found = true
			break
		}
	}
	if !found {
		return common.NewConfigurationError("gallery_config", "default_resolution",
			fmt.Sprintf("%d is not one of: %s", g.DefaultResolution, common.JoinInts(g.TimeResolutions)))
	}

	if _, err := g.Location(); err != nil {
		return err
	}
	return nil
}
