package logging

import (
	"path/filepath"
	"strings"
	"sync"

	"github.com/Station-Manager/errors"
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate
var once sync.Once

func validateConfig(cfg *Config) error {
	const op errors.Op = "logging.validateConfig"
	if cfg == nil {
		return errors.New(op).Msg(errMsgNilConfig)
	}

	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		_ = validate.RegisterValidation("relpath", isContainedRelPath)
	})

	if err := validate.Struct(cfg); err != nil {
		return errors.New(op).Err(err).Msg(errMsgConfigInvalid)
	}
	if !cfg.FileLogging && !cfg.ConsoleLogging {
		return errors.New(op).Msg(errMsgNoChannels)
	}

	return nil
}

// isContainedRelPath rejects absolute paths and paths climbing above their base.
func isContainedRelPath(fl validator.FieldLevel) bool {
	p := fl.Field().String()
	if filepath.IsAbs(p) {
		return false
	}
	clean := filepath.Clean(p)
	return clean != ".." && !strings.HasPrefix(clean, ".."+string(filepath.Separator))
}
