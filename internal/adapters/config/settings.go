package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.trai.ch/modlock/internal/core/domain"
	"go.trai.ch/zerr"
)

var outputModes = []string{"auto", "bar", "linear"}

// LoadSettings reads the tool settings for the working directory dir.
// Precedence, lowest first: struct defaults, dir/modlock.yaml, MODLOCK_* environment
// variables. dir/.env fills environment variables that are not already set.
func LoadSettings(dir string) (*domain.Settings, error) {
	envPath := filepath.Join(dir, domain.EnvFileName)
	if err := godotenv.Load(envPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, zerr.With(zerr.Wrap(domain.ErrSettingsInvalid, err.Error()), "path", envPath)
	}

	v := viper.New()
	bindDefaults(v, reflect.TypeOf(domain.Settings{}), "")

	v.SetEnvPrefix(domain.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	path := filepath.Join(dir, domain.SettingsFileName)
	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, zerr.With(zerr.Wrap(domain.ErrSettingsInvalid, err.Error()), "path", path)
		}
	}

	var settings domain.Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, zerr.Wrap(domain.ErrSettingsInvalid, err.Error())
	}

	if err := validateSettings(&settings); err != nil {
		return nil, err
	}

	return &settings, nil
}

// bindDefaults registers every mapstructure key with its `default` tag so
// AutomaticEnv and Unmarshal see it.
func bindDefaults(v *viper.Viper, t reflect.Type, prefix string) {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	for i := range t.NumField() {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindDefaults(v, field.Type, key)
			continue
		}

		v.SetDefault(key, field.Tag.Get("default"))
	}
}

func validateSettings(s *domain.Settings) error {
	if s.DownloadDir == "" {
		return zerr.Wrap(domain.ErrSettingsInvalid, "download_dir must not be empty")
	}
	if s.Jobs < 1 {
		return zerr.With(zerr.Wrap(domain.ErrSettingsInvalid, "jobs must be at least 1"), "jobs", s.Jobs)
	}
	if s.Timeout <= 0 {
		return zerr.With(zerr.Wrap(domain.ErrSettingsInvalid, "timeout must be positive"), "timeout", s.Timeout.String())
	}
	if !slices.Contains(outputModes, s.Output) {
		return zerr.With(zerr.Wrap(domain.ErrSettingsInvalid, "unknown output mode"), "output", s.Output)
	}
	return nil
}
