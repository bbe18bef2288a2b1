package config

import (
	"fmt"
	"log/slog"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every setting read from the environment,
// e.g. S3IAMCLI_REGION.
const EnvPrefix = "S3IAMCLI"

// DefaultRegion is used for request signing when nothing else is set.
const DefaultRegion = "us-east-1"

// Settings controls how a run behaves, as opposed to what it does.
// Viper stays inside this package; callers only see this struct.
type Settings struct {
	Region    string
	ConfigDir string
	VerifySSL bool
	Debug     bool
}

var settingFlags = []string{"region", "config_dir", "verify_ssl", "debug"}

// LoadSettings resolves settings from flags > env > defaults. flags must
// already be parsed and carry the flags named in settingFlags.
func LoadSettings(flags *pflag.FlagSet) (*Settings, error) {
	v := viper.New()
	v.SetDefault("region", DefaultRegion)
	v.SetDefault("config_dir", DefaultDir())
	v.SetDefault("verify_ssl", false)
	v.SetDefault("debug", false)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	for _, name := range settingFlags {
		if err := v.BindPFlag(name, flags.Lookup(name)); err != nil {
			return nil, fmt.Errorf("cannot bind flag %s: %w", name, err)
		}
	}

	s := &Settings{
		Region:    v.GetString("region"),
		ConfigDir: v.GetString("config_dir"),
		VerifySSL: v.GetBool("verify_ssl"),
		Debug:     v.GetBool("debug"),
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate ensures settings are sane
func (s *Settings) Validate() error {
	if s.Region == "" {
		return fmt.Errorf("region must not be empty")
	}
	if s.ConfigDir == "" {
		return fmt.Errorf("config directory must not be empty")
	}
	return nil
}

// LogLevel is the slog level matching the debug setting.
func (s *Settings) LogLevel() slog.Level {
	if s.Debug {
		return slog.LevelDebug
	}
	return slog.LevelWarn
}
