package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/example/supertonic-assets/internal/assets"
)

type Config struct {
	Paths    PathsConfig  `mapstructure:"paths"`
	Remote   RemoteConfig `mapstructure:"remote"`
	Fetch    FetchConfig  `mapstructure:"fetch"`
	LogLevel string       `mapstructure:"log_level"`
}

type PathsConfig struct {
	Dest    string `mapstructure:"dest"`
	WorkDir string `mapstructure:"work_dir"`
	Output  string `mapstructure:"output"`
}

type RemoteConfig struct {
	BaseURL    string `mapstructure:"base_url"`
	ReleaseURL string `mapstructure:"release_url"`
	Revision   string `mapstructure:"revision"`
	Token      string `mapstructure:"token"`
}

type FetchConfig struct {
	Styles      string `mapstructure:"styles"`
	Force       bool   `mapstructure:"force"`
	SkipRelease bool   `mapstructure:"skip_release"`
	KeepWorkDir bool   `mapstructure:"keep_work_dir"`
}

type LoadOptions struct {
	Cmd        flagBinder
	ConfigFile string
	Defaults   Config
}

type flagBinder interface {
	Flags() *pflag.FlagSet
}

func DefaultConfig() Config {
	return Config{
		Paths: PathsConfig{
			Dest:    "assets/supertonic",
			WorkDir: "",
			Output:  "supertonic_core.tar.gz",
		},
		Remote: RemoteConfig{
			BaseURL:    assets.DefaultBaseURL,
			ReleaseURL: assets.DefaultReleaseURL,
			Revision:   "main",
			Token:      "",
		},
		Fetch: FetchConfig{
			Styles:      "",
			Force:       false,
			SkipRelease: false,
			KeepWorkDir: false,
		},
		LogLevel: "info",
	}
}

func RegisterFlags(fs *pflag.FlagSet, defaults Config) {
	fs.String("dest", defaults.Paths.Dest, "Destination directory for fetched assets")
	fs.String("work-dir", defaults.Paths.WorkDir, "Working directory for downloads and staging")
	fs.String("output", defaults.Paths.Output, "Output archive path for pack")
	fs.String("base-url", defaults.Remote.BaseURL, "Per-file base URL template containing {revision}")
	fs.String("release-url", defaults.Remote.ReleaseURL, "Direct release archive URL")
	fs.String("revision", defaults.Remote.Revision, "Revision / branch / tag to fetch from")
	fs.String("hf-token", defaults.Remote.Token, "Hugging Face token (falls back to HF_TOKEN or HUGGINGFACE_TOKEN env vars)")
	fs.String("style", defaults.Fetch.Styles, "Comma-separated voice styles to fetch (default: all)")
	fs.Bool("force", defaults.Fetch.Force, "Overwrite existing files")
	fs.Bool("skip-release", defaults.Fetch.SkipRelease, "Skip attempting the release archive download")
	fs.Bool("keep-work-dir", defaults.Fetch.KeepWorkDir, "Keep the working directory after completion")
	fs.String("log-level", defaults.LogLevel, "Log level (debug|info|warn|error)")
}

func Load(opts LoadOptions) (Config, error) {
	v := viper.New()

	setDefaults(v, opts.Defaults)
	if opts.Cmd != nil {
		if err := bindFlags(v, opts.Cmd.Flags()); err != nil {
			return Config{}, err
		}
	}

	v.SetEnvPrefix("SUPERTONIC")
	replacer := strings.NewReplacer("-", "_", ".", "_", "__", "_")
	v.SetEnvKeyReplacer(replacer)
	if err := v.BindEnv("remote.token", "HF_TOKEN", "HUGGINGFACE_TOKEN"); err != nil {
		return Config{}, fmt.Errorf("bind token env vars: %w", err)
	}
	if err := v.BindEnv("remote.release_url", "SUPERSONIC_RELEASE_URL"); err != nil {
		return Config{}, fmt.Errorf("bind release URL env var: %w", err)
	}
	if err := v.BindEnv("remote.base_url", "SUPERTONIC_HF_BASE"); err != nil {
		return Config{}, fmt.Errorf("bind base URL env var: %w", err)
	}
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	} else {
		v.SetConfigName("supertonic")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper, c Config) {
	v.SetDefault("paths.dest", c.Paths.Dest)
	v.SetDefault("paths.work_dir", c.Paths.WorkDir)
	v.SetDefault("paths.output", c.Paths.Output)
	v.SetDefault("remote.base_url", c.Remote.BaseURL)
	v.SetDefault("remote.release_url", c.Remote.ReleaseURL)
	v.SetDefault("remote.revision", c.Remote.Revision)
	v.SetDefault("remote.token", c.Remote.Token)
	v.SetDefault("fetch.styles", c.Fetch.Styles)
	v.SetDefault("fetch.force", c.Fetch.Force)
	v.SetDefault("fetch.skip_release", c.Fetch.SkipRelease)
	v.SetDefault("fetch.keep_work_dir", c.Fetch.KeepWorkDir)
	v.SetDefault("log_level", c.LogLevel)
}

// bindFlags maps each config key onto its command-line flag.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	bindings := []struct {
		key  string
		flag string
	}{
		{"paths.dest", "dest"},
		{"paths.work_dir", "work-dir"},
		{"paths.output", "output"},
		{"remote.base_url", "base-url"},
		{"remote.release_url", "release-url"},
		{"remote.revision", "revision"},
		{"remote.token", "hf-token"},
		{"fetch.styles", "style"},
		{"fetch.force", "force"},
		{"fetch.skip_release", "skip-release"},
		{"fetch.keep_work_dir", "keep-work-dir"},
		{"log_level", "log-level"},
	}

	for _, b := range bindings {
		flag := fs.Lookup(b.flag)
		if flag == nil {
			return fmt.Errorf("flag %q not registered", b.flag)
		}

		if err := v.BindPFlag(b.key, flag); err != nil {
			return fmt.Errorf("bind flag %q: %w", b.flag, err)
		}
	}

	return nil
}

// ParseLogLevel maps a config string onto a slog level.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q (want debug|info|warn|error)", s)
	}
}
