package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

// EnvPrefix namespaces every environment override, e.g. ALIVE2JSON_WORKERS.
const EnvPrefix = "ALIVE2JSON"

// FileName is the optional config file looked up in the working directory and $HOME.
const FileName = ".alive2json"

type Config struct {
	InputPath            string `mapstructure:"input"`
	OutputDir            string `mapstructure:"output"`
	Format               string `mapstructure:"format"`
	Emit                 string `mapstructure:"emit"`
	Workers              int    `mapstructure:"workers"`
	SkipUnresolvedLayers bool   `mapstructure:"skip-unresolved"`
	ShowStats            bool   `mapstructure:"stats"`
	LogLevel             string `mapstructure:"log-level"`
	CachePath            string `mapstructure:"cache"`
	Listen               string `mapstructure:"listen"`
	BuildVersion         string `mapstructure:"-"`
}

// Defaults mirrors the CLI flag defaults.
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		"input":           "input",
		"output":          "output",
		"format":          "alive",
		"emit":            "module",
		"workers":         runtime.NumCPU(),
		"skip-unresolved": false,
		"stats":           false,
		"log-level":       "info",
		"cache":           "",
		"listen":          "localhost:8560",
	}
}

// New returns a viper instance with defaults, env binding and the optional
// config file wired in. cfgFile overrides the lookup when set.
func New(cfgFile string) (*viper.Viper, error) {
	v := viper.New()
	for key, value := range Defaults() {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, errors.Wrapf(err, "reading config %s", v.ConfigFileUsed())
		}
	}

	return v, nil
}

// LoadDotenv loads a dotenv file into the process environment if it exists.
func LoadDotenv(path string) error {
	if path == "" {
		return nil
	}
	path, err := homedir.Expand(path)
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	return gotenv.Load(filepath.Clean(path))
}

// Load decodes v into a Config.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "decoding config")
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return &cfg, nil
}
