package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/apex/log"
	"github.com/ivlev/alive2json/internal/clog"
	"github.com/ivlev/alive2json/internal/config"
	"github.com/ivlev/alive2json/internal/converr"
	"github.com/ivlev/alive2json/internal/engine"
	"github.com/ivlev/alive2json/internal/output"
	"github.com/ivlev/alive2json/internal/store"
	"github.com/ivlev/alive2json/internal/system"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	envFile string
	cfg     *config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "alive2json",
	Short: "Convert movie-clip and Lottie animations into runtime property clips",
	Long: `alive2json converts declarative animation documents, either the native
movie-clip format or Lottie/Bodymovin exports, into the property clip
configuration consumed by the playback runtime. Output is a CommonJS module
(module.exports=<json>), bare JSON, or the intermediate movie-clip document.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.LoadDotenv(envFile); err != nil {
			return errors.Wrapf(err, "loading %s", envFile)
		}

		v, err := config.New(cfgFile)
		if err != nil {
			return err
		}
		if err := v.BindPFlags(cmd.Flags()); err != nil {
			return err
		}

		if cfg, err = config.Load(v); err != nil {
			return err
		}
		cfg.BuildVersion = cmd.Root().Version

		if _, err := clog.Setup(os.Stderr, cfg.LogLevel); err != nil {
			return errors.Wrapf(err, "log level %q", cfg.LogLevel)
		}
		if used := v.ConfigFileUsed(); used != "" {
			log.Debugf("[*] config file: %s", used)
		}

		system.InitResourceLimits()
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute(version string) {
	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.alive2json.yaml or ./.alive2json.yaml)")
	pf.StringVar(&envFile, "env-file", ".env", "dotenv file loaded before the config")
	pf.String("log-level", "info", "log level: debug, info, warn, error")
	pf.StringP("format", "f", "alive", "input format: alive or lottie")
	pf.Bool("skip-unresolved", false, "skip Lottie layers whose refId matches no asset")
	pf.String("cache", "", "sqlite path of the conversion cache (empty keeps it in memory)")
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// newProject wires the batch engine from the loaded config.
func newProject() (*engine.Project, error) {
	emit, err := output.ParseEmit(cfg.Emit)
	if err != nil {
		return nil, err
	}

	stor, err := store.NewConversionStor(cfg.CachePath)
	if err != nil {
		return nil, err
	}

	p := engine.NewProject(cfg, stor, &output.FileWriter{}, emit)
	p.OnUnsupported = logUnsupported
	return p, nil
}

func logUnsupported(err error) {
	var unsupported *converr.UnsupportedChannelError
	if errors.As(err, &unsupported) {
		log.WithFields(log.Fields{"layer": unsupported.Layer, "channel": unsupported.Channel}).Warn("[!] channel not converted")
		return
	}
	log.WithError(err).Warn("[!] channel not converted")
}
