package cmd

import (
	"github.com/apex/log"
	"github.com/ivlev/alive2json/internal/manifest"
	"github.com/ivlev/alive2json/internal/source"
	"github.com/ivlev/alive2json/internal/watch"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch <dir>",
	Short: "Convert every document in a directory and reconvert on change",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := args[0]

		p, err := newProject()
		if err != nil {
			return err
		}

		ctx, cancel := signalContext()
		defer cancel()

		src, err := source.New(dir)
		if err != nil {
			return err
		}
		if _, err := p.Run(ctx, manifest.FromSources(src.Paths(), cfg.OutputDir, cfg.Format).Jobs); err != nil {
			log.WithError(err).Warn("[!] initial conversion incomplete")
		}

		w, err := watch.NewWatcher(dir)
		if err != nil {
			return err
		}
		defer w.Close()

		log.Infof("[*] Watching %s", dir)
		watch.Run(ctx, w, func(path string) {
			jobs := manifest.FromSources([]string{path}, cfg.OutputDir, cfg.Format).Jobs
			if _, err := p.Run(ctx, jobs); err != nil {
				log.WithError(err).Warnf("[!] %s", path)
			}
		}, func(err error) {
			log.WithError(err).Error("[!] watcher")
		})

		return nil
	},
}

func init() {
	f := watchCmd.Flags()
	f.StringP("output", "o", "output", "output directory")
	f.StringP("emit", "e", "module", "output kind: module, json or native")
	f.IntP("workers", "w", 1, "parallel conversions")
	rootCmd.AddCommand(watchCmd)
}
