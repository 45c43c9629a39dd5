package cmd

import (
	"runtime"

	"github.com/apex/log"
	"github.com/ivlev/alive2json/internal/manifest"
	"github.com/ivlev/alive2json/internal/source"
	"github.com/ivlev/alive2json/internal/system"
	"github.com/spf13/cobra"
)

var manifestOut string

var convertCmd = &cobra.Command{
	Use:   "convert [paths...]",
	Short: "Convert documents or directories of documents",
	Long: `Convert each given document, or every .json document in each given directory.
Without arguments the newest .json document in the input directory is converted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		paths := args
		if len(paths) == 0 {
			latest, err := system.FindLatestSource(cfg.InputPath)
			if err != nil {
				return err
			}
			log.Infof("[*] Selected: %s", latest)
			paths = []string{latest}
		}

		src, err := source.New(paths...)
		if err != nil {
			return err
		}
		m := manifest.FromSources(src.Paths(), cfg.OutputDir, cfg.Format)

		if manifestOut != "" {
			if err := manifest.Write(m, manifestOut); err != nil {
				return err
			}
			log.Infof("[+++] Manifest saved: %s", manifestOut)
			return nil
		}

		p, err := newProject()
		if err != nil {
			return err
		}

		ctx, cancel := signalContext()
		defer cancel()
		if _, err := p.Run(ctx, m.Jobs); err != nil {
			return err
		}

		log.Infof("[+++] Done: %d module(s) in %s", len(m.Jobs), cfg.OutputDir)
		return nil
	},
}

func init() {
	f := convertCmd.Flags()
	f.StringP("output", "o", "output", "output directory")
	f.String("input", "input", "directory searched for the newest document when no path is given")
	f.StringP("emit", "e", "module", "output kind: module, json or native")
	f.IntP("workers", "w", runtime.NumCPU(), "parallel conversions")
	f.Bool("stats", false, "print a performance report")
	f.StringVar(&manifestOut, "write-manifest", "", "write the batch manifest for these inputs instead of converting")
	rootCmd.AddCommand(convertCmd)
}
