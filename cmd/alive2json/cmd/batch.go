package cmd

import (
	"runtime"

	"github.com/apex/log"
	"github.com/ivlev/alive2json/internal/manifest"
	"github.com/spf13/cobra"
)

var batchCmd = &cobra.Command{
	Use:   "batch manifest.yaml",
	Short: "Run the conversions listed in a YAML manifest",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := manifest.Read(args[0])
		if err != nil {
			return err
		}
		log.Infof("[*] Manifest %s: %d job(s)", args[0], len(m.Jobs))

		p, err := newProject()
		if err != nil {
			return err
		}

		ctx, cancel := signalContext()
		defer cancel()
		_, err = p.Run(ctx, m.Jobs)
		return err
	},
}

func init() {
	f := batchCmd.Flags()
	f.StringP("emit", "e", "module", "output kind: module, json or native")
	f.IntP("workers", "w", runtime.NumCPU(), "parallel conversions")
	f.Bool("stats", false, "print a performance report")
	rootCmd.AddCommand(batchCmd)
}
