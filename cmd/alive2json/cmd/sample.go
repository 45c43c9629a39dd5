package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/ivlev/alive2json/internal/loader"
	"github.com/ivlev/alive2json/internal/renderer"
	"github.com/spf13/cobra"
)

var sampleTimes []float64

var sampleCmd = &cobra.Command{
	Use:   "sample <file>",
	Short: "Print converted property values at the given times",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		anim, err := loader.Convert(data, loader.Options{
			Format:               loader.MustParseFormat(cfg.Format),
			SkipUnresolvedLayers: cfg.SkipUnresolvedLayers,
			OnUnsupported:        logUnsupported,
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, name := range anim.Names() {
			configs, _ := anim.Get(name)
			fmt.Fprintf(out, "%s\n", name)
			for _, t := range sampleTimes {
				frame := renderer.SampleAll(configs, t)
				props := make([]string, 0, len(frame))
				for p := range frame {
					props = append(props, p)
				}
				sort.Strings(props)

				fmt.Fprintf(out, "  t=%gms", t)
				for _, p := range props {
					fmt.Fprintf(out, " %s=%.4g", p, frame[p])
				}
				fmt.Fprintln(out)
			}
		}
		return nil
	},
}

func init() {
	sampleCmd.Flags().Float64SliceVar(&sampleTimes, "at", []float64{0}, "comma separated sample times in ms")
	rootCmd.AddCommand(sampleCmd)
}
