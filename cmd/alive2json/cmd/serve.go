package cmd

import (
	"github.com/ivlev/alive2json/internal/store"
	"github.com/ivlev/alive2json/internal/webapi"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve conversions over HTTP",
	Long: `Serve conversions over HTTP.

  POST /api/convert?format=lottie&emit=module   body: the source document
  GET  /api/health`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		stor, err := store.NewConversionStor(cfg.CachePath)
		if err != nil {
			return err
		}

		ctx, cancel := signalContext()
		defer cancel()

		e := webapi.NewServer(stor, cfg.SkipUnresolvedLayers)
		return webapi.Serve(ctx, e, cfg.Listen)
	},
}

func init() {
	serveCmd.Flags().StringP("listen", "l", "localhost:8560", "listen address")
	rootCmd.AddCommand(serveCmd)
}
