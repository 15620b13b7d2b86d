package cmd

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/arcanaland/framesmith/internal/imageserver"
)

var (
	serveListen string
	serveRoot   string
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve hosted art to CardConjurer",
	Long: `Serve runs a small image server for the art saved by 'framesmith build'.
Files under the root are served at /<path_prefix>/..., and remote builds can
upload with 'framesmith build --upload'.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		is := cfg.ImageServer
		listen := serveListen
		if listen == "" {
			listen = is.Listen
		}
		root := serveRoot
		if root == "" {
			root = is.Root
		}
		if err := os.MkdirAll(root, 0755); err != nil {
			return fmt.Errorf("error creating image root: %v", err)
		}

		if !devLog {
			gin.SetMode(gin.ReleaseMode)
		}
		srv := imageserver.New(root, is.PathPrefix, logger)
		return srv.ListenAndServe(cmd.Context(), listen)
	},
}

func init() {
	RootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveListen, "listen", "", "Address to listen on (default from config)")
	serveCmd.Flags().StringVar(&serveRoot, "root", "", "Directory to serve (default from config)")
}
