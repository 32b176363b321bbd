package cmd

import (
	"fmt"

	"github.com/kerbaras/littlelemon/pkg/integrations"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the cached menu as an EPUB",
	Long:  "Write the locally cached menu to an EPUB book with one chapter per category",
	RunE: func(cmd *cobra.Command, args []string) error {
		outDir, _ := cmd.Flags().GetString("out")
		withImages, _ := cmd.Flags().GetBool("images")

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		controller, err := openCLI(cmd)
		if err != nil {
			return err
		}
		defer controller.Close()

		items, err := controller.Menu()
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return fmt.Errorf("the menu has not been downloaded yet, run 'littlelemon sync' first")
		}

		builder := integrations.NewEPubBuilder(outDir, nil)
		if withImages {
			builder.WithImages(
				integrations.NewHTTPImageFetcher(cfg.FetchTimeout),
				integrations.NewImageProcessor(integrations.DefaultImageSettings()),
			)
		}

		path, err := builder.CreateEPub(cmd.Context(), items)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "📖 Menu exported: %s\n", path)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringP("out", "o", ".", "directory to write the EPUB to")
	exportCmd.Flags().Bool("images", false, "download and embed dish photos")
}
