package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ppiankov/absa/internal/aspect"
	"github.com/ppiankov/absa/internal/model"
)

// aspectsCmd represents the aspects command
var aspectsCmd = &cobra.Command{
	Use:   "aspects",
	Short: "List aspects and their keywords in tagging order",
	Long: `Aspects prints the fixed keyword table used by analyze.

A review gets the first aspect, top to bottom, with any keyword occurring
anywhere in its lowercased text. Keywords are substrings, so "log" also
matches "dialogue".`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("locale") {
			cfg.Locale = locale
		}
		return writeAspects(os.Stdout, model.ParseLocale(cfg.Locale))
	},
}

func init() {
	rootCmd.AddCommand(aspectsCmd)
	aspectsCmd.Flags().StringVar(&locale, "locale", "", "display names: id or en (default from config: id)")
}

// writeAspects prints one row per aspect in priority order
func writeAspects(w io.Writer, l model.Locale) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for i, a := range model.Aspects {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", i+1, a.Label(l), strings.Join(aspect.Keywords(a), ", "))
	}
	return tw.Flush()
}
