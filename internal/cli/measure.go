package cli

import (
	"github.com/spf13/cobra"

	"github.com/tsawler/scriptorium"
)

var measureCmd = &cobra.Command{
	Use:   "measure [image]",
	Short: "Print the stroke width, leading and ink hue of a page",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		m, err := scriptorium.Open(args[0]).WithConfig(cfg).Measure()
		if err != nil {
			return err
		}
		cmd.Printf("stroke width: %.1f\n", m.StrokeWidth)
		cmd.Printf("leading:      %.1f\n", m.Leading)
		cmd.Printf("ink hue:      %.1f (spread %.1f)\n", m.Hue, m.HueSpread)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(measureCmd)
}
