package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var themeCmd = &cobra.Command{
	Use:   "theme [light|dark]",
	Short: "Show or set the theme preference",
	Long: `Show the stored theme preference, or set it when a value is given.

The preference lives under its own storage key and survives "reset --all".`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"light", "dark"},
	RunE: func(cmd *cobra.Command, args []string) error {
		if Store == nil {
			return fmt.Errorf("store not initialized")
		}
		if len(args) == 0 {
			theme := Store.Theme()
			if theme == "" && Config != nil {
				theme = Config.DefaultTheme
			}
			fmt.Println(theme)
			return nil
		}
		if args[0] != "light" && args[0] != "dark" {
			return fmt.Errorf("invalid theme %q: must be light or dark", args[0])
		}
		if !Store.SetTheme(args[0]) {
			return fmt.Errorf("storing theme failed")
		}
		fmt.Printf("Theme set to %s\n", args[0])
		return nil
	},
}

// currentTheme resolves the effective theme: stored preference first, then
// the configured default.
func currentTheme() string {
	if Store != nil {
		if theme := Store.Theme(); theme != "" {
			return theme
		}
	}
	if Config != nil && Config.DefaultTheme != "" {
		return Config.DefaultTheme
	}
	return "light"
}

func init() {
	rootCmd.AddCommand(themeCmd)
}
