package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"cinebook-cli/config"
	"cinebook-cli/tui"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of CineBook CLI",
	Long:  `CineBook CLI Version`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("CineBook CLI v0.3")
	},
}

var rootCmd = &cobra.Command{
	Use:   "cinebook",
	Short: "CineBook CLI",
	Long:  `Browse movies, pick your seats and book tickets from the terminal :)`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		program := tea.NewProgram(tui.New(cfg), tea.WithAltScreen())
		_, err := program.Run()
		return err
	},
}

func Execute() {
	rootCmd.AddCommand(loginCmd, logoutCmd, reservationsCmd, versionCmd)
	reservationsCmd.Flags().Bool("qr", false, "print a scannable QR code for each booking reference")
	rootCmd.SilenceUsage = true
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
