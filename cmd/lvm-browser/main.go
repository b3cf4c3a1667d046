package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/yourusername/lvm-browser/internal/app"
	"github.com/yourusername/lvm-browser/internal/diagnostic"
	"github.com/yourusername/lvm-browser/internal/gateway"
	"go.uber.org/zap"
)

var (
	// Version will be set by build flags, default to timestamp
	Version = "dev-" + time.Now().Format("20060102-150405")
	// BuildTime will be set by build flags
	BuildTime = "unknown"

	// Global flags
	configFile string
	verbose    bool
	locale     string
)

var rootCmd = &cobra.Command{
	Use:   "lvm-browser",
	Short: "An interactive browser for Linux storage topology",
	Long: `lvm-browser is a read-only terminal browser for the local storage
stack. It discovers block devices, partitions, physical volumes, volume
groups and logical volumes by shelling out to the standard inventory
tools (lsblk, fdisk, parted, pvs, vgs, lvs, df) and renders the joined
topology in a three-panel console.

Run it as root to see the LVM layer; without privileges the block
device panel still works and the header explains what is missing.`,
	Version: Version,
	RunE:    runBrowser,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (default: ./config/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&locale, "locale", "l", "en", "interface language (en, zh)")

	rootCmd.Flags().IntP("refresh", "r", 5, "refresh interval in seconds")
	rootCmd.Flags().Bool("no-color", false, "disable color output")
	rootCmd.Flags().String("export-dir", "", "directory for snapshot exports")
	rootCmd.Flags().Bool("check", false, "probe the inventory commands and exit")
}

// runCheck probes each inventory command and prints the result, without
// starting the TUI.
func runCheck(timeout time.Duration) error {
	runner := gateway.NewExecRunner(timeout, zap.NewNop())
	failed := false
	for _, res := range diagnostic.RunPreflight(context.Background(), runner) {
		if res.OK {
			fmt.Printf("ok    %s\n", res.Command)
			continue
		}
		failed = true
		fmt.Printf("FAIL  %s: %s\n", res.Command, res.Detail)
		if res.Action != "" {
			fmt.Printf("      -> %s\n", res.Action)
		}
	}
	if failed {
		return fmt.Errorf("some inventory commands are unusable")
	}
	return nil
}

func runBrowser(cmd *cobra.Command, args []string) error {
	config, err := app.LoadConfig(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if check, _ := cmd.Flags().GetBool("check"); check {
		return runCheck(config.CommandTimeout)
	}

	// Only override locale if user explicitly specified it
	if cmd.Flags().Changed("locale") {
		config.Locale = locale
	}
	if verbose {
		config.LogLevel = "debug"
	}
	if cmd.Flags().Changed("refresh") {
		if refresh, _ := cmd.Flags().GetInt("refresh"); refresh > 0 {
			config.RefreshInterval = time.Duration(refresh) * time.Second
		}
	}
	if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
		config.NoColor = true
	}
	if cmd.Flags().Changed("export-dir") {
		config.ExportDir, _ = cmd.Flags().GetString("export-dir")
	}

	application, err := app.New(config, Version)
	if err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}
	defer func() {
		if err := application.Shutdown(); err != nil {
			fmt.Fprintf(os.Stderr, "Error during shutdown: %v\n", err)
		}
	}()

	// Setup signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		errChan <- application.Run()
	}()

	select {
	case err := <-errChan:
		if err != nil {
			return fmt.Errorf("application error: %w", err)
		}
	case sig := <-sigChan:
		zap.L().Info("Received signal, shutting down...", zap.String("signal", sig.String()))
	}

	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
