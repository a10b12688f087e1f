package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/katyella/sprig-sample/internal/app"
	apperrors "github.com/katyella/sprig-sample/internal/errors"
	"github.com/katyella/sprig-sample/internal/logging"
	"github.com/katyella/sprig-sample/internal/ui"
)

// Set at build time with -ldflags "-X main.writeKey=... -X main.dataPlaneURL=...".
var (
	writeKey     = ""
	dataPlaneURL = ""

	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Environment variables read when neither a flag nor a build-time value is set.
const (
	envWriteKey        = "SPRIG_SAMPLE_WRITE_KEY"
	envDataPlaneURL    = "SPRIG_SAMPLE_DATA_PLANE_URL"
	envControlPlaneURL = "SPRIG_SAMPLE_CONTROL_PLANE_URL"
)

type flags struct {
	writeKey        string
	dataPlaneURL    string
	controlPlaneURL string
	configPath      string
	home            string
	theme           string
	debug           bool
	noAltScreen     bool
	mouse           bool
}

func main() {
	ctx := context.Background()

	var f flags

	rootCmd := &cobra.Command{
		Use:   "sprig-sample",
		Short: "Sprig Sample - exercise the analytics client from the terminal",
		Long: `Sprig Sample shows four buttons that call the analytics client:
identify, track, track with properties and logout. Calls are forwarded to the
data plane and to the Sprig integration, which may present a survey.

Press ? for help once inside the application.`,
		Version:      fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(f)
		},
	}

	rootCmd.Flags().BoolP("version", "v", false, "Print version information")
	rootCmd.Flags().StringVar(&f.writeKey, "write-key", firstSet(writeKey, os.Getenv(envWriteKey)), "Source write key")
	rootCmd.Flags().StringVar(&f.dataPlaneURL, "data-plane-url", firstSet(dataPlaneURL, os.Getenv(envDataPlaneURL)), "Data plane URL")
	rootCmd.Flags().StringVar(&f.controlPlaneURL, "control-plane-url", os.Getenv(envControlPlaneURL), "Control plane URL (defaults to the hosted control plane)")
	rootCmd.Flags().StringVar(&f.configPath, "config", "", "Path to config.yaml (defaults to <home>/config.yaml)")
	rootCmd.Flags().StringVar(&f.home, "home", "", "State directory (defaults to $HOME/.sprig-sample)")
	rootCmd.Flags().StringVar(&f.theme, "theme", "dark", "Color theme (dark or light)")
	rootCmd.Flags().BoolVarP(&f.debug, "debug", "d", false, "Enable debug mode (logs to sprig-sample.log)")
	rootCmd.Flags().BoolVar(&f.noAltScreen, "no-alt-screen", false, "Disable alternate screen buffer")
	rootCmd.Flags().BoolVar(&f.mouse, "mouse", true, "Enable mouse support (click buttons, scroll the activity log)")

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.Fatal(exitMessage(err))
	}
}

// exitMessage is what main prints before exiting on err.
func exitMessage(err error) string {
	msg := "Error executing command: " + apperrors.Describe(err)
	if apperrors.Recoverable(err) {
		msg += " (temporary, try again)"
	}
	return msg
}

// run builds the client once, hands it to the screen and closes it on exit.
func run(f flags) error {
	logger := logging.SetupLogger(f.debug, logging.LevelVerbose)

	a, err := app.New(app.Options{
		WriteKey:        f.writeKey,
		DataPlaneURL:    f.dataPlaneURL,
		ControlPlaneURL: f.controlPlaneURL,
		ConfigPath:      f.configPath,
		Home:            f.home,
		Version:         version,
		Logger:          logger,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			logging.Error(logger, "closing analytics client: %v", err)
		}
	}()

	screen, err := ui.NewScreen(a.Client, a.Sprig, ui.ScreenOptions{
		Version: version,
		Theme:   f.theme,
		Logger:  logger,
	})
	if err != nil {
		return err
	}

	return ui.RunTUI(screen, ui.ProgramOptions{
		AltScreen:    !f.noAltScreen,
		MouseSupport: f.mouse,
	})
}

func firstSet(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
