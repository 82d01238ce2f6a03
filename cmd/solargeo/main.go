// Command solargeo is a terminal UI and CLI for solar geometry: the sun's
// current position, daylight window, and interval-averaged elevation for an
// observer site.
package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/litescript/solargeo/internal/ephemeris"
	"github.com/litescript/solargeo/internal/logging"
	"github.com/litescript/solargeo/internal/report"
	"github.com/litescript/solargeo/internal/sites"
	"github.com/litescript/solargeo/internal/state"
	"github.com/litescript/solargeo/internal/trace"
	"github.com/litescript/solargeo/internal/ui"
	"github.com/litescript/solargeo/internal/version"
)

// CLI flags for headless mode
var (
	summaryMode   bool
	nowMode       bool
	snapshotPath  string
	watchInterval time.Duration
	versionMode   bool
)

const (
	defaultRefresh = time.Minute
	minRefresh     = time.Second
	maxRefresh     = time.Hour
)

func main() {
	siteName := flag.String("site", "seattle", "Observer site preset name")
	sitesPath := flag.String("sites", "", "YAML file with additional site definitions")
	lat := flag.Float64("lat", math.NaN(), "Override latitude (degrees, north positive)")
	lon := flag.Float64("lon", math.NaN(), "Override longitude (degrees, east positive)")
	tz := flag.Float64("tz", 0, "Timezones west of UTC for lat/lon overrides")
	step := flag.Duration("step", time.Hour, "Averaging bin width (e.g., 30m, 1h, 3h)")
	refresh := flag.Duration("refresh", defaultRefresh, "Recompute interval for the TUI (e.g., 30s, 1m)")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.BoolVar(&summaryMode, "summary", false, "Print a day summary table instead of TUI")
	flag.BoolVar(&nowMode, "now", false, "Single-line current position mode")
	flag.StringVar(&snapshotPath, "snapshot-path", "", "Export JSON day trace to file (use - for stdout)")
	flag.DurationVar(&watchInterval, "watch", 0, "Repeat headless output at interval (e.g., 1m)")
	flag.BoolVar(&versionMode, "version", false, "Print version and exit")
	flag.Parse()

	if versionMode {
		fmt.Println("solargeo " + version.Version)
		return
	}

	if *refresh < minRefresh {
		*refresh = minRefresh
	} else if *refresh > maxRefresh {
		*refresh = maxRefresh
	}

	logger := logging.New(logging.ParseLevel(*logLevel))

	site, err := resolveSite(*siteName, *sitesPath, *lat, *lon, *tz)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger.Debug("Observer site: %s", site)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	headless := summaryMode || nowMode || snapshotPath != ""
	if headless {
		runHeadless(ctx, site, *step, logger)
		return
	}

	cfg := state.DefaultConfig()
	cfg.Site = site
	cfg.RefreshInterval = *refresh
	tracker := state.NewTracker(cfg)

	model := ui.New(tracker)
	p := tea.NewProgram(model, tea.WithAltScreen())

	go runComputeLoop(ctx, site, *step, tracker, p, logger.WithPrefix("compute"))

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

// resolveSite builds the observer site from flags: an explicit lat/lon pair
// wins over the named preset.
func resolveSite(name, sitesPath string, lat, lon, tz float64) (sites.Site, error) {
	if !math.IsNaN(lat) || !math.IsNaN(lon) {
		if math.IsNaN(lat) || math.IsNaN(lon) {
			return sites.Site{}, fmt.Errorf("-lat and -lon must be given together")
		}
		// Ad-hoc sites have no preset name; give them one so Validate
		// can run its coordinate checks.
		site := sites.Site{Name: "custom", Lat: lat, Lon: lon, TZ: tz}
		if err := site.Validate(); err != nil {
			return sites.Site{}, err
		}
		site.Name = ""
		return site, nil
	}

	var extra []sites.Site
	if sitesPath != "" {
		loaded, err := sites.LoadFile(sitesPath)
		if err != nil {
			return sites.Site{}, err
		}
		extra = loaded
	}

	site, ok := sites.Lookup(name, extra)
	if !ok {
		return sites.Site{}, fmt.Errorf("unknown site %q (try -sites for custom definitions)", name)
	}
	return site, nil
}

// runComputeLoop recomputes the solar state on a ticker and pushes snapshots
// into the TUI.
func runComputeLoop(ctx context.Context, site sites.Site, step time.Duration, tracker *state.Tracker, p *tea.Program, logger *logging.Logger) {
	compute := func() {
		now := time.Now().UTC()
		pos := ephemeris.SolarAt(now, site.Lat, site.Lon, true)

		tr, err := trace.BuildDay(site, now, step)
		if err != nil {
			logger.Error("Trace build failed: %v", err)
			tracker.Update(pos, nil, now, err)
			p.Send(ui.ErrorMsg{Error: err})
			return
		}

		logger.Debug("Computed el %.2f az %.2f with %d trace points", pos.Elevation, pos.Azimuth, len(tr.Points))
		tracker.Update(pos, tr, now, nil)
		p.Send(ui.SnapshotMsg{Snapshot: tracker.Snapshot()})
	}

	compute()

	ticker := time.NewTicker(tracker.RefreshInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Debug("Compute loop shutting down")
			return
		case <-ticker.C:
			compute()
		}
	}
}

// runHeadless handles all headless modes without starting the TUI.
func runHeadless(ctx context.Context, site sites.Site, step time.Duration, logger *logging.Logger) {
	isTTY := term.IsTerminal(int(os.Stdout.Fd()))

	outputOnce := func() error {
		now := time.Now().UTC()
		tr, err := trace.BuildDay(site, now, step)
		if err != nil {
			return err
		}

		if nowMode {
			report.WriteNow(os.Stdout, tr, now)
			return nil
		}

		if snapshotPath != "" {
			export := report.ExportTrace(tr)
			if snapshotPath == "-" {
				if err := export.WriteJSON(os.Stdout); err != nil {
					return fmt.Errorf("write JSON to stdout: %w", err)
				}
			} else {
				f, err := os.Create(snapshotPath)
				if err != nil {
					return fmt.Errorf("create snapshot file: %w", err)
				}
				defer f.Close()
				if err := export.WriteJSON(f); err != nil {
					return fmt.Errorf("write JSON to file: %w", err)
				}
				logger.Info("Wrote snapshot to %s", snapshotPath)
			}
		}

		if summaryMode {
			report.WriteSummary(os.Stdout, tr)
		}

		return nil
	}

	if watchInterval == 0 {
		if err := outputOnce(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := outputOnce(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}

	ticker := time.NewTicker(watchInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if summaryMode && isTTY {
				fmt.Println() // blank line between tables on a terminal
			}
			if err := outputOnce(); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
		}
	}
}
