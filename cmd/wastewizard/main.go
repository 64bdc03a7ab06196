// Command wastewizard runs the collection schedule and disposal lookups from a
// shell, against the same datasets the server uses.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/randytsao24/wastewizard/internal/app"
	"github.com/randytsao24/wastewizard/internal/collection"
	"github.com/randytsao24/wastewizard/internal/config"
	"github.com/randytsao24/wastewizard/internal/logging"
	"github.com/randytsao24/wastewizard/internal/models"
	"github.com/randytsao24/wastewizard/internal/outcome"
	"github.com/randytsao24/wastewizard/internal/skill"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "wastewizard",
	Short: "Toronto collection schedules and disposal instructions",
	Long: `Look up Toronto curbside collection schedules and waste disposal
instructions from the command line.

Configuration is read from the environment and an optional .env file, the
same way the server reads it.`,
	SilenceUsage: true,
}

var scheduleCmd = &cobra.Command{
	Use:   "schedule <address...>",
	Short: "Show the next collection for a street address",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSchedule,
}

var lookupCmd = &cobra.Command{
	Use:   "lookup <material...>",
	Short: "Show disposal instructions for a material",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runLookup,
}

var (
	zoneLat float64
	zoneLng float64
)

var zoneCmd = &cobra.Command{
	Use:   "zone",
	Short: "Show the collection area containing a coordinate",
	RunE:  runZone,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log upstream calls to stderr")

	zoneCmd.Flags().Float64Var(&zoneLat, "lat", 0, "latitude (WGS84)")
	zoneCmd.Flags().Float64Var(&zoneLng, "lng", 0, "longitude (WGS84)")
	_ = zoneCmd.MarkFlagRequired("lat")
	_ = zoneCmd.MarkFlagRequired("lng")

	rootCmd.AddCommand(scheduleCmd, lookupCmd, zoneCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// services builds the lookup services; callers must Close them
func services() (*app.App, error) {
	cfg := config.Load()
	// no voice requests are handled here
	cfg.AcceptAnyApplication = true
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}

	log := zap.NewNop()
	if verbose {
		var err error
		if log, err = logging.New("development", "debug"); err != nil {
			return nil, err
		}
	}
	return app.New(cfg, log, nil), nil
}

func runSchedule(cmd *cobra.Command, args []string) error {
	a, err := services()
	if err != nil {
		return err
	}
	defer a.Close()

	res := a.Skill.LookupAddress(cmd.Context(), strings.Join(args, " "))
	return printSchedule(cmd.OutOrStdout(), res)
}

func printSchedule(w io.Writer, res skill.Result) error {
	fmt.Fprintln(w, skill.ScheduleText(res))
	if !res.OK() {
		return fmt.Errorf("lookup stopped after %s: %w", res.Reached, res.Err)
	}

	fmt.Fprintf(w, "  zone:  %s\n", res.Zone)
	fmt.Fprintf(w, "  date:  %s\n", collection.LabelDate(res.Collection.Date, res.Query, res.Tomorrow))
	fmt.Fprintf(w, "  items: %s\n", collection.FormatItemList(res.Collection.Items()))
	return nil
}

func runLookup(cmd *cobra.Command, args []string) error {
	a, err := services()
	if err != nil {
		return err
	}
	defer a.Close()

	match, err := a.Skill.FindMaterial(cmd.Context(), strings.Join(args, " "))
	if errors.Is(err, outcome.NoMatch) {
		fmt.Fprintln(cmd.OutOrStdout(), "Not in the catalogue. Call 311 and ask the city.")
		return err
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s (%s)\n", match.Term, match.Category)
	if !match.Exact {
		fmt.Fprintln(out, "  closest keyword match")
	}
	fmt.Fprintln(out, match.Instructions)
	return nil
}

func runZone(cmd *cobra.Command, args []string) error {
	a, err := services()
	if err != nil {
		return err
	}
	defer a.Close()

	zone, err := a.Zones.Resolve(cmd.Context(), models.Coordinate{Lat: zoneLat, Lng: zoneLng})
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), zone)
	return nil
}
