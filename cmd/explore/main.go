package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	explorer "github.com/mirroir/uiexplorer"
	"github.com/mirroir/uiexplorer/utils"
	"golang.org/x/term"
)

const HelpBanner = `
┌─┐─┐ ┬┌─┐┬  ┌─┐┬─┐┌─┐┬─┐
├┤ ┌┴┬┘├─┘│  │ │├┬┘├┤ ├┬┘
└─┘┴ └─┴  ┴─┘└─┘┴└─└─┘┴└─

Autonomous UI exploration.
    Version: %s

`

// Version indicates the current build version.
var Version string

var (
	script    = flag.String("script", "", "Path to a JSON-scripted demo app (see fixture.go)")
	appName   = flag.String("app", "demo", "App name to record in the session report")
	goal      = flag.String("goal", "", "Single exploration goal; empty means free discovery")
	mode      = flag.String("mode", "dfs", "Traversal strategy: dfs or bfs")
	platform  = flag.String("platform", "mobile", "Platform policy: mobile or desktop")
	maxDepth  = flag.Int("maxdepth", 8, "Maximum traversal depth")
	maxScreen = flag.Int("maxscreens", 60, "Maximum distinct screens to capture")
	maxTime   = flag.Duration("maxtime", 2*time.Minute, "Wall-clock budget for the run")
	outPath   = flag.String("out", "-", "Report output path, or - for stdout")
)

func main() {
	log.SetFlags(0)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, fmt.Sprintf(HelpBanner, Version))
		flag.PrintDefaults()
	}
	flag.Parse()

	if *script == "" {
		flag.Usage()
		log.Fatal(utils.DecorateText("\nA -script fixture path is required.", utils.ErrorMessage))
	}

	fixture, err := loadFixture(*script)
	if err != nil {
		log.Fatal(utils.DecorateText(fmt.Sprintf("Failed to load fixture: %v", err), utils.ErrorMessage))
	}

	var strategy explorer.PlatformStrategy
	switch *platform {
	case "desktop":
		strategy = explorer.NewDesktopStrategy()
	default:
		strategy = explorer.NewMobileStrategy()
	}

	budget := explorer.DefaultBudget()
	budget.MaxDepth = *maxDepth
	budget.MaxScreens = *maxScreen
	budget.MaxTime = *maxTime

	session := explorer.NewSession()
	session.Start(*appName, *goal, nil)

	driver := newFixtureDriver(fixture)

	spinner := utils.NewSpinner(
		fmt.Sprintf("%s %s", utils.DecorateText("explore", utils.StatusMessage), utils.DecorateText("⇢ walking "+*appName, utils.DefaultMessage)),
		80*time.Millisecond, true)
	spinner.Start()

	ctx := context.Background()
	started := time.Now()
	steps := run(ctx, session, strategy, budget, driver, *mode)

	spinner.StopMsg = fmt.Sprintf("done in %s (%d steps)\n", utils.FormatTime(time.Since(started)), steps)
	spinner.Stop()

	data := session.Finalize()
	writeReport(data, tableWidth())
}

// run drives session.Graph via the chosen explorer until it reports
// finished or paused, returning the number of Step calls taken.
func run(ctx context.Context, session *explorer.ExplorationSession, strategy explorer.PlatformStrategy, budget explorer.ExplorationBudget, driver *fixtureDriver, mode string) int {
	steps := 0

	if mode == "bfs" {
		bfs := explorer.NewBFSExplorer(session, strategy, budget)
		for {
			result := bfs.Step(ctx, driver, driver)
			steps++
			if result.Kind == explorer.StepFinished || result.Kind == explorer.StepPaused {
				break
			}
		}
		return steps
	}

	dfs := explorer.NewDFSExplorer(session, strategy, budget)
	for {
		result := dfs.Step(ctx, driver, driver)
		steps++
		if result.Kind == explorer.StepFinished || result.Kind == explorer.StepPaused {
			break
		}
	}
	return steps
}

func writeReport(data *explorer.SessionData, width int) {
	if data == nil {
		fmt.Println(utils.DecorateText("session produced no data", utils.ErrorMessage))
		return
	}

	paths := explorer.FindInterestingPaths(data.GraphSnapshot)
	screenCount := len(data.GraphSnapshot.Nodes)
	components := detectFinalScreenComponents(data)

	out := os.Stdout
	if *outPath != "-" {
		f, err := os.Create(*outPath)
		if err != nil {
			log.Fatal(utils.DecorateText(fmt.Sprintf("Failed to write report: %v", err), utils.ErrorMessage))
		}
		defer f.Close()
		out = f
	}

	fmt.Fprintf(out, "%s\n", utils.DecorateText(fmt.Sprintf("%d screens, %d paths (table width %d)", screenCount, len(paths), width), utils.SuccessMessage))
	for _, p := range paths {
		fmt.Fprintf(out, "  %s\n", p.Name)
	}
	if len(components) > 0 {
		fmt.Fprintf(out, "%s\n", utils.DecorateText(fmt.Sprintf("%d named components on the final screen", len(components)), utils.SuccessMessage))
		for _, c := range components {
			fmt.Fprintf(out, "  component: %s\n", c.Name)
		}
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	enc.Encode(data)
}

// detectFinalScreenComponents runs the on-disk/built-in component
// catalog (internal/components) against the last captured screen, so a
// report names recognisable UI components (tab bars, settings rows,
// dismiss banners) instead of only raw elements. Catalog load failures
// are logged and otherwise ignored, matching the catalog's own
// degrade-don't-abort contract.
func detectFinalScreenComponents(data *explorer.SessionData) []explorer.ScreenComponent {
	if len(data.Screens) == 0 {
		return nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}
	defs, chevronExplicit, _ := explorer.LoadComponentCatalog(home)

	last := data.Screens[len(data.Screens)-1]
	classified := explorer.ClassifyElements(last.Elements)
	return explorer.DetectComponents(classified, defs, chevronExplicit, estimateScreenHeight(last.Elements))
}

// estimateScreenHeight reconstructs an approximate screen height from
// the captured elements' own Y coordinates, since the fixture driver
// doesn't record device screen bounds.
func estimateScreenHeight(elements []explorer.TapPoint) float64 {
	height := 800.0
	for _, e := range elements {
		if e.Y+100 > height {
			height = e.Y + 100
		}
	}
	return height
}

// tableWidth returns the current terminal width, falling back to 80
// columns when stdout isn't a tty (grounded on the ancestor CLI's
// term.GetSize usage). The report only prints it in its header line; no
// output is resized to it.
func tableWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return 80
	}
	return w
}
