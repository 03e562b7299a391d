package cmd

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"

	"github.com/xkilldash9x/deskpilot/internal/config"
	"github.com/xkilldash9x/deskpilot/internal/geometry"
	"github.com/xkilldash9x/deskpilot/internal/locate"
	"github.com/xkilldash9x/deskpilot/internal/motion"
	"github.com/xkilldash9x/deskpilot/internal/observability"
	"github.com/xkilldash9x/deskpilot/internal/screen"
	"github.com/xkilldash9x/deskpilot/internal/verb"
	"github.com/xkilldash9x/deskpilot/internal/verify"
)

// detectDisplay is a function variable so tests can run the command tree
// without a physical display.
var detectDisplay = screen.DetectDisplay

// Display geometry is detected once and reused across fires unless
// display.redetect_per_fire asks for a fresh read every time.
var (
	cachedDisplay   geometry.Display
	displayDetected bool
)

func sessionDisplay(dcfg config.DisplayConfig) (geometry.Display, error) {
	if displayDetected && !dcfg.RedetectPerFire {
		return cachedDisplay, nil
	}
	display, err := detectDisplay(dcfg.Index, dcfg.Scale)
	if err != nil {
		return geometry.Display{}, fmt.Errorf("detecting display %d: %w", dcfg.Index, err)
	}
	cachedDisplay = display
	displayDetected = true
	return display, nil
}

// buildEnv assembles the verb environment from the materialized
// configuration.
func buildEnv(cfg config.Interface) (*verb.Env, error) {
	logger := observability.GetLogger()

	display, err := sessionDisplay(cfg.Display())
	if err != nil {
		return nil, err
	}

	capturer := screen.NewDisplayCapturer(cfg.Display().Index)
	injector := screen.NewSystemInjector()
	if !injector.Supported() {
		logger.Warn("No input injection tool found; actions will fail. Install xdotool.")
	}

	vcfg := cfg.Verify()
	lcfg := cfg.Locate()

	resolver := locate.NewResolver(display, capturer, locate.Options{
		MinScore:       lcfg.MinScore,
		NeedleFloor:    lcfg.NeedleFloor,
		PixelTolerance: lcfg.PixelTolerance,
		ZoneSize:       vcfg.CheckZoneSize,
	}, logger.Named("locate"))

	engine := verify.NewEngine(display, capturer, verify.SystemClock(), verify.Options{
		Timeout:        vcfg.Timeout,
		Interval:       vcfg.Interval,
		DiffTolerance:  vcfg.Tolerance,
		PixelTolerance: vcfg.PixelTolerance,
	}, logger.Named("verify"))

	mover := motion.New(moverConfig(cfg.Motion()), display, injector, logger.Named("motion"))

	jcfg := cfg.Journal()
	journalDir, err := homedir.Expand(jcfg.Dir)
	if err != nil {
		return nil, fmt.Errorf("could not resolve journal dir %q: %w", jcfg.Dir, err)
	}
	journal, err := verb.NewJournal(journalDir, display, jcfg.SaveFrames, logger.Named("journal"))
	if err != nil {
		return nil, fmt.Errorf("opening action journal: %w", err)
	}

	return &verb.Env{
		Display:  display,
		Capturer: capturer,
		Injector: injector,
		Resolver: resolver,
		Engine:   engine,
		Mover:    mover,
		Journal:  journal,
		Logger:   logger.Named("verb"),
	}, nil
}

// moverConfig maps the configuration section onto the motion parameters.
func moverConfig(mc config.MotionConfig) motion.Config {
	return motion.Config{
		Profile:                motion.ParseProfile(mc.Profile),
		FittsAMean:             mc.FittsAMean,
		FittsAStdDev:           mc.FittsAStdDev,
		FittsBMean:             mc.FittsBMean,
		FittsBStdDev:           mc.FittsBStdDev,
		GaussianStrengthMean:   mc.GaussianStrengthMean,
		GaussianStrengthStdDev: mc.GaussianStrengthStdDev,
		PerlinAmplitudeMean:    mc.PerlinAmplitudeMean,
		PerlinAmplitudeStdDev:  mc.PerlinAmplitudeStdDev,
		PressHoldMinMs:         mc.PressHoldMinMs,
		PressHoldMaxMs:         mc.PressHoldMaxMs,
		WheelBurstMax:          mc.WheelBurstMax,
		WheelPauseMinMs:        mc.WheelPauseMinMs,
		WheelPauseMaxMs:        mc.WheelPauseMaxMs,
		FatigueIncreaseRate:    mc.FatigueIncreaseRate,
		FatigueRecoveryRate:    mc.FatigueRecoveryRate,
	}
}

// targetFlags registers the flags every targeting command shares.
func targetFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("template", "t", "", "Path to a PNG template locating the target.")
	cmd.Flags().String("strategy", "template", "Location strategy ('template', 'bitmap', 'edge').")
	cmd.Flags().Float64("template-scale", 1.0, "Scale factor the template was captured at.")
	cmd.Flags().StringP("point", "p", "", "Absolute target as 'x,y' in scaled units.")
	cmd.Flags().String("zone", "", "Verification zone override as 'x,y,w,h' in scaled units.")
}

// budgetFlags registers the per-invocation verification budget overrides.
func budgetFlags(cmd *cobra.Command) {
	cmd.Flags().Duration("timeout", 0, "Verification timeout. (Overrides the verb default)")
	cmd.Flags().Duration("interval", 0, "Verification poll interval. (Overrides the verb default)")
}

// parseTarget builds the locate target from the shared targeting flags.
func parseTarget(cmd *cobra.Command, display geometry.Display) (locate.Target, error) {
	templatePath, _ := cmd.Flags().GetString("template")
	pointSpec, _ := cmd.Flags().GetString("point")

	var target locate.Target
	switch {
	case templatePath != "" && pointSpec != "":
		return locate.Target{}, fmt.Errorf("--template and --point are mutually exclusive")
	case templatePath != "":
		tpl, err := loadTemplate(cmd, templatePath)
		if err != nil {
			return locate.Target{}, err
		}
		target = locate.TemplateTarget(tpl)
	case pointSpec != "":
		point, err := parsePoint(display, pointSpec)
		if err != nil {
			return locate.Target{}, err
		}
		target = locate.AbsoluteTarget(point)
	default:
		return locate.Target{}, fmt.Errorf("one of --template or --point is required")
	}

	zoneSpec, _ := cmd.Flags().GetString("zone")
	if zoneSpec != "" {
		zone, err := parseZone(display, zoneSpec)
		if err != nil {
			return locate.Target{}, err
		}
		target = target.WithCheckZone(zone)
	}
	return target, nil
}

// loadTemplate reads a template image and applies the strategy flags.
func loadTemplate(cmd *cobra.Command, path string) (*locate.Template, error) {
	strategy, _ := cmd.Flags().GetString("strategy")
	kind, err := locate.ParseKind(strategy)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	tpl, err := locate.NewTemplate(name, path)
	if err != nil {
		return nil, fmt.Errorf("loading template %s: %w", path, err)
	}
	tpl.Kind = kind
	if scale, _ := cmd.Flags().GetFloat64("template-scale"); scale > 0 {
		tpl.Scale = scale
	}
	return tpl, nil
}

func parsePoint(d geometry.Display, spec string) (geometry.Point, error) {
	parts := strings.Split(spec, ",")
	if len(parts) != 2 {
		return geometry.Point{}, fmt.Errorf("point %q: want 'x,y'", spec)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return geometry.Point{}, fmt.Errorf("point %q: %w", spec, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return geometry.Point{}, fmt.Errorf("point %q: %w", spec, err)
	}
	return geometry.NewPoint(d, x, y)
}

func parseZone(d geometry.Display, spec string) (geometry.Rect, error) {
	parts := strings.Split(spec, ",")
	if len(parts) != 4 {
		return geometry.Rect{}, fmt.Errorf("zone %q: want 'x,y,w,h'", spec)
	}
	vals := make([]float64, len(parts))
	for i, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return geometry.Rect{}, fmt.Errorf("zone %q: %w", spec, err)
		}
		vals[i] = f
	}
	return geometry.NewRect(d, vals[0], vals[1], vals[2], vals[3]), nil
}

// fireAndReport fires the verb with any budget overrides from the flags
// and prints the outcome for the operator.
func fireAndReport(cmd *cobra.Command, v verb.Verb) error {
	timeout, _ := cmd.Flags().GetDuration("timeout")
	interval, _ := cmd.Flags().GetDuration("interval")

	if err := v.Fire(cmd.Context(), verb.FireOptions{Timeout: timeout, Interval: interval}); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: verified\n", v.Describe())
	return nil
}
