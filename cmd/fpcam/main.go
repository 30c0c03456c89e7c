package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"text/tabwriter"

	"github.com/Carmen-Shannon/oxy-fpcam/engine"
	"github.com/Carmen-Shannon/oxy-fpcam/engine/camera"
	"github.com/Carmen-Shannon/oxy-fpcam/engine/config"
	"github.com/Carmen-Shannon/oxy-fpcam/engine/game_object"
	"github.com/Carmen-Shannon/oxy-fpcam/engine/playback"
	"github.com/Carmen-Shannon/oxy-fpcam/engine/profiler"
	"github.com/Carmen-Shannon/oxy-fpcam/engine/window"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
)

var (
	configFile string
	preset     string
	verbose    bool
	scriptFile string
	seeds      []uint
	workers    int
	plot       bool
	force      bool
	startY     float32
)

// GLFW must run on the main OS thread.
func init() {
	runtime.LockOSThread()
}

func main() {
	rootCmd := &cobra.Command{
		Use:          "fpcam",
		Short:        "first-person camera controller with handheld sway",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "controller preset (see presets)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "open a window and drive the camera with mouse and keyboard",
		RunE:  runWindow,
	}
	runCmd.Flags().Float32Var(&startY, "start-y", 20, "starting height")

	simulateCmd := &cobra.Command{
		Use:   "simulate",
		Short: "replay a scripted input sequence headlessly",
		RunE:  runSimulate,
	}
	simulateCmd.Flags().StringVar(&scriptFile, "script", "", "script file path (yaml); defaults to walking forward from y=50")
	simulateCmd.Flags().UintSliceVar(&seeds, "seeds", []uint{config.DefaultNoiseSeed}, "noise seeds, one replay each")
	simulateCmd.Flags().IntVar(&workers, "workers", runtime.NumCPU(), "parallel replays")
	simulateCmd.Flags().BoolVar(&plot, "plot", false, "plot height and forward travel of the first seed")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage config files",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the default config",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := refuseOverwrite(args[0]); err != nil {
				return err
			}
			if err := cfg.Save(args[0]); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", args[0])
			return nil
		},
	}
	configInitCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	scriptCmd := &cobra.Command{
		Use:   "script",
		Short: "manage replay scripts",
	}
	scriptInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the default walk-forward script",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := refuseOverwrite(args[0]); err != nil {
				return err
			}
			if err := config.DefaultScript().Save(args[0]); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", args[0])
			return nil
		},
	}
	scriptInitCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list controller presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, p := range config.ListPresets() {
				fmt.Printf("  - %s\n", p)
			}
		},
	}

	configCmd.AddCommand(configInitCmd)
	scriptCmd.AddCommand(scriptInitCmd)
	rootCmd.AddCommand(runCmd, simulateCmd, configCmd, scriptCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads --config (or the defaults) and applies --preset.
func loadConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if preset != "" {
		if err := cfg.ApplyPreset(preset); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func refuseOverwrite(path string) error {
	if force {
		return nil
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists (use --force)", path)
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func runWindow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	opts, err := cfg.ControllerOptions()
	if err != nil {
		return err
	}
	logger := slog.Default()

	win := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithWidth(cfg.Window.Width),
		window.WithHeight(cfg.Window.Height),
		window.WithClickToLock(cfg.Window.ClickToLock),
		window.WithEscapeUnlocks(cfg.Window.EscapeUnlocks),
		window.WithLogger(logger),
	)

	player := game_object.NewGameObject(
		game_object.WithName("player"),
		game_object.WithPosition(0, startY, 0),
	)
	controller, err := camera.NewFirstPersonController(player, win, append(opts, camera.WithLogger(logger))...)
	if err != nil {
		_ = win.Close()
		return err
	}
	defer controller.Close()

	controller.OnLock(func() { logger.Info("pointer captured; Escape to release") })
	controller.OnUnlock(func() { logger.Info("pointer released; click to capture, Escape to quit") })

	view := camera.NewCamera(
		camera.WithSubject(player),
		camera.WithFov(mgl32.DegToRad(cfg.Window.FovDegrees)),
		camera.WithAspect(float32(win.Width())/float32(win.Height())),
	)

	e := engine.NewEngine(
		engine.WithWindow(win),
		engine.WithLogger(logger),
		engine.WithTickRate(cfg.Engine.TickRate),
		engine.WithFrameLimit(cfg.Engine.FrameLimit),
		engine.WithProfiling(cfg.Engine.Profiling),
		engine.WithProfiler(profiler.NewProfiler(profiler.WithLogger(logger))),
		engine.WithUpdater(controller),
	)

	e.SetResizeCallback(view.SetViewport)
	e.SetFrameCallback(func(float32) {
		view.Update()
	})

	var sinceReport float32
	e.SetTickCallback(func(dt float32) {
		sinceReport += dt
		if sinceReport < 1 {
			return
		}
		sinceReport = 0
		var fwd mgl32.Vec3
		controller.ForwardDirection(&fwd)
		logger.Debug("camera",
			"position", player.Position(),
			"forward", fwd,
			"velocity", controller.Velocity(),
			"locked", controller.IsLocked(),
			"view", view.ViewMatrix(),
		)
	})

	logger.Info("click the window to capture the pointer; WASD/arrows move")
	e.Run()
	return nil
}

func runSimulate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	opts, err := cfg.ControllerOptions()
	if err != nil {
		return err
	}

	script := config.DefaultScript()
	if scriptFile != "" {
		if script, err = config.LoadScript(scriptFile); err != nil {
			return err
		}
	}
	if len(seeds) == 0 {
		return errors.New("at least one seed is required")
	}

	batch := make([]uint64, len(seeds))
	for i, s := range seeds {
		batch[i] = uint64(s)
	}
	results, err := playback.ReplayBatch(script, batch, workers, append(opts, camera.WithLogger(slog.Default()))...)
	if err != nil {
		return err
	}

	start := mgl32.Vec3{script.Start[0], script.Start[1], script.Start[2]}
	printSummaries(os.Stdout, script, batch, start, results)

	if plot && len(results) > 0 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(playback.Heights(results[0]),
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("height (seed %d)", batch[0])),
		))
		fmt.Println()
		fmt.Println(asciigraph.Plot(playback.ForwardTravel(start, results[0]),
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("forward travel (seed %d)", batch[0])),
		))
	}
	return nil
}

func printSummaries(out io.Writer, script *config.Script, batch []uint64, start mgl32.Vec3, results [][]playback.Sample) {
	fmt.Fprintf(out, "script: %s  frames: %d  dt: %.4fs\n\n", script.Name, script.Frames, script.Dt)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\tDX\tDY\tDZ\tRUN\tMIN Y\tFINAL VEL")
	for i, samples := range results {
		s := playback.Summarize(start, samples)
		fmt.Fprintf(w, "%d\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\t(%.2f, %.2f, %.2f)\n",
			batch[i],
			s.Displacement.X(), s.Displacement.Y(), s.Displacement.Z(),
			s.HorizontalRun,
			s.MinHeight,
			s.FinalVelocity.X(), s.FinalVelocity.Y(), s.FinalVelocity.Z(),
		)
	}
	w.Flush()
}
