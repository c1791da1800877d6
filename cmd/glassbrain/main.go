package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/glassbrain/internal/audio"
	"github.com/san-kum/glassbrain/internal/brain"
	"github.com/san-kum/glassbrain/internal/config"
	"github.com/san-kum/glassbrain/internal/export"
	"github.com/san-kum/glassbrain/internal/feed"
	"github.com/san-kum/glassbrain/internal/gui"
	"github.com/san-kum/glassbrain/internal/layout"
	"github.com/san-kum/glassbrain/internal/record"
	"github.com/san-kum/glassbrain/internal/scene"
	"github.com/san-kum/glassbrain/internal/tui"
	"github.com/spf13/cobra"
)

const defaultConfigPath = "glassbrain.yaml"

var (
	configFile string
	dataDir    string
	serverURL  string
	seed       int64
	nodes      int
	concepts   int
	// Line layer budgets
	pairTarget   int
	pairAttempts int
	injectLines  int
	audioLines   int
	webLines     int
	// Window
	fps    int
	width  int
	height int
	bloom  bool
	// Microphone capture
	mic     bool
	micGain float64
	// Synthetic feed
	synthRate    float64
	scenarioName string
	// Replay
	runID string
	speed float64
	loop  bool
	// Recording
	recordFor float64
	// Layout export
	svgPath  string
	jsonPath string
	svgView  string
)

// main registers the command tree and executes it; the bare command
// opens the GUI on the synthetic feed.
func main() {
	rootCmd := &cobra.Command{
		Use:   "glassbrain",
		Short: "real-time glass brain telemetry visualizer",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := applyConfigFile(cmd); err != nil {
				return err
			}
			return launchGUI("synth")
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "run storage directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")

	guiCmd := &cobra.Command{
		Use:   "gui [source]",
		Short: "render the brain in a window",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runGUI,
	}
	guiCmd.Flags().StringVar(&serverURL, "server", config.DefaultServerURL, "backend websocket url")
	guiCmd.Flags().Int64Var(&seed, "seed", config.DefaultSeed, "anatomy seed")
	guiCmd.Flags().IntVar(&nodes, "nodes", config.DefaultNodes, "reservoir size")
	guiCmd.Flags().IntVar(&concepts, "concepts", config.DefaultConcepts, "concept cloud size")
	guiCmd.Flags().IntVar(&pairTarget, "pair-target", config.DefaultPairTarget, "candidate edge target")
	guiCmd.Flags().IntVar(&pairAttempts, "pair-attempts", config.DefaultPairAttempts, "candidate edge attempt budget")
	guiCmd.Flags().IntVar(&injectLines, "inject-lines", config.DefaultInjectLines, "injection line budget")
	guiCmd.Flags().IntVar(&audioLines, "audio-lines", config.DefaultAudioLines, "auditory line budget")
	guiCmd.Flags().IntVar(&webLines, "web-lines", config.DefaultWebLines, "candidate web line budget")
	guiCmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "target frame rate")
	guiCmd.Flags().IntVar(&width, "width", config.DefaultWidth, "window width")
	guiCmd.Flags().IntVar(&height, "height", config.DefaultHeight, "window height")
	guiCmd.Flags().BoolVar(&bloom, "bloom", true, "bloom post-processing")
	guiCmd.Flags().BoolVar(&mic, "mic", false, "feed microphone bands into the synth source")
	guiCmd.Flags().Float64Var(&micGain, "gain", 1.0, "microphone gain")
	guiCmd.Flags().Float64Var(&synthRate, "rate", config.DefaultSynthRate, "synth packet rate (hz)")
	guiCmd.Flags().StringVar(&scenarioName, "scenario", "", "scenario preset or yaml file (synth source)")
	guiCmd.Flags().StringVar(&runID, "run", "", "run id (replay source, empty for latest)")
	guiCmd.Flags().Float64Var(&speed, "speed", 1.0, "replay speed multiplier")
	guiCmd.Flags().BoolVar(&loop, "loop", false, "loop the replay")

	liveCmd := &cobra.Command{
		Use:   "live [source]",
		Short: "render the brain in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().StringVar(&serverURL, "server", config.DefaultServerURL, "backend websocket url")
	liveCmd.Flags().Int64Var(&seed, "seed", config.DefaultSeed, "anatomy seed")
	liveCmd.Flags().IntVar(&nodes, "nodes", config.DefaultNodes, "reservoir size")
	liveCmd.Flags().IntVar(&concepts, "concepts", config.DefaultConcepts, "concept cloud size")
	liveCmd.Flags().IntVar(&pairTarget, "pair-target", config.DefaultPairTarget, "candidate edge target")
	liveCmd.Flags().IntVar(&pairAttempts, "pair-attempts", config.DefaultPairAttempts, "candidate edge attempt budget")
	liveCmd.Flags().IntVar(&injectLines, "inject-lines", config.DefaultInjectLines, "injection line budget")
	liveCmd.Flags().IntVar(&audioLines, "audio-lines", config.DefaultAudioLines, "auditory line budget")
	liveCmd.Flags().IntVar(&webLines, "web-lines", config.DefaultWebLines, "candidate web line budget")
	liveCmd.Flags().BoolVar(&mic, "mic", false, "feed microphone bands into the synth source")
	liveCmd.Flags().Float64Var(&micGain, "gain", 1.0, "microphone gain")
	liveCmd.Flags().Float64Var(&synthRate, "rate", config.DefaultSynthRate, "synth packet rate (hz)")
	liveCmd.Flags().StringVar(&scenarioName, "scenario", "", "scenario preset or yaml file (synth source)")
	liveCmd.Flags().StringVar(&runID, "run", "", "run id (replay source, empty for latest)")
	liveCmd.Flags().Float64Var(&speed, "speed", 1.0, "replay speed multiplier")
	liveCmd.Flags().BoolVar(&loop, "loop", false, "loop the replay")

	layoutCmd := &cobra.Command{
		Use:   "layout",
		Short: "generate the anatomy and report on it",
		RunE:  runLayout,
	}
	layoutCmd.Flags().Int64Var(&seed, "seed", config.DefaultSeed, "anatomy seed")
	layoutCmd.Flags().IntVar(&nodes, "nodes", config.DefaultNodes, "reservoir size")
	layoutCmd.Flags().IntVar(&concepts, "concepts", config.DefaultConcepts, "concept cloud size")
	layoutCmd.Flags().IntVar(&pairTarget, "pair-target", config.DefaultPairTarget, "candidate edge target")
	layoutCmd.Flags().IntVar(&pairAttempts, "pair-attempts", config.DefaultPairAttempts, "candidate edge attempt budget")
	layoutCmd.Flags().StringVar(&svgPath, "svg", "", "write an svg projection")
	layoutCmd.Flags().StringVar(&jsonPath, "json", "", "write the point cloud as json")
	layoutCmd.Flags().StringVar(&svgView, "view", export.ViewTop, "svg projection: top, side or front")

	sampleCmd := &cobra.Command{
		Use:   "sample",
		Short: "report candidate edge sampler statistics",
		RunE:  runSample,
	}
	sampleCmd.Flags().Int64Var(&seed, "seed", config.DefaultSeed, "anatomy seed")
	sampleCmd.Flags().IntVar(&nodes, "nodes", config.DefaultNodes, "reservoir size")
	sampleCmd.Flags().IntVar(&pairTarget, "pair-target", config.DefaultPairTarget, "candidate edge target")
	sampleCmd.Flags().IntVar(&pairAttempts, "pair-attempts", config.DefaultPairAttempts, "candidate edge attempt budget")

	recordCmd := &cobra.Command{
		Use:   "record [source]",
		Short: "record a feed to disk",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runRecord,
	}
	recordCmd.Flags().StringVar(&serverURL, "server", config.DefaultServerURL, "backend websocket url")
	recordCmd.Flags().Int64Var(&seed, "seed", config.DefaultSeed, "anatomy seed")
	recordCmd.Flags().IntVar(&nodes, "nodes", config.DefaultNodes, "reservoir size")
	recordCmd.Flags().Float64Var(&synthRate, "rate", config.DefaultSynthRate, "synth packet rate (hz)")
	recordCmd.Flags().StringVar(&scenarioName, "scenario", "", "scenario preset or yaml file (synth source)")
	recordCmd.Flags().BoolVar(&mic, "mic", false, "feed microphone bands into the synth source")
	recordCmd.Flags().Float64Var(&micGain, "gain", 1.0, "microphone gain")
	recordCmd.Flags().Float64Var(&recordFor, "time", 30.0, "seconds to record, 0 for until interrupt")

	replayCmd := &cobra.Command{
		Use:   "replay [run_id]",
		Short: "replay a recorded run in the window",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runReplay,
	}
	replayCmd.Flags().Float64Var(&speed, "speed", 1.0, "replay speed multiplier")
	replayCmd.Flags().BoolVar(&loop, "loop", false, "loop the replay")
	replayCmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "target frame rate")
	replayCmd.Flags().IntVar(&width, "width", config.DefaultWidth, "window width")
	replayCmd.Flags().IntVar(&height, "height", config.DefaultHeight, "window height")
	replayCmd.Flags().BoolVar(&bloom, "bloom", true, "bloom post-processing")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		RunE:  listRuns,
	}

	scenarioCmd := &cobra.Command{
		Use:   "scenario [name or file]",
		Short: "inspect scenario scripts",
		Args:  cobra.MaximumNArgs(1),
		RunE:  showScenario,
	}

	configInitCmd := &cobra.Command{
		Use:   "config-init",
		Short: "write a default config file",
		RunE:  initConfigFile,
	}

	rootCmd.AddCommand(guiCmd, liveCmd, layoutCmd, sampleCmd, recordCmd, replayCmd, listCmd, scenarioCmd, configInitCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runGUI(cmd *cobra.Command, args []string) error {
	if err := applyConfigFile(cmd); err != nil {
		return err
	}
	source := "synth"
	if len(args) > 0 {
		source = args[0]
	}
	return launchGUI(source)
}

func runLive(cmd *cobra.Command, args []string) error {
	if err := applyConfigFile(cmd); err != nil {
		return err
	}
	source := "synth"
	if len(args) > 0 {
		source = args[0]
	}
	return launchTUI(source)
}

func runReplay(cmd *cobra.Command, args []string) error {
	if err := applyConfigFile(cmd); err != nil {
		return err
	}
	if len(args) > 0 {
		runID = args[0]
	}
	return launchGUI("replay")
}

// launchGUI runs the named source against a fresh holder and blocks in
// the render loop until the window closes.
func launchGUI(source string) error {
	src, ws, cleanup, err := buildSource(source)
	if err != nil {
		return err
	}
	defer cleanup()

	holder := feed.NewHolder()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- src.Run(ctx, holder) }()

	var sender gui.Sender
	if ws != nil {
		sender = ws
	}
	gui.Run(guiOptions(), holder, sender, sceneParams())
	cancel()

	if err := <-done; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func launchTUI(source string) error {
	src, ws, cleanup, err := buildSource(source)
	if err != nil {
		return err
	}
	defer cleanup()

	holder := feed.NewHolder()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- src.Run(ctx, holder) }()

	var sender tui.Sender
	if ws != nil {
		sender = ws
	}
	uiErr := tui.Run(holder, sender, sceneParams())
	cancel()

	if err := <-done; err != nil && !errors.Is(err, context.Canceled) && uiErr == nil {
		uiErr = err
	}
	return uiErr
}

func runRecord(cmd *cobra.Command, args []string) error {
	if err := applyConfigFile(cmd); err != nil {
		return err
	}
	source := "synth"
	if len(args) > 0 {
		source = args[0]
	}
	if source == "replay" {
		return fmt.Errorf("refusing to record a replay")
	}

	src, _, cleanup, err := buildSource(source)
	if err != nil {
		return err
	}
	defer cleanup()

	store := record.New(dataDir)
	if err := store.Init(); err != nil {
		return err
	}
	w, err := store.Begin(source, seed)
	if err != nil {
		return err
	}

	ctx := context.Background()
	var cancel context.CancelFunc
	if recordFor > 0 {
		ctx, cancel = context.WithTimeout(ctx, time.Duration(recordFor*float64(time.Second)))
	} else {
		ctx, cancel = context.WithCancel(ctx)
	}
	defer cancel()
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	holder := feed.NewHolder()
	start := time.Now()
	var tapErr error
	holder.SetTap(func(snap *brain.Snapshot) {
		if err := w.Append(time.Since(start).Seconds(), snap); err != nil && tapErr == nil {
			tapErr = err
			cancel()
		}
	})

	fmt.Printf("recording %s -> %s\n", source, w.ID())
	runErr := src.Run(ctx, holder)
	if closeErr := w.Close(); closeErr != nil && tapErr == nil {
		tapErr = closeErr
	}
	if tapErr != nil {
		return tapErr
	}
	if runErr != nil && !errors.Is(runErr, context.Canceled) && !errors.Is(runErr, context.DeadlineExceeded) {
		return runErr
	}
	fmt.Printf("recorded %d packets in %.1fs\n", holder.Count(), time.Since(start).Seconds())
	return nil
}

func runLayout(cmd *cobra.Command, args []string) error {
	if err := applyConfigFile(cmd); err != nil {
		return err
	}

	positions := layout.Generate(seed, nodes)
	regions := layout.Regions(positions)
	cloud := layout.Concepts(seed, concepts)
	n := len(positions) / 3

	var counts [4]int
	for _, r := range regions {
		counts[r]++
	}
	var sumR, maxR float64
	for i := 0; i+2 < len(positions); i += 3 {
		x := float64(positions[i])
		y := float64(positions[i+1])
		z := float64(positions[i+2])
		r := math.Sqrt(x*x + y*y + z*z)
		sumR += r
		if r > maxR {
			maxR = r
		}
	}

	fmt.Printf("seed %d: %d nodes, %d concept points\n", seed, n, len(cloud)/3)
	fmt.Printf("radius: mean %.1f, max %.1f (nominal %.0f)\n", sumR/float64(n), maxR, brain.BrainRadius)
	for r, c := range counts {
		fmt.Printf("  %-12s %5d (%.1f%%)\n", brain.Region(r).String(), c, 100*float64(c)/float64(n))
	}

	if jsonPath != "" {
		if err := export.WriteLayoutJSON(jsonPath, export.BuildLayoutData(seed, positions, regions, cloud)); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", jsonPath)
	}
	if svgPath != "" {
		pairs := scene.SamplePairs(positions, n, pairTarget, pairAttempts, seed)
		svg := export.LayoutSVG(positions, regions, pairs, svgView, 900, 900)
		if err := os.WriteFile(svgPath, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("wrote %s (%d candidate edges)\n", svgPath, len(pairs))
	}
	return nil
}

func runSample(cmd *cobra.Command, args []string) error {
	if err := applyConfigFile(cmd); err != nil {
		return err
	}

	positions := layout.Generate(seed, nodes)
	regions := layout.Regions(positions)
	pairs := scene.SamplePairs(positions, nodes, pairTarget, pairAttempts, seed)
	if len(pairs) == 0 {
		return fmt.Errorf("sampler produced no pairs")
	}

	var sum, max float64
	long, cross := 0, 0
	lengths := make([]float64, 0, len(pairs))
	for _, p := range pairs {
		d := pairDist(positions, p.I, p.J)
		lengths = append(lengths, d)
		sum += d
		if d > max {
			max = d
		}
		if d > brain.BrainRadius {
			long++
		}
		if regions[p.I] != regions[p.J] {
			cross++
		}
	}

	total := float64(len(pairs))
	fmt.Printf("%d pairs (target %d, budget %d attempts)\n", len(pairs), pairTarget, pairAttempts)
	fmt.Printf("length: mean %.1f, max %.1f\n", sum/total, max)
	fmt.Printf("long range (> %.0f): %d (%.1f%%)\n", brain.BrainRadius, long, 100*float64(long)/total)
	fmt.Printf("cross region: %d (%.1f%%)\n", cross, 100*float64(cross)/total)

	bins := make([]float64, 24)
	for _, d := range lengths {
		idx := int(d / max * float64(len(bins)))
		if idx >= len(bins) {
			idx = len(bins) - 1
		}
		bins[idx]++
	}
	fmt.Println(asciigraph.Plot(bins,
		asciigraph.Height(8),
		asciigraph.Width(48),
		asciigraph.Caption("pair length distribution")))
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := record.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSOURCE\tSTARTED\tPACKETS\tDURATION\tSEED")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.1fs\t%d\n",
			run.ID,
			run.Source,
			run.Started.Format("2006-01-02 15:04:05"),
			run.Packets,
			run.Duration,
			run.Seed,
		)
	}
	return w.Flush()
}

func showScenario(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tSTEPS\tTOTAL\tDESCRIPTION")
		for _, name := range feed.ListScenarioPresets() {
			sc := feed.GetScenarioPreset(name)
			fmt.Fprintf(w, "%s\t%d\t%.0fs\t%s\n", name, len(sc.Steps), sc.Total(), sc.Description)
		}
		return w.Flush()
	}

	sc, err := resolveScenario(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("%s: %s\n", sc.Name, sc.Description)
	if sc.Loop {
		fmt.Println("loops until stopped")
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tDUR\tDOP\tSER\tCOR\tADE\tOXY\tGAIN\tAUDIO\tTRAUMA")
	for _, st := range sc.Steps {
		fmt.Fprintf(w, "%s\t%.0fs\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t%s\n",
			st.Name, st.Duration,
			st.Dopamine, st.Serotonin, st.Cortisol, st.Adenosine, st.Oxytocin,
			st.ActivationGain, st.AudioLevel, st.Trauma,
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("total %.0fs\n", sc.Total())
	return nil
}

func initConfigFile(cmd *cobra.Command, args []string) error {
	path := configFile
	if path == "" {
		path = defaultConfigPath
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	if err := config.Save(path, config.DefaultConfig()); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

// applyConfigFile layers the config file under the flags: any flag the
// user did not set on the command line takes its value from the file.
// Without --config the default path is used when it exists.
func applyConfigFile(cmd *cobra.Command) error {
	path := configFile
	if path == "" {
		if _, err := os.Stat(defaultConfigPath); err != nil {
			return nil
		}
		path = defaultConfigPath
	}
	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	f := cmd.Flags()
	if !f.Changed("server") {
		serverURL = cfg.Server.URL
	}
	if !f.Changed("seed") {
		seed = cfg.Brain.Seed
	}
	if !f.Changed("nodes") {
		nodes = cfg.Brain.Nodes
	}
	if !f.Changed("concepts") {
		concepts = cfg.Brain.Concepts
	}
	if !f.Changed("pair-target") {
		pairTarget = cfg.Lines.PairTarget
	}
	if !f.Changed("pair-attempts") {
		pairAttempts = cfg.Lines.PairAttempts
	}
	if !f.Changed("inject-lines") {
		injectLines = cfg.Lines.Inject
	}
	if !f.Changed("audio-lines") {
		audioLines = cfg.Lines.Audio
	}
	if !f.Changed("web-lines") {
		webLines = cfg.Lines.Web
	}
	if !f.Changed("fps") {
		fps = cfg.Render.FPS
	}
	if !f.Changed("width") {
		width = cfg.Render.Width
	}
	if !f.Changed("height") {
		height = cfg.Render.Height
	}
	if !f.Changed("bloom") {
		bloom = cfg.Render.Bloom
	}
	if !f.Changed("mic") {
		mic = cfg.Audio.Enabled
	}
	if !f.Changed("gain") {
		micGain = cfg.Audio.Gain
	}
	if !f.Changed("rate") {
		synthRate = cfg.Synth.Rate
	}
	if !cmd.Root().PersistentFlags().Changed("data") && cfg.DataDir != "" {
		dataDir = cfg.DataDir
	}
	return nil
}

// buildSource constructs the named feed source from the flag set. The
// second return is non-nil when the source can accept stimuli.
func buildSource(name string) (feed.Source, *feed.WS, func(), error) {
	opts := feed.Options{
		ServerURL: serverURL,
		Seed:      seed,
		Nodes:     nodes,
		Rate:      synthRate,
		DataDir:   dataDir,
		RunID:     runID,
		Speed:     speed,
		Loop:      loop,
	}

	if scenarioName != "" {
		sc, err := resolveScenario(scenarioName)
		if err != nil {
			return nil, nil, nil, err
		}
		opts.Scenario = sc
	}

	cleanup := func() {}
	if mic {
		capture := audio.NewCapture()
		if err := capture.Start(); err != nil {
			return nil, nil, nil, err
		}
		capture.SetGain(micGain)
		opts.Embedding = capture.Bands
		cleanup = capture.Stop
	}

	src, err := feed.NewRegistry().Get(name, opts)
	if err != nil {
		cleanup()
		return nil, nil, nil, err
	}
	ws, _ := src.(*feed.WS)
	return src, ws, cleanup, nil
}

// resolveScenario accepts either a preset name or a path to a yaml file.
func resolveScenario(name string) (*feed.Scenario, error) {
	if sc := feed.GetScenarioPreset(name); sc != nil {
		return sc, nil
	}
	sc, err := feed.LoadScenario(name)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w (presets: %v)", name, err, feed.ListScenarioPresets())
	}
	return sc, nil
}

func sceneParams() scene.Params {
	return scene.Params{
		Seed:         seed,
		MaxNodes:     nodes,
		ConceptCount: concepts,
		PairTarget:   pairTarget,
		PairAttempts: pairAttempts,
		InjectLines:  injectLines,
		AudioLines:   audioLines,
		WebLines:     webLines,
	}
}

func guiOptions() gui.Options {
	return gui.Options{
		Width:  width,
		Height: height,
		FPS:    fps,
		Bloom:  bloom,
		Title:  "glassbrain",
	}
}

func pairDist(positions []float32, i, j int32) float64 {
	dx := float64(positions[i*3] - positions[j*3])
	dy := float64(positions[i*3+1] - positions[j*3+1])
	dz := float64(positions[i*3+2] - positions[j*3+2])
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}
