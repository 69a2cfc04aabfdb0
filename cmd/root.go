package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"jitcheck/internal/analyzer"
	"jitcheck/internal/config"
	"jitcheck/internal/jitlog"
	"jitcheck/internal/watcher"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	formatFlag         string
	watchFlag          bool
	configFlag         string
	generateConfigFlag bool
	topFlag            int
	verboseFlag        bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "jitcheck [compilation log]",
	Short: "A HotSpot compilation log analyzer that surfaces JIT tuning opportunities",
	Long: `jitcheck reads the output of -XX:+LogCompilation, walks each hot method's
last compilation, and reports ranked suggestions such as inlining failures
at hot call sites and unpredictable branches.

Examples:
  jitcheck hotspot.log                     # Analyze a compilation log
  jitcheck --format=json hotspot.log       # Output results in JSON format
  jitcheck --watch hotspot.log             # Re-analyze while the JVM appends
  jitcheck --top=10 hotspot.log            # Only the 10 highest scores
  jitcheck --generate-config               # Generate sample config file`,
	Args: cobra.MaximumNArgs(1),
	Run:  runAnalysis,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVarP(&formatFlag, "format", "f", "", "Output format (console, json)")
	rootCmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "Re-analyze when the log file changes")
	rootCmd.Flags().StringVarP(&configFlag, "config", "c", "", "Path to configuration file")
	rootCmd.Flags().BoolVar(&generateConfigFlag, "generate-config", false, "Generate sample configuration file")
	rootCmd.Flags().IntVarP(&topFlag, "top", "t", 0, "Limit report to the N highest scoring suggestions")
	rootCmd.Flags().BoolVarP(&verboseFlag, "verbose", "v", false, "Verbose output")
}

func runAnalysis(cmd *cobra.Command, args []string) {
	if generateConfigFlag {
		generateConfig()
		return
	}

	cfg, err := config.LoadConfig(configFlag)
	if err != nil {
		color.Red("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	if formatFlag != "" {
		cfg.Output.Format = formatFlag
	}
	if topFlag > 0 {
		cfg.Output.Top = topFlag
	}
	if verboseFlag {
		cfg.Output.Verbose = true
	}
	if err := cfg.Validate(); err != nil {
		color.Red("Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	setupLogging(cfg)

	if len(args) == 0 {
		color.Yellow("⚠️  No compilation log given. Run your JVM with -XX:+UnlockDiagnosticVMOptions -XX:+LogCompilation\n")
		os.Exit(1)
	}
	logPath := args[0]

	analyzerEngine := analyzer.NewAnalyzerWithConfig(cfg)
	reportGen := analyzer.NewReportGeneratorWithConfig(cfg)

	if cfg.Output.Verbose {
		color.Cyan("🔍 Analyzing %s with %d detectors...\n\n", filepath.Base(logPath), analyzerEngine.GetDetectorCount())
		if configFlag != "" {
			color.Cyan("📋 Using configuration: %s\n\n", configFlag)
		}
	}

	if err := analyzeAndReport(cfg, analyzerEngine, reportGen, logPath); err != nil {
		color.Red("Analysis failed: %v\n", err)
		os.Exit(1)
	}

	if watchFlag {
		watchLog(cfg, analyzerEngine, reportGen, logPath)
	}
}

func analyzeAndReport(cfg *config.Config, engine *analyzer.Analyzer, reportGen *analyzer.ReportGenerator, logPath string) error {
	compilationLog, err := jitlog.ParseFile(logPath)
	if err != nil {
		// A malformed tail is normal for a log the JVM is still writing;
		// analyze the salvageable prefix when there is one.
		if compilationLog == nil || len(compilationLog.Tasks) == 0 {
			return err
		}
		slog.Warn("log parsed partially", "path", logPath, "tasks", len(compilationLog.Tasks), "err", err)
	}

	result := engine.AnalyzeLog(compilationLog)
	report := reportGen.Generate(result)

	if cfg.Output.OutputFile != "" {
		if err := writeReportToFile(report, cfg.Output.OutputFile); err != nil {
			color.Red("Failed to write report to file: %v\n", err)
		} else {
			color.Green("📄 Report saved to: %s\n", cfg.Output.OutputFile)
		}
	} else {
		fmt.Print(report)
	}

	return nil
}

func watchLog(cfg *config.Config, engine *analyzer.Analyzer, reportGen *analyzer.ReportGenerator, logPath string) {
	debounce := time.Duration(cfg.Watch.DebounceMillis) * time.Millisecond
	logWatcher, err := watcher.NewLogWatcher(logPath, debounce)
	if err != nil {
		color.Red("Failed to create watcher: %v\n", err)
		os.Exit(1)
	}
	defer logWatcher.Close()

	err = logWatcher.Watch(func() error {
		color.Cyan("\n🔄 Log changed, re-analyzing...\n\n")
		return analyzeAndReport(cfg, engine, reportGen, logPath)
	})
	if err != nil {
		color.Red("Failed to start watcher: %v\n", err)
		os.Exit(1)
	}

	color.Cyan("👀 Watching %s (Ctrl+C to stop)\n", logPath)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
}

func setupLogging(cfg *config.Config) {
	level := slog.LevelWarn
	if cfg.Output.Verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

func writeReportToFile(report, filePath string) error {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	return os.WriteFile(filePath, []byte(report), 0644)
}

func generateConfig() {
	configPath := ".jitcheck.yml"
	if err := config.GenerateConfig(configPath); err != nil {
		color.Red("Failed to generate config file: %v\n", err)
		os.Exit(1)
	}
	color.Green("✅ Generated sample configuration file: %s\n", configPath)
	color.Cyan("📝 Edit this file to customize jitcheck behavior\n")
	color.Cyan("🚀 Run 'jitcheck --config=%s <log>' to use it\n", configPath)
}
