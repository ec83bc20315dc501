package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/linuxmatters/voicehealth/internal/cli"
	"github.com/linuxmatters/voicehealth/internal/config"
	"github.com/linuxmatters/voicehealth/internal/logging"
	"github.com/linuxmatters/voicehealth/internal/ui"
)

var (
	version = "0.0.1"
)

// CLI defines the command-line interface
type CLI struct {
	Version bool     `short:"v" help:"Show version information"`
	Config  string   `short:"c" type:"path" help:"Path to TOML config file (optional)"`
	Record  bool     `short:"r" group:"Input" help:"Record one live take, analyse it and exit"`
	Keep    string   `short:"k" type:"path" placeholder:"DIR" group:"Input" help:"Archive live takes as FLAC in DIR"`
	Details bool     `short:"d" group:"Reports" help:"Append analysis details to each report"`
	Output  string   `short:"o" type:"path" placeholder:"DIR" group:"Reports" help:"Save a report for every analysis to DIR"`
	Logs    bool     `group:"Diagnostics" help:"Write a diagnostic log"`
	LogPath string   `name:"log-path" type:"path" placeholder:"DIR" group:"Diagnostics" help:"Diagnostic log directory (implies --logs)"`
	Files   []string `arg:"" name:"files" help:"Audio files to analyse (.wav, .mp3, .flac)" type:"existingfile" optional:""`
}

func main() {
	os.Exit(run())
}

func run() int {
	cliArgs := &CLI{}
	ctx := kong.Parse(cliArgs,
		kong.Name("voicehealth"),
		kong.Description("Vocal confidence analyser"),
		kong.UsageOnError(),
		kong.Vars{
			"version": version,
		},
		kong.Help(cli.StyledHelpPrinter(kong.HelpOptions{Compact: true})),
	)

	if cliArgs.Version {
		cli.PrintVersion(os.Stdout, version)
		return 0
	}

	cfg, err := config.Load(cliArgs.Config)
	if err != nil {
		cli.PrintError(fmt.Sprintf("loading config: %v", err))
		return 1
	}
	applyFlags(cfg, cliArgs)

	if cfg.Log.Enabled {
		dir, err := logging.ResolveLogDir(cfg.Log.Path)
		if err == nil {
			err = logging.InitDiag(dir)
		}
		if err != nil {
			cli.PrintWarning(fmt.Sprintf("diagnostic log disabled: %v", err))
		} else {
			defer logging.CloseDiag()
			logging.Info("voicehealth " + version + " started")
		}
	}

	sess := newSession(cfg)

	switch {
	case len(cliArgs.Files) > 0:
		return analyseFiles(os.Stdout, sess, cliArgs.Files)

	case cliArgs.Record:
		sess.promptDevice = true
		sess.warn = cli.PrintWarning
		return recordOnce(os.Stdout, sess)

	case !term.IsTerminal(int(os.Stdin.Fd())):
		cli.PrintError("No input files specified")
		ctx.PrintUsage(false)
		return 1
	}

	p := tea.NewProgram(ui.NewModel(sess, cfg.CaptureDuration()))
	if _, err := p.Run(); err != nil {
		cli.PrintError(fmt.Sprintf("UI error: %v", err))
		return 1
	}
	return 0
}

// applyFlags layers command-line flags over the loaded config
func applyFlags(cfg *config.Config, args *CLI) {
	if args.Details {
		cfg.Report.Details = true
	}
	if args.Output != "" {
		cfg.Report.OutputDir = args.Output
	}
	if args.Keep != "" {
		cfg.Capture.KeepDir = args.Keep
	}
	if args.Logs {
		cfg.Log.Enabled = true
	}
	if args.LogPath != "" {
		cfg.Log.Enabled = true
		cfg.Log.Path = args.LogPath
	}
}

// analyseFiles prints a report for each file, saving it when an output
// directory is configured. It returns the process exit code: 1 if any file
// failed.
func analyseFiles(w io.Writer, sess *session, files []string) int {
	code := 0
	for _, path := range files {
		take, err := sess.Load(path)
		if err != nil {
			cli.PrintError(fmt.Sprintf("%s: %v", path, err))
			code = 1
			continue
		}
		if err := report(w, sess, take); err != nil {
			cli.PrintError(fmt.Sprintf("%s: %v", path, err))
			code = 1
		}
	}
	return code
}

// recordOnce captures, analyses and reports a single live take
func recordOnce(w io.Writer, sess *session) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Fprintf(w, "🎙️ Speak now... (Recording for %.0f seconds)\n", sess.captureFor.Seconds())
	take, err := sess.Record(ctx)
	if err != nil {
		cli.PrintError(fmt.Sprintf("recording failed: %v", err))
		return 1
	}
	fmt.Fprintln(w, "🔍 Processing your voice...")
	if err := report(w, sess, take); err != nil {
		cli.PrintError(err.Error())
		return 1
	}
	return 0
}

func report(w io.Writer, sess *session, take *ui.Take) error {
	r, err := sess.Analyze(take)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, r.Text)
	fmt.Fprintln(w, r.Headline())
	if sess.outputDir == "" {
		return nil
	}
	path, err := sess.Save("", r.Text)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "✅ Report saved as %s\n\n", path)
	return nil
}
