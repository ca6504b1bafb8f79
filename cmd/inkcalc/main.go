package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/example/inkcalc/internal/config"
	"github.com/example/inkcalc/internal/notify"
	"github.com/example/inkcalc/internal/theme"
)

var (
	version            = "dev"
	commit             = ""
	date               = ""
	configPathOverride = ""
)

type runnable interface{ Run() error }

type root struct {
	fs           *flag.FlagSet
	program      string
	notifier     *notify.Notifier
	config       *config.Config
	resultAlerts bool
	saveAlerts   bool
	copyAlerts   bool
	themeName    string
	activeTheme  *theme.Theme
	serviceURL   string
}

func (r *root) Program() string {
	return r.program
}

func (r *root) subcommand(name string) *root {
	program := strings.TrimSpace(strings.Join([]string{r.program, name}, " "))
	return &root{
		program:      program,
		notifier:     r.notifier,
		config:       r.config,
		resultAlerts: r.resultAlerts,
		saveAlerts:   r.saveAlerts,
		copyAlerts:   r.copyAlerts,
		themeName:    r.themeName,
		activeTheme:  r.activeTheme,
		serviceURL:   r.serviceURL,
	}
}

func (r *root) FlagSet() *flag.FlagSet {
	return r.fs
}

func newRoot() *root {
	prefs := notify.LoadPreferences()
	loader := config.NewLoader(version, configPathOverride)
	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load config: %v\n", err)
		cfg = config.New()
	}

	r := &root{
		fs:       flag.NewFlagSet("inkcalc", flag.ExitOnError),
		program:  "inkcalc",
		notifier: notify.New(prefs),
		config:   cfg,
	}
	r.fs.BoolVar(&r.resultAlerts, "notify-result", cfg.Notify.Result, "show a desktop notification when a recognition result surfaces")
	r.fs.BoolVar(&r.saveAlerts, "notify-save", cfg.Notify.Save, "show a desktop notification after saving the drawing")
	r.fs.BoolVar(&r.copyAlerts, "notify-copy", cfg.Notify.Copy, "show a desktop notification after copying to the clipboard")
	r.fs.StringVar(&r.serviceURL, "service", "", "recognition service URL (overrides config and INKCALC_SERVICE_URL)")

	// Precedence: CLI > Env > Config > Default
	r.fs.StringVar(&r.themeName, "theme", "", "color theme to use (dark, light, or a .theme file)")
	r.fs.Usage = usageFunc(r)
	return r
}

func (r *root) Run(args []string) error {
	if err := r.fs.Parse(args); err != nil {
		return err
	}
	if r.fs.NArg() < 1 {
		return &UsageError{of: r}
	}
	if r.notifier != nil {
		r.notifier.Enable(notify.EventResult, r.resultAlerts)
		r.notifier.Enable(notify.EventSave, r.saveAlerts)
		r.notifier.Enable(notify.EventCopy, r.copyAlerts)
	}
	if r.serviceURL == "" {
		r.serviceURL = r.config.ServiceURL
	}

	themeName := r.themeName
	if themeName == "" {
		themeName = os.Getenv("INKCALC_THEME")
	}
	if themeName == "" {
		themeName = r.config.Theme
	}

	var t *theme.Theme
	if cfgTheme, ok := r.config.Themes[themeName]; ok {
		t = cfgTheme
	} else {
		loader := theme.NewLoader()
		var loadErr error
		t, loadErr = loader.Load(themeName)
		if loadErr != nil {
			if themeName != "" && themeName != "default" {
				fmt.Fprintf(os.Stderr, "warning: failed to load theme '%s': %v. using default.\n", themeName, loadErr)
			}
			t = theme.Default()
		}
	}
	r.activeTheme = t

	cmdName := r.fs.Arg(0)
	subArgs := r.fs.Args()[1:]

	var (
		cmd runnable
		err error
	)
	switch cmdName {
	case "sketch":
		cmd, err = parseSketchCmd(subArgs, r.subcommand("sketch"))
	case "draw":
		cmd, err = parseDrawCmd(subArgs, r.subcommand("draw"))
	case "solve":
		cmd, err = parseSolveCmd(subArgs, r.subcommand("solve"))
	case "export":
		cmd, err = parseExportCmd(subArgs, r.subcommand("export"))
	case "config":
		cmd, err = parseConfigCmd(subArgs, r.subcommand("config"))
	case "version":
		cmd = &versionCmd{r: r}
	default:
		err = &UsageError{of: r}
	}
	if err != nil {
		return err
	}
	return cmd.Run()
}

func main() {
	r := newRoot()
	if err := r.Run(os.Args[1:]); err != nil {
		var uerr *UsageError
		if errors.As(err, &uerr) {
			fmt.Fprintln(os.Stderr, uerr.Error())
		} else {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
}
