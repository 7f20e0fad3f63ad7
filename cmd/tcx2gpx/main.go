package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/fatih/color"

	"tcx2gpx/internal/config"
	"tcx2gpx/internal/convert"
	"tcx2gpx/internal/term"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	configPath   string
	profile      string
	noAltitude   bool
	altitudeMode string
	noExtensions bool
	noPower      bool
	noTemp       bool
	tempSource   string
	quiet        bool
}

func usage(fs *flag.FlagSet) func() {
	return func() {
		w := fs.Output()
		fmt.Fprintf(w, "Usage: tcx2gpx [options] filename\n\n")
		fmt.Fprintf(w, "Creates filename.gpx in GPX format from filename in TCX format (.tcx is assumed when\n")
		fmt.Fprintf(w, "filename has no extension). By default elevation comes from the barometric altitude.\n\n")
		fmt.Fprintf(w, "Options:\n")
		fs.PrintDefaults()
	}
}

func parseFlags(args []string, stderr io.Writer) (options, []string, error) {
	var o options
	fs := flag.NewFlagSet("tcx2gpx", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = usage(fs)

	fs.StringVar(&o.configPath, "config", "", "Path to a YAML profile file")
	fs.StringVar(&o.profile, "profile", "", "Built-in profile: full|plain (default full)")
	fs.BoolVar(&o.noAltitude, "noalti", false, "Do not take elevation from the altitude field")
	fs.BoolVar(&o.noAltitude, "n", false, "Short for -noalti")
	fs.StringVar(&o.altitudeMode, "altitude-mode", "", "With -noalti: omit|zero the <ele> element (default omit)")
	fs.BoolVar(&o.noExtensions, "noext", false, "Drop the TrackPointExtension block")
	fs.BoolVar(&o.noPower, "nopower", false, "Drop power from the extension block")
	fs.BoolVar(&o.noTemp, "notemp", false, "Drop temperature from the extension block")
	fs.StringVar(&o.tempSource, "temperature-source", "", "text|legacy (default text)")
	fs.BoolVar(&o.quiet, "q", false, "No progress output")

	// Parse prints the error and the usage text itself.
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return o, nil, err
		}
		return o, nil, fmt.Errorf("%w: %v", convert.ErrUsage, err)
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return o, nil, fmt.Errorf("%w: expected exactly one filename, got %d", convert.ErrUsage, fs.NArg())
	}
	return o, fs.Args(), nil
}

func buildConfig(o options) (config.Config, error) {
	var cfg config.Config
	var err error
	switch {
	case o.configPath != "":
		cfg, err = config.Load(o.configPath)
	case o.profile != "":
		cfg, err = config.Profile(o.profile)
	default:
		cfg = config.Default()
	}
	if err != nil {
		return config.Config{}, err
	}

	if o.profile != "" && o.configPath != "" && o.profile != cfg.Profile {
		return config.Config{}, fmt.Errorf("-profile %s conflicts with profile %s in %s", o.profile, cfg.Profile, o.configPath)
	}
	if o.noAltitude {
		cfg.Options.NoAltitude = true
	}
	if o.altitudeMode != "" {
		cfg.Options.AltitudeMode = o.altitudeMode
	}
	if o.noExtensions {
		cfg.Options.NoExtensions = true
	}
	if o.noPower {
		cfg.Options.NoPower = true
	}
	if o.noTemp {
		cfg.Options.NoTemperature = true
	}
	if o.tempSource != "" {
		cfg.Options.TemperatureSource = o.tempSource
	}
	if o.quiet {
		cfg.Options.Progress = false
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func run(args []string, stdout, stderr io.Writer) int {
	errOut := color.New(color.FgRed)

	o, rest, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		return 2
	}

	cfg, err := buildConfig(o)
	if err != nil {
		errOut.Fprintf(stderr, "config: %v\n", err)
		return 2
	}

	var progress io.Writer
	if f, ok := stdout.(*os.File); ok && cfg.Options.Progress && term.IsTerminal(f) {
		progress = stdout
	}

	_, err = convert.Run(convert.Request{
		Input:    rest[0],
		Config:   cfg,
		Progress: progress,
		Logger:   log.New(stdout, "", 0),
	})
	if err != nil {
		errOut.Fprintf(stderr, "%v\n", err)
		if errors.Is(err, convert.ErrUsage) {
			return 2
		}
		return 1
	}
	return 0
}
