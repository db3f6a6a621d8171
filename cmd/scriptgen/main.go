package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/pkg/errors"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/ivikasavnish/scriptgen/pkg/config"
)

const appName = "scriptgen"

// initializeAppContext loads configuration and prepares logging after the
// command line has been parsed
func initializeAppContext(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	var err error

	env := envFromContext(ctx)

	configFile := cmd.String("config")
	if env.Cfg, err = config.LoadConfiguration(configFile); err != nil {
		return ctx, errors.Wrap(err, "unable to prepare configuration")
	}
	if cmd.Bool("debug") {
		env.Cfg.Logging.ConsoleLogger.Level = "debug"
	}
	if env.Log, err = env.Cfg.Logging.Prepare(); err != nil {
		return ctx, errors.Wrap(err, "unable to prepare logs")
	}

	env.Log.Debug("Program started", zap.Strings("args", os.Args), zap.String("runtime", runtime.Version()))
	if len(configFile) == 0 {
		env.Log.Debug("Using defaults (no configuration file)")
	}
	return ctx, nil
}

func destroyAppContext(ctx context.Context, cmd *cli.Command) error {
	env := envFromContext(ctx)
	env.Log.Debug("Program ended", zap.Duration("elapsed", env.uptime()), zap.Strings("parsed args", cmd.Args().Slice()))
	_ = env.Log.Sync()
	return nil
}

var errWasHandled bool

func exitErrHandler(ctx context.Context, _ *cli.Command, err error) {
	env := envFromContext(ctx)
	if env.Cfg != nil {
		env.Log.Error("Program ended with error", zap.Error(err))
		errWasHandled = true
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:            appName,
		Usage:           "turns recorded browser interactions into automation scripts",
		HideHelpCommand: true,
		Before:          initializeAppContext,
		After:           destroyAppContext,
		ExitErrHandler:  exitErrHandler,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "load configuration from `FILE` (YAML)"},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "enable debug logging"},
		},
		Commands: []*cli.Command{
			{
				Name:      "generate",
				Usage:     "Generates a script from a recording",
				Action:    runGenerate,
				ArgsUsage: "SOURCE [DESTINATION]",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "full", Usage: "wrap the statements into a complete script"},
					&cli.StringFlag{Name: "template", Usage: "wrap the statements with the script template in `FILE`"},
					&cli.StringFlag{Name: "format", Value: "json", Usage: "recording `FORMAT` when reading from stdin (json, yaml)"},
					&cli.BoolFlag{Name: "wrap-async", Usage: "indent statements for an async wrapper"},
					&cli.BoolFlag{Name: "blank-lines", Usage: "separate statement blocks with blank lines"},
					&cli.BoolFlag{Name: "wait-for-navigation", Usage: "wait for navigation after every page change"},
				},
				CustomHelpTemplate: fmt.Sprintf(`%s
SOURCE:
    recording file (.json, .yaml or .yml), "-" reads from STDIN

DESTINATION:
    output file, if absent - STDOUT
`, cli.CommandHelpTemplate),
			},
			{
				Name:   "serve",
				Usage:  "Runs the recording server",
				Action: runServe,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "listen", Aliases: []string{"l"}, Usage: "listen on `ADDR` instead of the configured address"},
				},
			},
			{
				Name:      "upload",
				Usage:     "Uploads recording file(s) to a running server",
				Action:    runUpload,
				ArgsUsage: "SOURCE",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "server", Value: "http://localhost:6666", Usage: "server base `URL`"},
				},
			},
			{
				Name:   "dumpconfig",
				Usage:  "Dumps either default or actual configuration (YAML)",
				Action: outputConfiguration,
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "default", Usage: "output default embedded configuration"},
				},
				ArgsUsage: "DESTINATION",
			},
		},
	}
}

func main() {
	ctx, stop := signal.NotifyContext(contextWithEnv(context.Background()), os.Interrupt, syscall.SIGTERM)

	var err error
	defer func() {
		stop()
		if err != nil {
			if !errWasHandled {
				fmt.Fprintf(os.Stderr, "Program ended with error: %v\n", err)
			}
			os.Exit(1)
		}
	}()
	err = newApp().Run(ctx, os.Args)
}
