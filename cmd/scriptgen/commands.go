package main

import (
	"context"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/pkg/errors"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/ivikasavnish/scriptgen/pkg/browser"
	"github.com/ivikasavnish/scriptgen/pkg/codegen"
	"github.com/ivikasavnish/scriptgen/pkg/config"
	"github.com/ivikasavnish/scriptgen/pkg/mcp"
	"github.com/ivikasavnish/scriptgen/pkg/recordprocessor"
	"github.com/ivikasavnish/scriptgen/pkg/script"
)

func readEvents(src string, format browser.Format) ([]browser.RecordedEvent, error) {
	if src != "-" {
		return browser.LoadFile(src)
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, errors.Wrap(err, "unable to read recording from stdin")
	}
	return browser.DecodeEvents(data, format)
}

// generatorOptions applies command line overrides to the configured options
func generatorOptions(cmd *cli.Command, opts codegen.Options) codegen.Options {
	if cmd.IsSet("wrap-async") {
		opts.WrapAsync = cmd.Bool("wrap-async")
	}
	if cmd.IsSet("blank-lines") {
		opts.BlankLinesBetweenBlocks = cmd.Bool("blank-lines")
	}
	if cmd.IsSet("wait-for-navigation") {
		opts.WaitForNavigation = cmd.Bool("wait-for-navigation")
	}
	return opts
}

func wrapScript(cmd *cli.Command, body string, opts codegen.Options) (string, error) {
	if tmplFile := cmd.String("template"); len(tmplFile) > 0 {
		text, err := os.ReadFile(tmplFile)
		if err != nil {
			return "", errors.Wrap(err, "unable to read script template")
		}
		tmpl, err := script.Parse(string(text))
		if err != nil {
			return "", err
		}
		return tmpl.Render(body, opts)
	}
	if cmd.Bool("full") {
		return script.Render(body, opts)
	}
	return body, nil
}

func runGenerate(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := envFromContext(ctx)
	log := env.Log.Named("generate")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	events, err := readEvents(src, browser.Format(cmd.String("format")))
	if err != nil {
		return err
	}

	opts := generatorOptions(cmd, env.Cfg.Generator)
	body := codegen.New(opts, codegen.WithLogger(log)).Generate(events)
	out, err := wrapScript(cmd, body, opts)
	if err != nil {
		return err
	}

	dst := cmd.Args().Get(1)
	if len(dst) == 0 {
		_, err = io.WriteString(os.Stdout, out)
		return err
	}
	if err := os.WriteFile(dst, []byte(out), 0644); err != nil {
		return errors.Wrapf(err, "unable to write script to '%s'", dst)
	}
	log.Info("Script generated", zap.String("source", src), zap.String("destination", dst), zap.Int("events", len(events)))
	return nil
}

func runServe(ctx context.Context, cmd *cli.Command) error {
	env := envFromContext(ctx)
	log := env.Log.Named("server")

	listen := env.Cfg.Server.Listen
	if cmd.IsSet("listen") {
		listen = cmd.String("listen")
	}

	srv := &http.Server{
		Addr:    listen,
		Handler: mcp.NewServer(nil, mcp.WithLogger(log), mcp.WithOptions(env.Cfg.Generator)),
	}

	errs := make(chan error, 1)
	go func() {
		log.Info("Listening", zap.String("addr", listen))
		errs <- srv.ListenAndServe()
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
		log.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func runUpload(ctx context.Context, cmd *cli.Command) error {
	env := envFromContext(ctx)
	log := env.Log.Named("upload")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	fi, err := os.Stat(src)
	if err != nil {
		return errors.Wrap(err, "unable to access source")
	}

	processor := recordprocessor.NewProcessor(cmd.String("server"), recordprocessor.WithLogger(log))
	if !fi.IsDir() {
		_, err = processor.ProcessFile(src)
		return err
	}

	ids, err := processor.ProcessDirectory(src)
	log.Info("Uploaded recordings", zap.Strings("ids", ids), zap.Int("failed", len(multierr.Errors(err))))
	return err
}

func outputConfiguration(ctx context.Context, cmd *cli.Command) error {
	env := envFromContext(ctx)
	if cmd.Args().Len() > 1 {
		env.Log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	fname := cmd.Args().Get(0)

	var (
		err   error
		data  []byte
		state string
	)

	out := os.Stdout
	if len(fname) > 0 {
		out, err = os.Create(fname)
		if err != nil {
			return errors.Wrapf(err, "unable to create destination file '%s'", fname)
		}
		defer out.Close()
	}

	if cmd.Bool("default") {
		state = "default"
		data, err = config.Prepare()
	} else {
		state = "actual"
		data, err = config.Dump(env.Cfg)
	}
	if err != nil {
		return errors.Wrap(err, "unable to get configuration")
	}

	if len(fname) == 0 {
		fname = "STDOUT"
	}
	env.Log.Debug("Outputting configuration", zap.String("state", state), zap.String("file", fname))

	if _, err := out.Write(data); err != nil {
		return errors.Wrap(err, "unable to write configuration")
	}
	return nil
}
