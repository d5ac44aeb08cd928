package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/company/fastapi-configurator/internal/bundle"
	"github.com/company/fastapi-configurator/internal/exitcodes"
	"github.com/company/fastapi-configurator/internal/filemanager"
	"github.com/company/fastapi-configurator/internal/output"
	"github.com/company/fastapi-configurator/internal/ui"
)

func (a *App) newBundleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bundle",
		Short: "Build and serve template bundles",
	}
	cmd.AddCommand(a.newBundleBuildCmd(), a.newBundleServeCmd())
	return cmd
}

func (a *App) newBundleBuildCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "build <template-dir>",
		Short: "Bundle a template directory into templates.json",
		Long: "Walk a cookiecutter template directory and write every text file into one\n" +
			"templates.json. Binary files and tool directories are skipped.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, stats, err := bundle.Build(args[0])
			if err != nil {
				return &ExitError{Code: exitcodes.UsageError, Message: err.Error()}
			}
			if out == "" {
				out = filepath.Join(a.settings.OutputDir, bundle.FileName)
			}
			digest, err := writeBundle(out, b)
			if err != nil {
				return classify(err)
			}
			a.output.Success("Bundled %d template files into %s (%s, %d skipped)",
				stats.Files, a.output.Noun(out), ui.Size(stats.Bytes), stats.Skipped)
			a.output.Println("  %s", a.output.Dim(digest))
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default templates.json in the output directory)")
	return cmd
}

// writeBundle saves b atomically and returns its digest.
func writeBundle(path string, b *bundle.Bundle) (string, error) {
	var buf bytes.Buffer
	if err := bundle.Write(&buf, b); err != nil {
		return "", err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	if err := filemanager.WriteFileAtomic(path, buf.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("saving bundle: %w", err)
	}
	return filemanager.HashBytes(buf.Bytes()), nil
}

func (a *App) newBundleServeCmd() *cobra.Command {
	var (
		addr  string
		token string
	)
	cmd := &cobra.Command{
		Use:   "serve <templates.json|template-dir>",
		Short: "Serve a template bundle over HTTP for development",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := bundle.Open(args[0])
			if err != nil {
				return classify(err)
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			b, err := src.Load(ctx)
			if err != nil {
				return classify(err)
			}
			h, err := bundle.NewHandler(b)
			if err != nil {
				return classify(err)
			}

			ln, err := net.Listen("tcp", addr)
			if err != nil {
				return &ExitError{Code: exitcodes.NetworkError, Message: err.Error()}
			}
			srv := &http.Server{Handler: h.Router(token), ReadHeaderTimeout: 10 * time.Second}

			a.output.Success("Serving %d files at %s", b.Len(), a.output.Noun("http://"+ln.Addr().String()+"/"+bundle.FileName))
			a.output.Println("  %s", a.output.Dim("use --templates http://"+ln.Addr().String()+"/ with generate"))

			return serve(ctx, srv, ln)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8321", "listen address")
	cmd.Flags().StringVar(&token, "token", "", "require this bearer token")
	return cmd
}

func serve(ctx context.Context, srv *http.Server, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return &ExitError{Code: exitcodes.NetworkError, Message: err.Error()}
	case <-ctx.Done():
		output.Debug("shutting down bundle server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
