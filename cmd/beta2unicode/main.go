// beta2unicode - Betacode to Unicode Greek converter
//
// Usage:
//
//	beta2unicode convert [file]      Convert Betacode text line by line
//	beta2unicode html [file]         Convert Greek passages of an HTML fragment
//	beta2unicode variants word...    Print accent variants of Betacode words
//	beta2unicode table [prefix]      List the token table
//	beta2unicode serve               Run the HTTP API
//
// If no file is given, or file is "-", reads from stdin.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/npillmayer/betacode"
	"github.com/npillmayer/betacode/internal/api"
	"github.com/npillmayer/betacode/internal/config"
	"github.com/npillmayer/betacode/markup"
	"github.com/npillmayer/betacode/stream"
	"github.com/npillmayer/betacode/variants"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run executes one subcommand and returns the process exit status.
func run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return 1
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	codec, err := betacode.New()
	if err != nil {
		return fail("%v", err)
	}

	cmd, args := args[0], args[1:]
	switch cmd {
	case "convert":
		return cmdConvert(codec, log, args)
	case "html":
		return cmdHTML(codec, log, args)
	case "variants":
		return cmdVariants(codec, args)
	case "table":
		return cmdTable(codec, args)
	case "serve":
		return cmdServe(codec, log)
	case "help", "-h", "--help":
		printUsage()
		return 0
	default:
		fmt.Fprintf(os.Stderr, "beta2unicode: unknown command: %s\n", cmd)
		printUsage()
		return 1
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `Usage: beta2unicode <command> [args]

Commands:
  convert [file]     Convert Betacode text line by line
  html [file]        Convert Greek passages (lang="greek") of an HTML fragment
  variants word...   Print accent variants of Betacode words
  table [prefix]     List Betacode tokens and their Unicode renderings
  serve              Run the HTTP API (configured by BETACODE_* variables)`)
}

func fail(format string, args ...any) int {
	fmt.Fprintf(os.Stderr, "beta2unicode: "+format+"\n", args...)
	return 1
}

// openInput opens the file named by args[0], or stdin for none or "-".
// Closing the result never closes stdin.
func openInput(args []string) (io.ReadCloser, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	return f, nil
}

func cmdConvert(codec *betacode.Codec, log *slog.Logger, args []string) int {
	input, err := openInput(args)
	if err != nil {
		return fail("%v", err)
	}
	defer input.Close()
	return convertLines(codec, log, input, os.Stdout)
}

func convertLines(codec *betacode.Codec, log *slog.Logger, input io.Reader, output io.Writer) int {
	failed, err := stream.Copy(codec, input, output, func(line stream.Line) {
		log.Warn("cannot convert line", "line", line.Number, "error", line.Err)
	})
	if err != nil {
		return fail("%v", err)
	}
	if failed > 0 {
		return 1
	}
	return 0
}

func cmdHTML(codec *betacode.Codec, log *slog.Logger, args []string) int {
	input, err := openInput(args)
	if err != nil {
		return fail("%v", err)
	}
	defer input.Close()
	stats, err := markup.ConvertHTML(codec, input, os.Stdout)
	if err != nil {
		return fail("%v", err)
	}
	fmt.Fprintln(os.Stdout)
	log.Info("converted markup", "converted", stats.Converted, "failed", stats.Failed)
	if stats.Failed > 0 {
		return 1
	}
	return 0
}

func cmdVariants(codec *betacode.Codec, words []string) int {
	if len(words) == 0 {
		return fail("variants: missing word")
	}
	status := 0
	for _, word := range words {
		u, err := codec.Convert(word)
		if err != nil {
			fmt.Fprintf(os.Stderr, "beta2unicode: %v\n", err)
			status = 1
			continue
		}
		fmt.Println(strings.Join(variants.Of(u), "\t"))
	}
	return status
}

func cmdTable(codec *betacode.Codec, args []string) int {
	table := codec.Table()
	prefix := ""
	if len(args) > 0 {
		prefix = strings.ToUpper(args[0])
	}
	for _, token := range table.TokensWithPrefix(prefix) {
		u, _ := table.Lookup(token)
		fmt.Printf("%q\t%s\t%+q\n", token, u, u)
	}
	fmt.Fprintf(os.Stderr, "%d tokens, %s\n", table.Len(), codec.Trie())
	return 0
}

func cmdServe(codec *betacode.Codec, log *slog.Logger) int {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		return 1
	}

	srv := api.NewServer(codec, log, cfg)
	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.Info("starting beta2unicode", "port", cfg.Port, "tokens", codec.Table().Len())
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		return 1
	}
	return 0
}
