// Package main 终端图片工作室入口
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"z-image-studio/internal/config"
	"z-image-studio/internal/studio/client"
	"z-image-studio/internal/studio/presenter"
	"z-image-studio/internal/studio/speech"
	"z-image-studio/pkg/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type options struct {
	APIURL      string
	DownloadDir string
	SpeechCmd   string
	LogLevel    string
}

var opts options

var rootCmd = &cobra.Command{
	Use:          "studio",
	Short:        "Interactive AI image studio backed by image-gen-svc",
	SilenceUsage: true,
	RunE:         runStudio,
}

func init() {
	rootCmd.Flags().StringVarP(&opts.APIURL, "api-url", "a", "", "image-gen-svc base URL (default from config)")
	rootCmd.Flags().StringVarP(&opts.DownloadDir, "download-dir", "d", "", "directory for downloaded images (default from config)")
	rootCmd.Flags().StringVar(&opts.SpeechCmd, "speech-cmd", "", "command that prints one recognized utterance to stdout")
	rootCmd.Flags().StringVar(&opts.LogLevel, "log-level", "warn", "log level written to stderr")
}

func runStudio(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyFlags(cmd, &cfg.Studio)

	logger.InitWithWriter(os.Stderr, opts.LogLevel, "text")
	ctx := cmd.Context()
	logger.Debug(ctx, "studio starting", "api_url", cfg.Studio.APIURL)

	httpClient := &http.Client{
		Timeout:   cfg.Studio.Timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
	p := presenter.New(
		client.New(cfg.Studio.APIURL, httpClient),
		presenter.NewConsoleNotifier(cmd.OutOrStdout()),
		presenter.Options{
			DownloadDir: cfg.Studio.DownloadDir,
			Speech:      speech.Detect(cfg.Studio.SpeechCommand),
		},
	)
	return p.Run(ctx, cmd.InOrStdin(), cmd.OutOrStdout())
}

// applyFlags 显式传入的命令行参数覆盖配置
func applyFlags(cmd *cobra.Command, studio *config.StudioConfig) {
	if cmd.Flags().Changed("api-url") {
		studio.APIURL = opts.APIURL
	}
	if cmd.Flags().Changed("download-dir") {
		studio.DownloadDir = opts.DownloadDir
	}
	if cmd.Flags().Changed("speech-cmd") {
		studio.SpeechCommand = opts.SpeechCmd
	}
}

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
