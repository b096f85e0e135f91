package main

import (
	"doccloud/api"

	"github.com/spf13/cobra"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the word cloud web app",
	Long:  `Start an HTTP server with the upload page and the POST /api/wordcloud endpoint.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default APP_PORT or 8501)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.logger.Sync()

	port := a.cfg.AppPort
	if servePort > 0 {
		port = servePort
	}

	srv := api.NewServer(api.Config{
		Port:                 port,
		MaxUploadBytes:       a.cfg.MaxUploadBytes,
		MaxConcurrentRenders: a.cfg.MaxConcurrentRenders,
	}, a.pipeline, a.logger)

	return srv.Start()
}
