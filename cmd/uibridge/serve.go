package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/uibridge/uibridge/internal/config"
	"github.com/uibridge/uibridge/internal/server"
)

const shutdownTimeout = 10 * time.Second

func serveCommand() *cobra.Command {
	var (
		configPath string
		port       int
		debug      bool
		logFile    string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the agent stream server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if debug {
				logrus.SetLevel(logrus.DebugLevel)
				logrus.Info("Debug mode enabled - detailed logging will be shown")
			} else {
				logrus.SetLevel(logrus.InfoLevel)
				gin.SetMode(gin.ReleaseMode)
			}

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if port != 0 {
				cfg.Port = port
			}
			if logFile == "" {
				logFile = cfg.LogFile
			}

			if logFile != "" {
				logWriter := &lumberjack.Logger{
					Filename:   logFile,
					MaxSize:    10, // MB
					MaxBackups: 10,
					MaxAge:     30, // days
					Compress:   true,
				}
				logrus.SetOutput(io.MultiWriter(os.Stdout, logWriter))
				logrus.Infof("Logging to file: %s (with rotation)", logFile)
			}

			srv := server.NewServer(cfg, server.WithVersion(version))

			serverError := make(chan error, 1)
			go func() {
				serverError <- srv.Start()
			}()

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

			select {
			case err := <-serverError:
				return err
			case <-sigChan:
				fmt.Println("\nReceived shutdown signal, stopping server...")
				ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				return srv.Shutdown(ctx)
			}
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to YAML config file")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "listen port (overrides config)")
	cmd.Flags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")
	cmd.Flags().StringVar(&logFile, "log-file", "", "log file path (rotation enabled)")

	return cmd
}
