package main

import (
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/ivikasavnish/scriptgen/pkg/codegen"
	"github.com/ivikasavnish/scriptgen/pkg/mcp"
	"github.com/ivikasavnish/scriptgen/pkg/recordprocessor"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	// Create and start the recording server
	server := mcp.NewServer(nil, mcp.WithLogger(logger), mcp.WithOptions(codegen.DefaultOptions()))
	go func() {
		if err := server.Start(":6666"); err != nil {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()
	time.Sleep(100 * time.Millisecond)

	processor := recordprocessor.NewProcessor(
		"http://localhost:6666",
		recordprocessor.WithLogger(logger.Named("processor")),
	)

	// Upload recordings and print their scripts
	ids, err := processor.ProcessDirectory("./recordings")
	if err != nil {
		logger.Warn("Some recordings failed", zap.Error(err))
	}
	for _, id := range ids {
		script, err := processor.Client().Script(id, true)
		if err != nil {
			logger.Error("Failed to fetch script", zap.String("id", id), zap.Error(err))
			continue
		}
		logger.Info("Generated script", zap.String("id", id), zap.String("script", script))
	}

	// Keep the server running
	select {}
}
