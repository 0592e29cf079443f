package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/log"

	"github.com/VoidMesh/gridgen/cmd/preview/models"
	"github.com/VoidMesh/gridgen/internal/logging"
	"github.com/VoidMesh/gridgen/internal/pipeline"
	"github.com/VoidMesh/gridgen/internal/render"
)

func main() {
	path := flag.String("pipeline", "./pipelines/dungeon.toml", "Path to the pipeline definition (TOML)")
	seedFlag := flag.String("seed", "", "Override the pipeline seed")
	printOnly := flag.Bool("print", false, "Print every layer as ASCII and exit")
	logLevel := flag.String("log", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	// Setup logging
	switch *logLevel {
	case "debug":
		log.SetLevel(log.DebugLevel)
	case "info":
		log.SetLevel(log.InfoLevel)
	case "warn":
		log.SetLevel(log.WarnLevel)
	case "error":
		log.SetLevel(log.ErrorLevel)
	default:
		log.SetLevel(log.InfoLevel)
	}
	logging.SetLevel(logging.ParseLevel(*logLevel))
	log.SetPrefix("[gridgen-preview] ")

	def, err := pipeline.LoadFile(*path)
	if err != nil {
		log.Fatal("Failed to load pipeline", "error", err, "path", *path)
	}
	if *seedFlag != "" {
		seed, err := strconv.ParseInt(*seedFlag, 10, 64)
		if err != nil {
			log.Fatal("Invalid seed", "error", err, "seed", *seedFlag)
		}
		def.Seed = seed
	}
	if err := def.Validate(); err != nil {
		log.Fatal("Invalid pipeline", "error", err, "path", *path)
	}

	executor := pipeline.NewExecutor()

	if *printOnly {
		if err := printLayout(os.Stdout, executor, def); err != nil {
			log.Fatal("Failed to run pipeline", "error", err)
		}
		return
	}

	// Log lines would tear the alternate screen; keep them in a file when
	// DEBUG is set and drop them otherwise.
	var logOutput io.Writer = io.Discard
	if len(os.Getenv("DEBUG")) > 0 {
		f, err := tea.LogToFile("preview.log", "preview")
		if err != nil {
			fmt.Println("fatal:", err)
			os.Exit(1)
		}
		defer f.Close()
		logOutput = f
	}
	log.SetOutput(logOutput)
	logging.SetOutput(logOutput)

	app := models.NewApp(executor, def)
	program := tea.NewProgram(app, tea.WithAltScreen())

	log.Info("Starting gridgen preview", "pipeline", *path, "seed", def.Seed)

	if _, err := program.Run(); err != nil {
		log.Fatal("Error running preview", "error", err)
	}
}

func printLayout(w io.Writer, executor *pipeline.Executor, def *pipeline.Definition) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	layout, err := executor.Run(ctx, def)
	if err != nil {
		return err
	}

	for _, layer := range layout.Layers {
		fmt.Fprintf(w, "== %s (%dx%d, seed %d, %d cells)", layer.Name, layer.Width, layer.Height, layer.Seed, layer.Cells.Len())
		if layer.PathFound != nil {
			fmt.Fprintf(w, " path_found=%v", *layer.PathFound)
		}
		fmt.Fprintln(w)
		fmt.Fprint(w, render.ASCII(layer.Cells, layer.Width, layer.Height))
		fmt.Fprintln(w)
	}
	return nil
}
