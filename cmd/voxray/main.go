package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime/pprof"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/lukaszgryglicki/voxray/internal/voxray"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	voxray.Debug = os.Getenv("DEBUG") != ""
	voxray.PNG = os.Getenv("SKIP_PNG") == ""
	voxray.RAW = os.Getenv("RAW") != ""
	voxray.GIF = os.Getenv("GIF") != ""
	voxray.Stochastic = os.Getenv("STOCHASTIC") != ""
	voxray.Estimate = os.Getenv("ESTIMATE") != ""
	if w, err := strconv.Atoi(os.Getenv("WORKERS")); err == nil && w > 0 {
		voxray.Workers = w
	}
	if voxray.Debug {
		voxray.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	} else {
		voxray.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})))
	}
	profile := os.Getenv("PROFILE") != ""
	if profile {
		f, err := os.Create("cpu.out")
		if err != nil {
			panic(err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			panic(err)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	cfg := "scenes/default.json"
	if len(os.Args) > 1 {
		cfg = os.Args[1]
	}
	if err := voxray.Run(cfg); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
