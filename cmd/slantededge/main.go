package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"slantededge/pkg/config"
	"slantededge/pkg/luminance"
	"slantededge/pkg/mtf"
	"slantededge/pkg/report"
)

func main() {
	// Parse command line arguments
	imagePath := flag.String("image", "", "Photograph of the slanted edge target (png/jpg/tiff/bmp)")
	configPath := flag.String("config", "", "YAML file with region bounds and edge thresholds")
	saveConfig := flag.String("save-config", "", "Save the effective configuration to this YAML file")
	roi := flag.String("roi", "all", "Region to analyze: all, center, top-left, top-right, bottom-left or bottom-right")
	outDir := flag.String("out", ".", "Directory for the rendered MTF plot and region overlay")
	quiet := flag.Bool("quiet", false, "Do not write plot images")
	verbose := flag.Bool("verbose", false, "Print per-stage progress while analyzing")
	flag.Parse()

	// Validate inputs
	if *imagePath == "" {
		flag.Usage()
		os.Exit(1)
	}

	cfg := loadConfig(*configPath)

	// Restrict the run to the selected region; every other region is
	// deselected so the analyzer skips it.
	if *roi != "all" {
		selected := mtf.Corner(*roi)
		known := false
		for _, corner := range mtf.Corners {
			if corner == selected {
				known = true
			}
		}
		if !known {
			log.Fatalf("Unknown region %q", *roi)
		}
		for _, corner := range mtf.Corners {
			if corner != selected {
				cfg.SetBounds(corner, nil)
			}
		}
	}

	fmt.Printf("Loading %s...\n", *imagePath)
	img, err := luminance.Load(*imagePath)
	if err != nil {
		log.Fatalf("Failed to load image: %v", err)
	}
	fmt.Printf("Image size: %d x %d\n", img.Width, img.Height)

	params := &mtf.Params{
		Image:     img,
		Regions:   cfg.RegionList(),
		EdgeWidth: cfg.Edge.Width,
		MinAngle:  cfg.Edge.MinAngle,
		MaxAngle:  cfg.Edge.MaxAngle,
	}
	if *verbose {
		params.Progress = func(stage string, res *mtf.RegionResult) {
			fmt.Printf("  [%s] %s done\n", res.Corner, stage)
		}
	}

	fmt.Println("Analyzing slanted edge regions...")
	startTime := time.Now()
	analyzer := mtf.NewAnalyzer(params)
	results, ok := analyzer.Analyze()
	fmt.Printf("Analysis completed in %.2f seconds.\n", time.Since(startTime).Seconds())

	report.Write(os.Stdout, results)
	if ok {
		fmt.Println("Success.")
	} else {
		fmt.Println("Failed.")
	}

	if !*quiet {
		if err := report.SaveAll(*outDir, *imagePath, img, results); err != nil {
			log.Printf("Warning: failed to save plots: %v", err)
		} else {
			fmt.Printf("Plots saved to %s\n", *outDir)
		}
	}

	if *saveConfig != "" {
		if err := config.SaveConfig(cfg, *saveConfig); err != nil {
			log.Fatalf("Failed to save config: %v", err)
		}
		fmt.Printf("Configuration saved to %s\n", *saveConfig)
	}

	if !ok {
		os.Exit(1)
	}
}

func loadConfig(path string) *config.Config {
	if path == "" {
		fmt.Println("No config file specified, using defaults (all regions deselected).")
		return config.DefaultConfig()
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	fmt.Printf("Loaded configuration from %s.\n", path)
	return cfg
}
