package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/katalvlaran/topomap/grid"
	"github.com/katalvlaran/topomap/mapper"
	"github.com/katalvlaran/topomap/topograph"
)

const helpMessage = `

Build a topological navigation graph from an occupancy grid map

Usage: topomap [options] -map <map.yaml> -out <graph.yaml>

Example: topomap -map office.yaml -out office.graph.yaml.gz -geojson office.geojson

      -map         (string)  Map descriptor (YAML with image, resolution, origin, thresholds).
      -out         (string)  Graph file to write: .yaml, .yml or .json, optionally .gz.
      -geojson     (string)  Also write Voronoi points, critical lines and the graph as GeoJSON.
      -config      (string)  TOML configuration file with [mapper] and [logging] sections.
      -clearance   (float)   Clearance threshold in meters.
      -epsilon     (float)   Critical point neighborhood radius in meters.
      -merge-area  (float)   Region area in m² above which hubs are split at their doors; 0 disables.
      -workers     (int)     Voronoi search workers; 0 uses every CPU.
      -log         (string)  Rotating log file, in addition to stderr.
      -v           (flag)    Log debug output of every stage.
  -h, -help        (flag)    Show help message

Flags override values read from -config.

`

var (
	showHelp    = flag.Bool("help", false, "Show help message")
	mapFile     = flag.String("map", "", "Map descriptor")
	outFile     = flag.String("out", "", "Graph file to write")
	geojsonFile = flag.String("geojson", "", "GeoJSON diagnostics file")
	configFile  = flag.String("config", "", "TOML configuration file")
	clearance   = flag.Float64("clearance", mapper.DefaultClearanceThreshold, "Clearance threshold in meters")
	epsilon     = flag.Float64("epsilon", mapper.DefaultCriticalEpsilon, "Critical point neighborhood radius in meters")
	mergeArea   = flag.Float64("merge-area", mapper.DefaultMergeThresholdArea, "Hub split area in square meters")
	workers     = flag.Int("workers", 0, "Voronoi search workers")
	logFile     = flag.String("log", "", "Rotating log file")
	verbose     = flag.Bool("v", false, "Debug logging")
)

var usage = func() {
	fmt.Print(helpMessage)
}

func main() {
	flag.BoolVar(showHelp, "h", false, "Show help message")
	flag.Usage = usage
	flag.Parse()

	if *showHelp || *mapFile == "" || *outFile == "" {
		flag.Usage()
		os.Exit(0)
	}

	fc, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "topomap: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(fc.Logging, *verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "topomap: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(fc.Mapper, logger); err != nil {
		logger.Error("topomap failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

// loadConfig reads -config, if given, and applies the flags set on the command line.
func loadConfig() (mapper.FileConfig, error) {
	fc := mapper.DefaultFileConfig()
	if *configFile != "" {
		var err error
		if fc, err = mapper.LoadConfig(*configFile); err != nil {
			return fc, err
		}
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "clearance":
			fc.Mapper.ClearanceThreshold = *clearance
		case "epsilon":
			fc.Mapper.CriticalEpsilon = *epsilon
		case "merge-area":
			fc.Mapper.MergeThresholdArea = *mergeArea
		case "workers":
			fc.Mapper.Workers = *workers
		case "log":
			fc.Logging.Logfile = *logFile
		}
	})
	return fc, fc.Mapper.Validate()
}

func run(cfg mapper.Config, logger *zap.Logger) error {
	source, err := grid.LoadMap(*mapFile)
	if err != nil {
		return err
	}
	logger.Info("map loaded",
		zap.String("map", *mapFile),
		zap.Int("width", source.Width()),
		zap.Int("height", source.Height()),
		zap.Float64("resolution", source.Resolution()))

	m, err := mapper.New(cfg, mapper.WithLogger(logger))
	if err != nil {
		return err
	}
	res, err := m.Run(source)
	if err != nil {
		return err
	}

	if err := topograph.Write(*outFile, res.Graph); err != nil {
		return err
	}
	if *geojsonFile != "" {
		data, err := res.Diagnostics().MarshalJSON()
		if err != nil {
			return fmt.Errorf("encode diagnostics: %w", err)
		}
		if err := os.WriteFile(*geojsonFile, data, 0o644); err != nil {
			return fmt.Errorf("write diagnostics: %w", err)
		}
	}

	printSummary(res)
	return nil
}

func printSummary(res *mapper.Result) {
	src := res.Source
	fmt.Printf("Map:             %d x %d pixels at %g m/pixel\n", src.Width(), src.Height(), src.Resolution())
	fmt.Printf("Free space:      %s pixels (%s after inflation)\n",
		humanize.Comma(int64(src.Count(grid.Free))), humanize.Comma(int64(res.Inflated.Count(grid.Free))))
	fmt.Printf("Voronoi points:  %s\n", humanize.Comma(int64(len(res.VoronoiPoints))))
	fmt.Printf("Critical points: %d kept, %d dropped\n",
		len(res.Segmentation.Critical), len(res.Segmentation.Dropped))
	fmt.Printf("Regions:         %d (%d reachable)\n",
		len(res.Segmentation.Regions), len(res.Segmentation.Reachable()))
	fmt.Printf("Graph:           %d vertices, %d edges\n", res.Graph.VertexCount(), res.Graph.EdgeCount())
	printFile("Graph file", *outFile)
	if *geojsonFile != "" {
		printFile("GeoJSON file", *geojsonFile)
	}
}

func printFile(label, path string) {
	info, err := os.Stat(path)
	if err != nil {
		return
	}
	fmt.Printf("%-17s%s (%s)\n", label+":", path, humanize.Bytes(uint64(info.Size())))
}
