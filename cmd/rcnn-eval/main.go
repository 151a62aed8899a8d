// Command rcnn-eval replays batch dumps through the detector metrics.
//
// Every *.safetensors file in -dir holds the prediction and label tensors of
// one training batch, keyed by tensor name. Files are replayed in name order
// and the running metrics are logged every -frequent batches.
//
// Usage:
//
//	go run ./cmd/rcnn-eval -dir ./dumps -pipeline e2e -frequent 20
//
// On Windows, -device webgpu stages every tensor through a GPU buffer before
// scoring it, the way outputs of a WebGPU training loop reach the metrics.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/born-ml/rcnn/internal/metric"
)

type config struct {
	dir       string
	pipeline  string
	frequent  int
	batchSize int
	device    string
}

func parseFlags(args []string) (config, error) {
	var cfg config
	fs := flag.NewFlagSet("rcnn-eval", flag.ContinueOnError)
	fs.StringVar(&cfg.dir, "dir", "", "Directory of batch dumps (*.safetensors)")
	fs.StringVar(&cfg.pipeline, "pipeline", "e2e", "Pipeline that produced the dumps: rpn, rcnn or e2e")
	fs.IntVar(&cfg.frequent, "frequent", 20, "Log metrics every N batches")
	fs.IntVar(&cfg.batchSize, "batch-size", 1, "Samples per batch when a dump has no batch_size metadata")
	fs.StringVar(&cfg.device, "device", "cpu", "Where tensors are staged before scoring: cpu or webgpu")
	if err := fs.Parse(args); err != nil {
		return config{}, err
	}
	return cfg, cfg.validate()
}

func (c config) validate() error {
	if c.dir == "" {
		return fmt.Errorf("-dir is required")
	}
	if _, err := metric.ParsePipeline(c.pipeline); err != nil {
		return err
	}
	if c.frequent <= 0 {
		return fmt.Errorf("-frequent must be positive, got %d", c.frequent)
	}
	if c.batchSize <= 0 {
		return fmt.Errorf("-batch-size must be positive, got %d", c.batchSize)
	}
	if c.device != "cpu" && c.device != "webgpu" {
		return fmt.Errorf("unknown device %q (want cpu or webgpu)", c.device)
	}
	return nil
}

func main() {
	cfg, err := parseFlags(os.Args[1:])
	if err != nil {
		if err == flag.ErrHelp {
			return
		}
		fmt.Fprintf(os.Stderr, "rcnn-eval: %v\n", err)
		os.Exit(2)
	}

	if err := run(cfg, log.Default()); err != nil {
		log.Printf("rcnn-eval: %v", err)
		os.Exit(1)
	}
}
