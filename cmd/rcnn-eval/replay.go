package main

import (
	"log"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/born-ml/rcnn/internal/metric"
	"github.com/born-ml/rcnn/internal/serialization"
)

// Metadata keys read from batch dumps.
const (
	metaBatchSize = "batch_size"
	metaPipeline  = "pipeline"
)

func run(cfg config, logger *log.Logger) error {
	pipeline, err := metric.ParsePipeline(cfg.pipeline)
	if err != nil {
		return err
	}

	files, err := filepath.Glob(filepath.Join(cfg.dir, "*.safetensors"))
	if err != nil {
		return errors.Wrap(err, "list dumps")
	}
	if len(files) == 0 {
		return errors.Errorf("no *.safetensors dumps in %s", cfg.dir)
	}
	sort.Strings(files)

	stage, err := newStager(cfg.device)
	if err != nil {
		return err
	}
	defer stage.Release()

	set := metric.NewSet(pipeline)
	names := metric.PipelineNames(pipeline)
	speed := newSpeedometer(logger, cfg.frequent)
	logger.Printf("Replaying %d batches, pipeline %s, device %s", len(files), pipeline, cfg.device)

	speed.start()
	for _, path := range files {
		dump, err := serialization.ReadBatch(path)
		if err != nil {
			return err
		}
		if p, ok := dump.Metadata[metaPipeline]; ok && p != pipeline.String() {
			return errors.Errorf("%s: dumped by pipeline %s, replaying as %s", path, p, pipeline)
		}
		samples, err := batchSize(dump.Metadata, cfg.batchSize)
		if err != nil {
			return errors.WithMessage(err, path)
		}

		tensors, err := stage.Stage(dump.Tensors)
		if err != nil {
			return errors.WithMessage(err, path)
		}
		b, err := metric.BindNamed(names, tensors)
		if err != nil {
			return errors.WithMessage(err, path)
		}
		if err := set.UpdateBatch(b); err != nil {
			return errors.WithMessage(err, path)
		}
		speed.tick(samples, set)
	}

	logger.Printf("Done: %d batches\t%s", len(files), set)
	return nil
}

func batchSize(meta map[string]string, fallback int) (int, error) {
	s, ok := meta[metaBatchSize]
	if !ok {
		return fallback, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, errors.Errorf("invalid %s metadata %q", metaBatchSize, s)
	}
	return n, nil
}

// speedometer logs throughput and the running metrics every frequent batches.
type speedometer struct {
	logger   *log.Logger
	frequent int
	now      func() time.Time

	batches int
	samples int
	tic     time.Time
}

func newSpeedometer(logger *log.Logger, frequent int) *speedometer {
	return &speedometer{logger: logger, frequent: frequent, now: time.Now}
}

func (s *speedometer) start() {
	s.tic = s.now()
}

func (s *speedometer) tick(samples int, set *metric.Set) {
	s.batches++
	s.samples += samples
	if s.batches%s.frequent != 0 {
		return
	}

	var speed float64
	if elapsed := s.now().Sub(s.tic).Seconds(); elapsed > 0 {
		speed = float64(s.samples) / elapsed
	}
	s.logger.Printf("Batch [%d]\tSpeed: %.2f samples/sec\t%s", s.batches, speed, set)
	s.samples = 0
	s.tic = s.now()
}
