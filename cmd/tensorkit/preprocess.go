package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/born-ml/tensorkit/internal/pipeline"
	"github.com/born-ml/tensorkit/internal/serialization"
	"github.com/born-ml/tensorkit/internal/tensor"
	"github.com/born-ml/tensorkit/internal/vision"
)

var errMissingImage = errors.New("missing image argument")

type preprocessArgs struct {
	ConfigPath string
	NoTable    bool
	Jobs       int
	Out        string
	Paths      []string
}

type preprocessResult struct {
	Path  string
	Shape tensor.Shape
	Stats []pipeline.ChannelStats

	out *tensor.Tensor
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path) //nolint:gosec // G304: paths come from the command line
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return pipeline.Decode(f)
}

func preprocess(w io.Writer, args preprocessArgs) error {
	cfg := pipeline.DefaultConfig()
	if args.ConfigPath != "" {
		var err error
		if cfg, err = pipeline.Load(args.ConfigPath); err != nil {
			return err
		}
	}
	p, err := pipeline.New(cfg, vision.DefaultOptions())
	if err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{
		"size":          cfg.Size,
		"align_corners": cfg.AlignCorners,
		"max_side":      cfg.MaxSide,
	}).Debug("pipeline configured")

	results := make([]preprocessResult, len(args.Paths))
	eg, ctx := errgroup.WithContext(context.Background())
	eg.SetLimit(max(args.Jobs, 1))
	for i, path := range args.Paths {
		i, path := i, path
		eg.Go(func() error {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			img, err := loadImage(path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			out, err := p.Run(img)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			stats, err := pipeline.Stats(out)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			results[i] = preprocessResult{Path: path, Shape: out.Shape(), Stats: stats, out: out}
			logrus.WithFields(logrus.Fields{"file": path, "shape": out.Shape()}).Debug("image preprocessed")
			return nil
		})
	}
	defer func() {
		for _, r := range results {
			if r.out != nil {
				r.out.Release()
			}
		}
	}()
	if err := eg.Wait(); err != nil {
		return err
	}

	if args.Out != "" {
		if err := save(args.Out, results); err != nil {
			return err
		}
		logrus.WithFields(logrus.Fields{"file": args.Out, "tensors": len(results)}).Debug("tensors saved")
	}

	if args.NoTable {
		renderPreprocessPlain(w, results)
	} else {
		renderPreprocessTable(w, results)
	}
	return nil
}

// tensorName keys the i-th image in a saved batch; the source path goes to
// the metadata since paths are not valid tensor names.
func tensorName(i int) string {
	return fmt.Sprintf("image_%03d", i)
}

func save(path string, results []preprocessResult) error {
	tensors := make(map[string]*tensor.Tensor, len(results))
	metadata := make(map[string]string, len(results))
	for i, r := range results {
		tensors[tensorName(i)] = r.out
		metadata[tensorName(i)] = r.Path
	}
	return serialization.WriteFile(path, tensors, metadata)
}

func renderPreprocessTable(w io.Writer, results []preprocessResult) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"File", "Shape", "Channel", "Min", "Max", "Mean"})
	table.SetCaption(true, fmt.Sprintf("%d Images", len(results)))
	table.SetBorder(false)
	for _, r := range results {
		for _, s := range r.Stats {
			table.Append([]string{
				r.Path,
				fmt.Sprint([]int(r.Shape)),
				fmt.Sprint(s.Channel),
				formatFloat(s.Min),
				formatFloat(s.Max),
				formatFloat(s.Mean),
			})
		}
	}
	table.Render()
}

func renderPreprocessPlain(w io.Writer, results []preprocessResult) {
	for _, r := range results {
		for _, s := range r.Stats {
			fmt.Fprintf(w, "%s\t%v\t%d\t%s\t%s\t%s\n",
				r.Path, []int(r.Shape), s.Channel, formatFloat(s.Min), formatFloat(s.Max), formatFloat(s.Mean))
		}
	}
}

func formatFloat(v float64) string {
	return fmt.Sprintf("%.4f", v)
}
