package main

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/sirupsen/logrus"

	"github.com/born-ml/tensorkit/internal/pipeline"
)

func inspect(w io.Writer, paths []string, noTable bool) error {
	summaries := make([]pipeline.PixelSummary, 0, len(paths))
	for _, path := range paths {
		img, err := loadImage(path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		x, err := pipeline.ImageTensor(img)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		s, err := pipeline.Summarize(x)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		logrus.WithField("file", path).Debug("image inspected")
		summaries = append(summaries, s)
	}

	if noTable {
		for i, s := range summaries {
			fmt.Fprintf(w, "%s\t%dx%d\t%.0f\t%.0f\t%t\t%t\n",
				paths[i], s.Width, s.Height, s.Min, s.Max, s.AllNonZero, s.AnyNonZero)
		}
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"File", "Size", "Min", "Max", "All nonzero", "Any nonzero"})
	table.SetBorder(false)
	for i, s := range summaries {
		table.Append([]string{
			paths[i],
			fmt.Sprintf("%dx%d", s.Width, s.Height),
			fmt.Sprintf("%.0f", s.Min),
			fmt.Sprintf("%.0f", s.Max),
			fmt.Sprint(s.AllNonZero),
			fmt.Sprint(s.AnyNonZero),
		})
	}
	table.Render()
	return nil
}
