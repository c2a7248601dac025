package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/born-ml/tensorkit/internal/serialization"
	"github.com/born-ml/tensorkit/internal/tensor"
)

var errMissingFile = errors.New("missing file argument")

// show lists the tensors of a SafeTensors file with their source and range.
func show(w io.Writer, path string, noTable bool) error {
	f, err := serialization.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	defer f.Release()

	rows := make([][]string, 0, len(f.Tensors))
	for _, name := range f.Names() {
		x := f.Tensors[name]
		lo, hi := "-", "-"
		if x.NumElements() > 0 && x.DType() != tensor.Bool {
			mn, err := x.Min()
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			mx, err := x.Max()
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			lo, hi = formatFloat(mn.Float64s()[0]), formatFloat(mx.Float64s()[0])
		}
		rows = append(rows, []string{
			name, f.Metadata[name], x.DType().String(), fmt.Sprint([]int(x.Shape())), lo, hi,
		})
	}

	if noTable {
		for _, r := range rows {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", r[0], r[1], r[2], r[3], r[4], r[5])
		}
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Tensor", "Source", "DType", "Shape", "Min", "Max"})
	table.SetCaption(true, fmt.Sprintf("%d Tensors", len(rows)))
	table.SetBorder(false)
	table.AppendBulk(rows)
	table.Render()
	return nil
}
