// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand/v2"
	"os"

	"github.com/spf13/cobra"

	"github.com/danielhkuo/namecloud/catalog"
	"github.com/danielhkuo/namecloud/cloud"
	"github.com/danielhkuo/namecloud/info"
	"github.com/danielhkuo/namecloud/people"
	"github.com/danielhkuo/namecloud/render"
)

// Output formats for the layout command.
const (
	formatSVG  = "svg"
	formatPDF  = "pdf"
	formatJSON = "json"
)

type layoutOptions struct {
	width       float64
	height      float64
	seed        uint64
	padding     float64
	attempts    int
	category    string
	format      string
	out         string
	catalogPath string
}

// layoutOutput is the JSON written by --format json
type layoutOutput struct {
	Canvas  cloud.Canvas       `json:"canvas"`
	Seed    uint64             `json:"seed"`
	Items   []cloud.PlacedItem `json:"items"`
	Dropped []cloud.Dropped    `json:"dropped,omitempty"`
}

func newLayoutCmd(opts *options) *cobra.Command {
	lo := layoutOptions{}

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Render the people cloud from the database",
		Long: `Lay out every person in the database as a name cloud and write it as
SVG, PDF or JSON. Vote counts drive the font size once anyone has votes.
The same --seed reproduces the same layout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("seed") {
				lo.seed = rand.Uint64()
			}
			return runLayout(cmd, opts, lo)
		},
	}

	cmd.Flags().Float64Var(&lo.width, "width", 960, "canvas width")
	cmd.Flags().Float64Var(&lo.height, "height", 600, "canvas height")
	cmd.Flags().Uint64Var(&lo.seed, "seed", 0, "random seed (default: random)")
	cmd.Flags().Float64Var(&lo.padding, "padding", cloud.DefaultPadding, "minimum gap around each label")
	cmd.Flags().IntVar(&lo.attempts, "attempts", cloud.DefaultMaxAttempts, "placement attempts per label")
	cmd.Flags().StringVar(&lo.category, "category", "", "only include this category")
	cmd.Flags().StringVarP(&lo.format, "format", "f", formatSVG, "output format (svg, pdf, json)")
	cmd.Flags().StringVarP(&lo.out, "out", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVar(&lo.catalogPath, "catalog", "", "category catalog TOML (default: built-in)")
	return cmd
}

func runLayout(cmd *cobra.Command, opts *options, lo layoutOptions) error {
	switch lo.format {
	case formatSVG, formatPDF, formatJSON:
	default:
		return fmt.Errorf("unknown format %q (want svg, pdf or json)", lo.format)
	}

	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	cat, err := catalog.Load(lo.catalogPath)
	if err != nil {
		return err
	}

	conn, err := opts.open()
	if err != nil {
		return err
	}
	defer conn.Close()

	list, err := people.List(ctx, conn, lo.category)
	if err != nil {
		return err
	}

	layoutOpts := cloud.DefaultOptions()
	layoutOpts.Padding = lo.padding
	layoutOpts.MaxAttemptsPerItem = lo.attempts
	if fm, err := cloud.NewFontMeasurer(); err != nil {
		logger.Warn("Font measurer unavailable, using approximate widths", "error", err)
	} else {
		defer fm.Close()
		layoutOpts.Measurer = fm
	}

	canvas := cloud.Canvas{Width: lo.width, Height: lo.height}
	prog := newProgress(logger)
	res, err := cloud.Layout(peopleItems(list), canvas, layoutOpts, cloud.NewRandom(lo.seed))
	if err != nil {
		return err
	}
	for _, d := range res.Dropped {
		logger.Debug("Dropped", "label", d.Label, "reason", d.Reason)
	}
	prog.done(fmt.Sprintf("Placed %d of %d names (seed %d)", len(res.Placed), len(list), lo.seed))

	w := cmd.OutOrStdout()
	if lo.out != "" && lo.out != "-" {
		f, err := os.Create(lo.out)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	if err := writeLayout(w, lo, canvas, res, cat); err != nil {
		return err
	}
	if lo.out != "" && lo.out != "-" {
		printFile(cmd.ErrOrStderr(), lo.out)
	}
	return nil
}

func writeLayout(w io.Writer, lo layoutOptions, canvas cloud.Canvas, res cloud.Result, cat *catalog.Catalog) error {
	switch lo.format {
	case formatPDF:
		return render.RenderPDF(w, canvas, res.Placed, render.WithPalette(cat), render.WithLinks(render.ItemLink))
	case formatJSON:
		out := layoutOutput{Canvas: canvas, Seed: lo.seed, Items: res.Placed, Dropped: res.Dropped}
		if out.Items == nil {
			out.Items = []cloud.PlacedItem{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	default:
		_, err := w.Write(render.RenderSVG(canvas, res.Placed, render.WithPalette(cat), render.WithLinks(render.ItemLink)))
		return err
	}
}

// peopleItems sizes names by votes once anyone has been voted for.
func peopleItems(list []people.Person) []cloud.Item {
	voted := false
	for _, p := range list {
		if p.Votes > 0 {
			voted = true
			break
		}
	}

	items := make([]cloud.Item, len(list))
	for i, p := range list {
		link := p.WikiLink
		if link == "" {
			link = info.WikiLink(p.Name)
		}
		items[i] = cloud.Item{Label: p.Name, Category: p.Category, Link: link}
		if voted {
			items[i].Weight = float64(p.Votes + 1)
		}
	}
	return items
}
