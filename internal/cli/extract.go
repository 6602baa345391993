package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/domcol/internal/colour"
	"github.com/jmylchreest/domcol/internal/config"
	"github.com/jmylchreest/domcol/internal/image"
	"github.com/jmylchreest/domcol/internal/pixbuf"
	"github.com/jmylchreest/domcol/internal/seed"
)

// Output formats.
const (
	formatHex   = "hex"
	formatRGB   = "rgb"
	formatJSON  = "json"
	formatTable = "table"
)

var validFormats = []string{formatHex, formatRGB, formatJSON, formatTable}

const previewWidth = 8

// extractOptions holds the extract command flags.
type extractOptions struct {
	root *rootOptions

	algorithm     string
	colours       int
	radius        float64
	shifts        int
	randomStart   bool
	resize        int
	maxIterations int
	seedAttempts  int
	seedMode      string
	seedValue     int64
	format        string
	sort          bool
	preview       bool
	output        string
}

func newExtractCmd(root *rootOptions) *cobra.Command {
	o := &extractOptions{root: root}
	def := config.Default()

	cmd := &cobra.Command{
		Use:   "extract <image>",
		Short: "Extract the dominant colours of an image",
		Long: `Extract the dominant colours of an image.

The image is fitted into a small square first (see --resize) and then
clustered. If <image> is a directory a random image inside it is used.

Supported image formats: JPEG, PNG, GIF, WebP, each optionally xz-compressed.

Settings may also come from DOMCOL_ALGORITHM, DOMCOL_COLOURS, DOMCOL_RADIUS,
DOMCOL_SHIFTS, DOMCOL_RESIZE, DOMCOL_SEED_MODE, DOMCOL_SEED_VALUE and
DOMCOL_LOG_LEVEL. Flags given on the command line take precedence. A seed
value, from --seed-value or DOMCOL_SEED_VALUE, selects manual seeding unless a
seed mode is also given.

Examples:
  # Three dominant colours (default)
  domcol extract photo.jpg

  # Five colours, largest first, as JSON
  domcol extract -c 5 --sort -f json photo.jpg

  # Mean-shift with a 40 unit radius and 20 runs
  domcol extract -a meanshift -r 40 --shifts 20 photo.png

  # Reproducible output across different images
  domcol extract --seed-mode manual --seed-value 7 photo.webp

  # Table with colour swatches
  domcol extract -f table --preview photo.png.xz`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, args[0])
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&o.algorithm, "algorithm", "a", string(def.Algorithm), "extraction algorithm (kmeans, meanshift)")
	flags.IntVarP(&o.colours, "colours", "c", def.Colours, "number of k-means clusters")
	flags.Float64VarP(&o.radius, "radius", "r", def.Radius, "mean-shift query radius in RGB units")
	flags.IntVar(&o.shifts, "shifts", def.Shifts, "number of mean-shift runs")
	flags.BoolVar(&o.randomStart, "random-start", false, "start mean-shift runs at random pixels instead of black")
	flags.IntVar(&o.resize, "resize", def.Resize, "fit the image into a square of this side before clustering (0 disables)")
	flags.IntVar(&o.maxIterations, "max-iterations", 0, "cap on k-means rounds or mean-shift steps (0 uses the default)")
	flags.IntVar(&o.seedAttempts, "seed-attempts", 0, "cap on k-means seed sampling (0 uses 16 x pixels)")
	enumFlag(flags, &o.seedMode, "seed-mode", "", string(def.Seed.Mode), "seed mode (content, filepath, manual, random)", seedModes()...)
	flags.Int64Var(&o.seedValue, "seed-value", 0, "seed for --seed-mode manual (implies it)")
	enumFlag(flags, &o.format, "format", "f", formatHex, "output format (hex, rgb, json, table)", validFormats...)
	flags.BoolVar(&o.sort, "sort", false, "order colours by the share of the image they cover")
	flags.BoolVar(&o.preview, "preview", false, "show colour swatches when writing to a terminal")
	flags.StringVarP(&o.output, "output", "o", "", "output file (default: stdout)")

	return cmd
}

// config merges defaults, DOMCOL_* variables and the flags that were set.
func (o *extractOptions) config(cmd *cobra.Command) (config.Config, error) {
	flags := cmd.Flags()
	return config.NewBuilder().
		WithEnvConfig().
		WithOverride(func(c *config.Config) {
			if flags.Changed("algorithm") {
				c.Algorithm = colour.Algorithm(strings.ToLower(o.algorithm))
			}
			if flags.Changed("colours") {
				c.Colours = o.colours
			}
			if flags.Changed("radius") {
				c.Radius = o.radius
			}
			if flags.Changed("shifts") {
				c.Shifts = o.shifts
			}
			if flags.Changed("random-start") {
				c.RandomStart = o.randomStart
			}
			if flags.Changed("resize") {
				c.Resize = o.resize
			}
			if flags.Changed("max-iterations") {
				c.MaxIterations = o.maxIterations
			}
			if flags.Changed("seed-attempts") {
				c.SeedAttempts = o.seedAttempts
			}
			if flags.Changed("seed-value") {
				v := o.seedValue
				c.Seed.Value = &v
				c.Seed.Mode = seed.ModeManual
			}
			if flags.Changed("seed-mode") {
				c.Seed.Mode = seed.Mode(o.seedMode)
			}
		}).
		Build()
}

func (o *extractOptions) run(cmd *cobra.Command, imagePath string) error {
	cfg, err := o.config(cmd)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := o.root.logger(cmd, cfg.LogLevel)
	if err != nil {
		return err
	}

	if err := image.ValidateImagePath(imagePath); err != nil {
		return fmt.Errorf("invalid image path: %w", err)
	}
	path, err := image.ResolveImagePath(imagePath)
	if err != nil {
		return fmt.Errorf("failed to resolve image path: %w", err)
	}

	logger.Debug("loading image", "path", path)
	img, err := image.NewFileLoader().Load(path)
	if err != nil {
		return fmt.Errorf("failed to load image: %w", err)
	}
	bounds := img.Bounds()
	logger.Debug("image loaded", "width", bounds.Dx(), "height", bounds.Dy())

	if cfg.Resize > 0 {
		img = image.FitInSquare(img, cfg.Resize)
		if b := img.Bounds(); b != bounds {
			logger.Debug("image resized", "width", b.Dx(), "height", b.Dy())
		}
	}

	src := pixbuf.NewImageSource(image.ToNRGBA(img))
	seedValue, err := o.seed(src, path, cfg.Seed)
	if err != nil {
		return err
	}
	logger.Debug("seed derived", "mode", cfg.Seed.Mode, "seed", seedValue)

	extractor, err := colour.NewExtractor(cfg.Algorithm, colour.ExtractorOptions{
		Rand:          seed.NewRand(seedValue),
		MaxIterations: cfg.MaxIterations,
		SeedAttempts:  cfg.SeedAttempts,
		Radius:        cfg.Radius,
		RandomStart:   cfg.RandomStart,
		Logger:        logger.Named(string(cfg.Algorithm)),
	})
	if err != nil {
		return fmt.Errorf("failed to create extractor: %w", err)
	}

	count := cfg.Colours
	if cfg.Algorithm == colour.AlgorithmMeanShift {
		count = cfg.Shifts
	}

	palette, err := extractor.Extract(src, count)
	if err != nil {
		return explainExtractError(err, cfg)
	}
	logger.Debug("extracted colours", "count", palette.Len())

	if o.sort {
		palette.SortByWeight()
	}

	var out io.Writer = cmd.OutOrStdout()
	preview := o.preview && o.output == "" && previewSupported(out)
	if o.preview && !preview {
		logger.Debug("colour preview disabled: output is not a colour terminal")
	}

	rendered, err := formatPalette(palette, o.format, preview)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	if o.output != "" {
		logger.Debug("writing output", "path", o.output)
		if err := os.WriteFile(o.output, []byte(rendered), 0o644); err != nil { // #nosec G306 -- palette output is not sensitive
			return fmt.Errorf("failed to write output file: %w", err)
		}
		return nil
	}

	_, err = io.WriteString(out, rendered)
	return err
}

// seed derives the RNG seed. Content seeds hash the pixels that will be
// clustered, after resizing.
func (o *extractOptions) seed(src pixbuf.Source, path string, cfg seed.Config) (int64, error) {
	var view *pixbuf.View
	if cfg.Mode == seed.ModeContent {
		v, err := src.Open()
		if err != nil {
			return 0, fmt.Errorf("failed to read pixels: %w", err)
		}
		defer src.Close()
		view = v
	}

	s, err := seed.Calculate(view, path, cfg)
	if err != nil {
		return 0, fmt.Errorf("failed to derive seed: %w", err)
	}
	return s, nil
}

// explainExtractError adds a hint for failures the user can fix with flags.
func explainExtractError(err error, cfg config.Config) error {
	switch {
	case errors.Is(err, colour.ErrSeedingExhausted):
		return fmt.Errorf("failed to extract colours: %w (the image may have fewer than %d distinct colours; try a smaller --colours)", err, cfg.Colours)
	case errors.Is(err, colour.ErrEmptyRange):
		return fmt.Errorf("failed to extract colours: %w (try a larger --radius or --random-start)", err)
	default:
		return fmt.Errorf("failed to extract colours: %w", err)
	}
}

func seedModes() []string {
	modes := seed.ValidModes()
	names := make([]string, len(modes))
	for i, m := range modes {
		names[i] = string(m)
	}
	return names
}

// previewSupported reports whether ANSI swatches should be written to w.
// Writers that are not files, such as buffers in tests, are trusted.
func previewSupported(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return colour.SupportsANSIColours(f)
	}
	return true
}

// formatPalette formats the palette according to the specified format.
func formatPalette(palette *colour.Palette, format string, showPreview bool) (string, error) {
	switch format {
	case formatHex:
		return formatHexLines(palette, showPreview), nil
	case formatRGB:
		return formatRGBLines(palette, showPreview), nil
	case formatJSON:
		jsonBytes, err := palette.ToJSON()
		if err != nil {
			return "", fmt.Errorf("failed to convert to JSON: %w", err)
		}
		return string(jsonBytes) + "\n", nil
	case formatTable:
		return formatPaletteTable(palette, showPreview), nil
	default:
		return "", fmt.Errorf("unsupported format: %s (supported: %s)", format, strings.Join(validFormats, ", "))
	}
}

// formatHexLines formats the palette as one hex colour code per line.
func formatHexLines(palette *colour.Palette, showPreview bool) string {
	var b strings.Builder
	for _, rgb := range palette.ToRGBSlice() {
		if showPreview {
			b.WriteString(colour.FormatColourWithPreview(rgb, previewWidth))
		} else {
			b.WriteString(rgb.Hex())
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// formatRGBLines formats the palette as one rgb() value per line.
func formatRGBLines(palette *colour.Palette, showPreview bool) string {
	var b strings.Builder
	for _, rgb := range palette.ToRGBSlice() {
		if showPreview {
			b.WriteString(colour.ColourPreview(rgb, previewWidth))
			b.WriteByte(' ')
		}
		b.WriteString(rgb.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// formatPaletteTable lists every colour with its share of the image.
// Mean-shift palettes carry no shares and show "-".
func formatPaletteTable(palette *colour.Palette, showPreview bool) string {
	headers := []string{"#", "Hex", "RGB", "ARGB", "Share"}
	if showPreview {
		headers = append(headers, "Preview")
	}

	table := NewTable(headers)
	table.SetAlign(0, AlignRight)
	table.SetAlign(4, AlignRight)

	weighted := palette.HasWeights()
	for i, c := range palette.All() {
		rgb := colour.ToRGB(c)
		share := "-"
		if weighted {
			share = strconv.FormatFloat(palette.Weights[i]*100, 'f', 1, 64) + "%"
		}
		row := []string{
			strconv.Itoa(i + 1),
			rgb.Hex(),
			rgb.String(),
			fmt.Sprintf("0x%08X", colour.FromRGB(rgb).ARGB()),
			share,
		}
		if showPreview {
			row = append(row, colour.ColourPreview(rgb, previewWidth))
		}
		table.AddRow(row)
	}
	return table.Render()
}
