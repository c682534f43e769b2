package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/dustin/go-humanize"
	"github.com/facebookincubator/go-belt"
	"github.com/facebookincubator/go-belt/tool/logger/implementation/logrus"
	"github.com/spf13/pflag"
	"github.com/xaionaro-go/observability"
	"github.com/xaionaro-go/rgb2gray/caps"
	"github.com/xaionaro-go/rgb2gray/element"
	"github.com/xaionaro-go/rgb2gray/element/rgb2gray"
	"github.com/xaionaro-go/rgb2gray/host"
	"github.com/xaionaro-go/rgb2gray/logger"
	"github.com/xaionaro-go/rgb2gray/types"
	"github.com/xaionaro-go/rgb2gray/video"
	"github.com/xaionaro-go/typing"
)

func main() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "syntax: %s [flags] <input.bgrx|-> <output|->\n", os.Args[0])
		pflag.PrintDefaults()
	}

	loggerLevel := logger.LevelWarning
	pflag.Var(&loggerLevel, "log-level", "Log level")
	width := pflag.Int("width", 0, "frame width in pixels")
	height := pflag.Int("height", 0, "frame height in pixels")
	frameRate := types.Rational{Num: 0, Den: 1}
	pflag.Var(&frameRate, "framerate", "frame rate (e.g. 30, 30000/1001, ~29.97)")
	outputFormat := pflag.String("output-format", "", "output pixel format (GRAY8 or BGRx); empty means the element's preference")
	elementName := pflag.String("element", rgb2gray.ElementName, "name of the element to use")
	properties := pflag.StringArray("property", nil, "element property as name=value (e.g. shift=10, invert=true); may be repeated")
	pngPreview := pflag.String("png-preview", "", "save the last output frame as a PNG file")
	statsInterval := pflag.Duration("stats-interval", 0, "print statistics with this interval (0 disables)")
	listElements := pflag.Bool("list-elements", false, "list registered elements and exit")
	pflag.Parse()

	l := logrus.Default().WithLevel(loggerLevel)
	ctx := logger.CtxWithLogger(context.Background(), l)
	logger.SetDefault(func() logger.Logger {
		return l
	})
	defer belt.Flush(ctx)

	if err := rgb2gray.Register(ctx, element.DefaultRegistry); err != nil {
		l.Fatal(err)
	}

	if *listElements {
		for _, name := range element.DefaultRegistry.Names(ctx) {
			e, err := element.DefaultRegistry.New(ctx, name)
			if err != nil {
				l.Fatal(err)
			}
			md := e.Metadata()
			fmt.Printf("%s: %s (%s)\n", name, md.LongName, md.Description)
		}
		return
	}

	if len(pflag.Args()) != 2 {
		pflag.Usage()
		os.Exit(1)
	}

	ctx, cancelFn := signal.NotifyContext(ctx, os.Interrupt)
	defer cancelFn()

	e, err := element.DefaultRegistry.New(ctx, *elementName)
	if err != nil {
		l.Fatal(err)
	}
	if err := setProperties(ctx, e, *properties); err != nil {
		l.Fatal(err)
	}

	inputInfo, err := video.NewInfo(types.PixelFormatBGRx, *width, *height, frameRate)
	if err != nil {
		l.Fatalf("invalid input format: %v", err)
	}

	format, err := parseOutputFormat(*outputFormat)
	if err != nil {
		l.Fatal(err)
	}
	downstream := downstreamCaps(format)

	h := host.New(ctx, e)
	defer h.Close(ctx)
	outputCaps, err := h.Negotiate(ctx, inputInfo.Caps(), downstream)
	if err != nil {
		l.Fatalf("unable to negotiate: %v", err)
	}
	outputInfo, err := video.InfoFromCaps(outputCaps)
	if err != nil {
		l.Fatalf("unable to resolve the output caps %s: %v", outputCaps, err)
	}
	l.Infof("%s -> %s", inputInfo, outputInfo)

	input, err := openInput(pflag.Arg(0))
	if err != nil {
		l.Fatal(err)
	}
	defer input.Close()
	output, err := openOutput(pflag.Arg(1))
	if err != nil {
		l.Fatal(err)
	}
	defer output.Close()

	if *statsInterval > 0 {
		observability.Go(ctx, func(ctx context.Context) {
			printStats(ctx, h, *statsInterval)
		})
	}

	lastFrame, err := run(ctx, h, input, output, inputInfo.Size)
	if err != nil {
		l.Fatal(err)
	}
	fmt.Fprintln(os.Stderr, formatStats(h.Stats()))

	if *pngPreview != "" && lastFrame != nil {
		if err := savePreview(*pngPreview, outputInfo, lastFrame); err != nil {
			l.Fatal(err)
		}
	}
}

func parseOutputFormat(s string) (typing.Optional[types.PixelFormat], error) {
	if s == "" {
		return typing.Optional[types.PixelFormat]{}, nil
	}
	format := types.PixelFormatFromString(s)
	if format == types.PixelFormatUnknown {
		return typing.Optional[types.PixelFormat]{}, fmt.Errorf("unknown output format %q", s)
	}
	return typing.Opt(format), nil
}

// downstreamCaps returns nil (no restriction) if the format is not set.
func downstreamCaps(format typing.Optional[types.PixelFormat]) *caps.Caps {
	if !format.IsSet() {
		return nil
	}
	return &caps.Caps{caps.NewStructure(caps.MediaTypeRawVideo,
		caps.Field{Name: "format", Value: caps.String(format.Get())},
	)}
}

func setProperties(ctx context.Context, e element.Transform, properties []string) error {
	if len(properties) == 0 {
		return nil
	}
	owner, ok := e.(element.PropertyOwner)
	if !ok {
		return fmt.Errorf("element %s has no properties", e)
	}
	for _, p := range properties {
		name, value, ok := strings.Cut(p, "=")
		if !ok {
			return fmt.Errorf("property %q is not in the form name=value", p)
		}
		if err := owner.SetProperty(ctx, name, value); err != nil {
			return err
		}
	}
	return nil
}

// run reads whole frames from input until EOF and writes the transformed
// frames to output. It returns the last output frame.
func run(
	ctx context.Context,
	h *host.Host,
	input io.Reader,
	output io.Writer,
	frameSize int,
) ([]byte, error) {
	var lastFrame []byte
	buf := make([]byte, frameSize)
	for {
		select {
		case <-ctx.Done():
			return lastFrame, ctx.Err()
		default:
		}

		_, err := io.ReadFull(input, buf)
		switch {
		case errors.Is(err, io.EOF):
			return lastFrame, nil
		case errors.Is(err, io.ErrUnexpectedEOF):
			return lastFrame, fmt.Errorf("the input ends with a partial frame")
		case err != nil:
			return lastFrame, fmt.Errorf("unable to read a frame: %w", err)
		}

		out, err := h.Process(ctx, buf)
		if err != nil {
			return lastFrame, err
		}
		if _, err := output.Write(out); err != nil {
			return lastFrame, fmt.Errorf("unable to write a frame: %w", err)
		}
		lastFrame = out
	}
}

func openInput(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}

func openOutput(path string) (io.WriteCloser, error) {
	if path == "-" {
		return os.Stdout, nil
	}
	return os.Create(path)
}

func savePreview(path string, info video.Info, data []byte) error {
	frame, err := video.MapFrame(info, data)
	if err != nil {
		return err
	}
	img, err := frame.ToImage()
	if err != nil {
		return err
	}
	return imgio.Save(path, img, imgio.PNGEncoder())
}

func printStats(ctx context.Context, h *host.Host, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			fmt.Fprintln(os.Stderr, formatStats(h.Stats()))
		}
	}
}

func formatStats(s types.FrameStatistics) string {
	return fmt.Sprintf(
		"frames: received %d (%s), processed %d, failed %d, generated %s",
		s.Received.Count, humanize.Bytes(s.Received.Bytes),
		s.Processed.Count, s.Failed.Count,
		humanize.Bytes(s.Generated.Bytes),
	)
}
