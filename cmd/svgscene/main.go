// Command svgscene renders an animated demo scene into PNG frames.
package main

import (
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"

	"github.com/benoitkugler/svgscene/svganim"
	"github.com/benoitkugler/svgscene/svgnode"
	"github.com/benoitkugler/svgscene/svgrender"
	"github.com/spf13/cobra"
	"golang.org/x/image/draw"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "svgscene",
		Short:        "Render animated scene trees",
		SilenceUsage: true,
	}
	root.AddCommand(newRenderCmd())
	return root
}

type renderOptions struct {
	config        string
	out           string
	frames        int
	fps           float64
	width, height int
}

func newRenderCmd() *cobra.Command {
	var opts renderOptions
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the demo scene into PNG frames",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return render(opts)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&opts.config, "config", "", "TOML file with the renderer settings")
	flags.StringVar(&opts.out, "out", ".", "output directory")
	flags.IntVar(&opts.frames, "frames", 24, "number of frames")
	flags.Float64Var(&opts.fps, "fps", 12, "frames per second")
	flags.IntVar(&opts.width, "width", 200, "frame width, in pixels")
	flags.IntVar(&opts.height, "height", 150, "frame height, in pixels")
	return cmd
}

func render(opts renderOptions) error {
	if opts.frames <= 0 || opts.fps <= 0 {
		return fmt.Errorf("frames and fps should be positive, got %d and %g", opts.frames, opts.fps)
	}
	cfg := svgrender.DefaultConfig()
	if opts.config != "" {
		var err error
		cfg, err = svgrender.LoadConfig(opts.config)
		if err != nil {
			return err
		}
	}

	img := image.NewRGBA(image.Rect(0, 0, opts.width, opts.height))
	renderer, err := svgrender.NewRenderer(img, nil, svgrender.WithConfig(cfg))
	if err != nil {
		return err
	}

	var dirty []*svgnode.Node
	scheduler := svganim.RepaintFunc(func(n *svgnode.Node) { dirty = append(dirty, n) })
	duration := float32(opts.frames-1) / float32(opts.fps)
	scene, err := buildScene(renderer.Units(), scheduler, max(duration, 1/float32(opts.fps)))
	if err != nil {
		return err
	}
	renderer.SetTree(scene.root)

	if err := os.MkdirAll(opts.out, 0o755); err != nil {
		return err
	}
	dt := 1 / float32(opts.fps)
	for i := range opts.frames {
		if i > 0 {
			scene.timeline.Update(dt)
		}
		if i == 0 || len(dirty) != 0 {
			draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
			renderer.RepaintAll()
			dirty = dirty[:0]
		}
		path := filepath.Join(opts.out, fmt.Sprintf("frame%03d.png", i))
		if err := writePNG(path, img); err != nil {
			return err
		}
	}
	log.Printf("wrote %d frames to %s", opts.frames, opts.out)
	return nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
