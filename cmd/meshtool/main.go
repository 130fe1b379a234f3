// meshtool is a CLI utility for building and inspecting procedural meshes
// without opening a window.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/endless/internal/config"
	"github.com/Faultbox/endless/internal/engine/camera"
	"github.com/Faultbox/endless/internal/engine/snapshot"
	"github.com/Faultbox/endless/internal/logger"
	"github.com/Faultbox/endless/internal/plot"
	"github.com/Faultbox/endless/internal/scene"
	"github.com/Faultbox/endless/pkg/math"
	"github.com/Faultbox/endless/pkg/mesh"
	"github.com/Faultbox/endless/pkg/primitives"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "shapes":
		cmdShapes()
	case "info":
		cmdInfo(args)
	case "plot":
		cmdPlot(args)
	case "dump":
		cmdDump(args)
	case "render":
		cmdRender(args)
	case "init-config":
		cmdInitConfig(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`meshtool - procedural mesh utility

Usage:
  meshtool <command> [options]

Commands:
  shapes                   List shapes, sphere kinds and colors
  info [shape options]     Show vertex, index and bounds statistics
  plot [shape options]     Draw the mesh as text
  dump [shape options]     Write vertices and indices as YAML
  render [shape options]   Render the mesh to a PNG file
  init-config [path]       Write a config file with default values

Shape options:
  -config <file>  -shape <name>  -sphere <kind>  -subdivide <n>  -dedup
  -normals <mode>  -size <f>  -radius <f>  -segments <n>  -color <name>  -debug

Examples:
  meshtool info -shape sphere -sphere icosahedron -subdivide 3
  meshtool plot -shape ring -segments 32 -plane xy
  meshtool render -shape cube -subdivide 2 -wireframe -o cube.png`)
}

// shapeFlags binds the shape options shared by every building command.
type shapeFlags struct {
	config    *string
	shape     *string
	sphere    *string
	subdivide *int
	dedup     *bool
	normals   *string
	size      *float64
	radius    *float64
	segments  *int
	color     *string
	debug     *bool
}

func newShapeFlags(fs *flag.FlagSet) *shapeFlags {
	return &shapeFlags{
		config:    fs.String("config", "", "Config file to start from"),
		shape:     fs.String("shape", "", "Shape (triangle, square, cube, line, ring, sphere)"),
		sphere:    fs.String("sphere", "", "Sphere kind (uv, icosahedron, spherified-cube)"),
		subdivide: fs.Int("subdivide", -1, "Subdivision level"),
		dedup:     fs.Bool("dedup", false, "Merge identical vertices"),
		normals:   fs.String("normals", "", "Vertex normals (keep, face, smooth)"),
		size:      fs.Float64("size", 0, "Edge length for triangle, square and cube"),
		radius:    fs.Float64("radius", 0, "Radius for ring and sphere"),
		segments:  fs.Int("segments", 0, "Segments for line and ring"),
		color:     fs.String("color", "", "Palette color"),
		debug:     fs.Bool("debug", false, "Log build steps to stderr"),
	}
}

// build loads the config, applies the flag overrides and builds the shape.
func (f *shapeFlags) build() (primitives.Geometry, *config.Config, error) {
	level := "warn"
	if *f.debug {
		level = "debug"
	}
	logger.InitWithWriter(level, os.Stderr)

	cfg := config.Default()
	if *f.config != "" {
		var err error
		if cfg, err = config.LoadFile(*f.config); err != nil {
			return nil, nil, err
		}
	}

	s := &cfg.Shape
	if *f.shape != "" {
		s.Kind = *f.shape
	}
	if *f.sphere != "" {
		s.Sphere = *f.sphere
	}
	if *f.subdivide >= 0 {
		s.Subdivide = *f.subdivide
	}
	if *f.dedup {
		s.Dedup = true
	}
	if *f.normals != "" {
		s.Normals = *f.normals
	}
	if *f.size > 0 {
		s.Size = float32(*f.size)
	}
	if *f.radius > 0 {
		s.Radius = float32(*f.radius)
	}
	if *f.segments > 0 {
		s.Segments = *f.segments
	}
	if *f.color != "" {
		s.Color = *f.color
		s.EndColor = *f.color
	}

	if err := s.Validate(); err != nil {
		return nil, nil, err
	}
	g, err := scene.Build(*s)
	if err != nil {
		return nil, nil, err
	}
	return g, cfg, nil
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func cmdShapes() {
	fmt.Println("Shapes:")
	for _, s := range primitives.Shapes() {
		fmt.Printf("  %s\n", s)
	}
	fmt.Println()
	fmt.Println("Sphere kinds:")
	for _, k := range []primitives.SphereKind{primitives.UVSphere, primitives.Icosahedron, primitives.SpherifiedCube} {
		fmt.Printf("  %-16s max subdivide %d\n", k, k.MaxLevel())
	}
	fmt.Println()
	fmt.Printf("Colors:\n  %s\n", strings.Join(math.ColorNames(), ", "))
}

func cmdInfo(args []string) {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	sf := newShapeFlags(fs)
	fs.Parse(args)

	g, _, err := sf.build()
	if err != nil {
		fail(err)
	}

	stats, err := scene.Measure(g)
	if err != nil {
		fail(err)
	}

	p := message.NewPrinter(language.English)
	p.Printf("Shape:     %s\n", primitives.Describe(g))
	p.Printf("Vertices:  %d\n", stats.Vertices)
	p.Printf("Unique:    %d\n", stats.Unique)
	p.Printf("Indices:   %d\n", stats.Indices)
	p.Printf("Triangles: %d\n", stats.Triangles)
	p.Printf("Bounds:    %v .. %v\n", stats.Bounds.Min, stats.Bounds.Max)
	p.Printf("Size:      %v\n", stats.Bounds.Size())
}

func cmdPlot(args []string) {
	fs := flag.NewFlagSet("plot", flag.ExitOnError)
	sf := newShapeFlags(fs)
	width := fs.Int("w", 80, "Columns")
	height := fs.Int("h", 50, "Rows")
	plane := fs.String("plane", "xy", "Projection plane (xy, xz, zy)")
	raw := fs.Bool("raw", false, "Use coordinates as cell numbers instead of fitting")
	edges := fs.Bool("edges", false, "Trace triangle edges")
	fs.Parse(args)

	g, _, err := sf.build()
	if err != nil {
		fail(err)
	}

	opts := plot.DefaultOptions()
	opts.Width = *width
	opts.Height = *height
	opts.Fit = !*raw
	opts.Edges = *edges
	if opts.Plane, err = plot.ParsePlane(*plane); err != nil {
		fail(err)
	}

	canvas, err := plot.Mesh(g.Mesh(), opts)
	if err != nil {
		fail(err)
	}
	if _, err := canvas.WriteTo(os.Stdout); err != nil {
		fail(err)
	}
	if canvas.Clipped > 0 {
		fmt.Fprintf(os.Stderr, "%d vertices outside the grid\n", canvas.Clipped)
	}
}

func cmdDump(args []string) {
	fs := flag.NewFlagSet("dump", flag.ExitOnError)
	sf := newShapeFlags(fs)
	output := fs.String("o", "", "Output file (default stdout)")
	fs.Parse(args)

	g, _, err := sf.build()
	if err != nil {
		fail(err)
	}

	if *output == "" {
		if err := writeMeshYAML(os.Stdout, g.Mesh()); err != nil {
			fail(err)
		}
		return
	}

	f, err := os.Create(*output)
	if err != nil {
		fail(err)
	}
	err = writeMeshYAML(f, g.Mesh())
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		fail(fmt.Errorf("write %s: %w", *output, err))
	}
}

// writeMeshYAML encodes m to w with two-space indentation.
func writeMeshYAML(w io.Writer, m *mesh.Mesh) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return err
	}
	return enc.Close()
}

func cmdRender(args []string) {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	sf := newShapeFlags(fs)
	output := fs.String("o", "", "Output PNG (default: timestamped file in -dir)")
	dir := fs.String("dir", "screenshots", "Directory for timestamped output")
	width := fs.Int("w", 640, "Image width")
	height := fs.Int("h", 480, "Image height")
	yaw := fs.Float64("yaw", 30, "Camera yaw in degrees")
	pitch := fs.Float64("pitch", 25, "Camera pitch in degrees")
	wireframe := fs.Bool("wireframe", false, "Outline triangles")
	caption := fs.Bool("caption", true, "Print the shape description")
	fs.Parse(args)

	g, cfg, err := sf.build()
	if err != nil {
		fail(err)
	}

	cam := camera.NewOrbitCamera()
	cam.FitToBounds(g.Mesh().Bounds())
	cam.Yaw = float32(*yaw) * math.DegToRad
	cam.Pitch = float32(*pitch) * math.DegToRad

	opts := snapshot.DefaultOptions()
	opts.Width = *width
	opts.Height = *height
	opts.Wireframe = *wireframe || cfg.Window.Wireframe
	opts.VertexNormals = cfg.Shape.ComputedNormals()
	opts.Light = cfg.Light.Direction()
	opts.Ambient = cfg.Light.Ambient
	if bg, ok := math.ColorByName(cfg.Window.Background); ok {
		opts.Background = bg
	}
	if *caption {
		opts.Caption = primitives.Describe(g)
	}

	img, err := snapshot.Render(g.Mesh(), cam, opts)
	if err != nil {
		fail(err)
	}

	path := *output
	if path == "" {
		path, err = snapshot.NewCapture(*dir, g.Shape().String()).SaveImage(img)
	} else {
		err = snapshot.WritePNG(path, img)
	}
	if err != nil {
		fail(err)
	}
	fmt.Printf("Rendered %s\n", path)
}

func cmdInitConfig(args []string) {
	fs := flag.NewFlagSet("init-config", flag.ExitOnError)
	force := fs.Bool("f", false, "Overwrite an existing file")
	fs.Parse(args)

	path := config.FileName
	if fs.NArg() > 0 {
		path = fs.Arg(0)
	}
	if _, err := os.Stat(path); err == nil && !*force {
		fail(fmt.Errorf("%s already exists (use -f to overwrite)", path))
	}

	if err := config.Default().SaveTo(path); err != nil {
		fail(err)
	}
	fmt.Printf("Wrote %s\n", path)
}
