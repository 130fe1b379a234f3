package primitives

import (
	"fmt"
	"strings"

	"github.com/chewxy/math32"

	"github.com/Faultbox/endless/pkg/math"
	"github.com/Faultbox/endless/pkg/mesh"
)

// SphereKind selects how a Spherical is tessellated.
type SphereKind int

const (
	UVSphere SphereKind = iota
	Icosahedron
	SpherifiedCube
)

// Subdivision caps per sphere kind.
const (
	MaxUVSphereLevel       = 5
	MaxIcosahedronLevel    = 7
	MaxSpherifiedCubeLevel = 6
)

const (
	uvBaseSegments  = 32
	cubeBaseSamples = 8
	spiralFrequency = 6
)

var sphereKindNames = map[SphereKind]string{
	UVSphere:       "uv",
	Icosahedron:    "icosahedron",
	SpherifiedCube: "spherified-cube",
}

func (k SphereKind) String() string {
	if name, ok := sphereKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("SphereKind(%d)", int(k))
}

// ParseSphereKind accepts the names printed by String, case-insensitively.
func ParseSphereKind(s string) (SphereKind, error) {
	for k, name := range sphereKindNames {
		if strings.EqualFold(s, name) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown sphere kind %q", mesh.ErrInvalidParameter, s)
}

// MaxLevel returns the highest subdivision level the kind accepts.
func (k SphereKind) MaxLevel() int {
	switch k {
	case Icosahedron:
		return MaxIcosahedronLevel
	case SpherifiedCube:
		return MaxSpherifiedCubeLevel
	default:
		return MaxUVSphereLevel
	}
}

// Spherical is a sphere approximated by one of the SphereKind tessellations.
type Spherical struct {
	primitive
	kind   SphereKind
	radius float32
	origin math.Position
	level  int
}

// NewSphere builds a sphere of radius around origin at level 0.
func NewSphere(kind SphereKind, radius float32, origin math.Position) (*Spherical, error) {
	if _, ok := sphereKindNames[kind]; !ok {
		return nil, fmt.Errorf("%w: %v", mesh.ErrInvalidParameter, kind)
	}
	if err := checkPositive("radius", radius); err != nil {
		return nil, err
	}
	if err := checkFinite("origin", origin); err != nil {
		return nil, err
	}

	s := &Spherical{kind: kind, radius: radius, origin: origin}
	s.mesh = s.generate(0)
	return s, nil
}

// Shape reports ShapeSphere.
func (s *Spherical) Shape() Shape { return ShapeSphere }

// Kind returns the tessellation kind.
func (s *Spherical) Kind() SphereKind { return s.kind }

// Radius returns the sphere radius.
func (s *Spherical) Radius() float32 { return s.radius }

// Origin returns the pivot used by Rotate.
func (s *Spherical) Origin() math.Position { return s.origin }

// Level returns the current subdivision level.
func (s *Spherical) Level() int { return s.level }

// Rotate rotates the sphere by angle radians around axis through its origin.
func (s *Spherical) Rotate(angle float32, axis math.Position) {
	s.rotate(angle, axis, s.origin)
}

// Subdivide regenerates the sphere at level. Level 0 is the base mesh;
// every level doubles the UV and spherified-cube grids and splits every
// icosahedron face in four.
func (s *Spherical) Subdivide(level int) error {
	if err := checkLevel(s.kind.String(), level, s.kind.MaxLevel()); err != nil {
		return err
	}
	s.level = level
	s.replace(s.generate(level))
	return nil
}

func (s *Spherical) generate(level int) *mesh.Mesh {
	switch s.kind {
	case Icosahedron:
		return icosphere(s.radius, s.origin, level)
	case SpherifiedCube:
		return spherifiedCube(s.radius, s.origin, cubeBaseSamples<<level)
	default:
		return uvSphere(s.radius, s.origin, uvBaseSegments<<level)
	}
}

func (s *Spherical) String() string {
	return fmt.Sprintf("Spherical{kind: %v, radius: %g, origin: %v, level: %d, mesh: %v}",
		s.kind, s.radius, s.origin, s.level, s.mesh)
}

// spiralColor paints a decorative spiral from the grid coordinates.
func spiralColor(i, j, stacks, sectors int) math.Color {
	latitude := math32.Pi * float32(i) / float32(stacks)
	longitude := 2 * math32.Pi * float32(j) / float32(sectors)

	angle := math32.Abs(longitude-latitude) * 2
	t := math32.Mod(float32(i)/float32(stacks)+angle*spiralFrequency, 2*math32.Pi)

	r := math32.Sin(t)*0.5 + 0.5 - float32(i*j)
	g := math32.Sin(math32.Mod(t+math32.Pi/2, 2*math32.Pi))*0.5 + 0.5
	b := math32.Cos(t)*0.5 + 0.5 + float32(i+j+1)/float32(stacks*sectors/2)

	return math.Color{R: r, G: g, B: b, A: 1}
}

// uvSphere builds a latitude/longitude grid with n stacks and n sectors.
// Rows run from the north pole (+Z) to the south pole and repeat the seam
// column so every row has n+1 vertices.
func uvSphere(radius float32, origin math.Position, n int) *mesh.Mesh {
	stacks, sectors := n, n
	sectorStep := 2 * math32.Pi / float32(sectors)
	stackStep := math32.Pi / float32(stacks)
	normal := math.Normal{Z: 1}

	vertices := make([]mesh.Vertex, 0, (stacks+1)*(sectors+1))
	for i := range stacks + 1 {
		stackAngle := math32.Pi/2 - float32(i)*stackStep
		xy := radius * math32.Cos(stackAngle)
		z := radius * math32.Sin(stackAngle)

		for j := range sectors + 1 {
			sin, cos := math32.Sincos(float32(j) * sectorStep)
			p := math.Pos(origin.X+xy*cos, origin.Y+xy*sin, origin.Z+z)
			vertices = append(vertices, mesh.NewVertex(p, spiralColor(i, j, stacks, sectors), normal))
		}
	}

	indices := make([]uint32, 0, stacks*sectors*6)
	for i := range stacks {
		k1 := uint32(i * (sectors + 1))
		k2 := k1 + uint32(sectors) + 1
		for j := range uint32(sectors) {
			indices = append(indices,
				k1+j, k2+j, k2+j+1,
				k1+j, k2+j+1, k1+j+1,
			)
		}
	}

	return mesh.New(vertices, indices)
}

var (
	goldenRatio = (1 + math32.Sqrt(5)) / 2

	icosahedronVertices = [12][3]float32{
		{-1, goldenRatio, 0},
		{1, goldenRatio, 0},
		{-1, -goldenRatio, 0},
		{1, -goldenRatio, 0},
		{0, -1, goldenRatio},
		{0, 1, goldenRatio},
		{0, -1, -goldenRatio},
		{0, 1, -goldenRatio},
		{goldenRatio, 0, -1},
		{goldenRatio, 0, 1},
		{-goldenRatio, 0, -1},
		{-goldenRatio, 0, 1},
	}

	icosahedronFaces = []uint32{
		0, 11, 5,
		0, 5, 1,
		0, 1, 7,
		0, 7, 10,
		0, 10, 11,
		1, 5, 9,
		5, 11, 4,
		11, 10, 2,
		10, 7, 6,
		7, 1, 8,
		3, 9, 4,
		3, 4, 2,
		3, 2, 6,
		3, 6, 8,
		3, 8, 9,
		4, 9, 5,
		2, 4, 11,
		6, 2, 10,
		8, 6, 7,
		9, 8, 1,
	}
)

// icosphere builds the golden-ratio icosahedron and splits each face into
// four, level times. New vertices are pushed out to the circumsphere of the
// base solid, whose radius is radius * sqrt(1 + phi^2).
func icosphere(radius float32, origin math.Position, level int) *mesh.Mesh {
	normal := math.Normal{Z: 1}
	vertices := make([]mesh.Vertex, 0, 10*(1<<(2*level))+2)
	for _, v := range icosahedronVertices {
		p := math.Pos(v[0]*radius+origin.X, v[1]*radius+origin.Y, v[2]*radius+origin.Z)
		vertices = append(vertices, mesh.NewVertex(p, math.Blue, normal))
	}
	indices := append([]uint32(nil), icosahedronFaces...)

	circumradius := radius * math32.Sqrt(1+goldenRatio*goldenRatio)

	for range level {
		midpoints := make(map[[2]uint32]uint32, len(indices))
		midpoint := func(a, b uint32) uint32 {
			key := [2]uint32{min(a, b), max(a, b)}
			if idx, ok := midpoints[key]; ok {
				return idx
			}
			mid := vertices[a].Position.Lerp(vertices[b].Position, 0.5)
			dir := mid.Sub(origin).Normalize()
			p := math.Pos(origin.X+dir.X*circumradius, origin.Y+dir.Y*circumradius, origin.Z+dir.Z*circumradius)

			idx := uint32(len(vertices))
			vertices = append(vertices, mesh.NewVertex(p, math.Blue, normal))
			midpoints[key] = idx
			return idx
		}

		next := make([]uint32, 0, len(indices)*4)
		for f := 0; f < len(indices); f += 3 {
			a, b, c := indices[f], indices[f+1], indices[f+2]
			ab, bc, ca := midpoint(a, b), midpoint(b, c), midpoint(c, a)
			next = append(next,
				a, ab, ca,
				b, bc, ab,
				c, ca, bc,
				ab, bc, ca,
			)
		}
		indices = next
	}

	return mesh.New(vertices, indices)
}

// spherify maps a point on the [-1, 1] cube onto the unit sphere with the
// closed-form per-axis warp, which spreads samples more evenly than
// normalizing.
func spherify(x, y, z float32) (float32, float32, float32) {
	x2, y2, z2 := x*x, y*y, z*z
	return x * math32.Sqrt(1-y2/2-z2/2+y2*z2/3),
		y * math32.Sqrt(1-z2/2-x2/2+z2*x2/3),
		z * math32.Sqrt(1-x2/2-y2/2+x2*y2/3)
}

// spherifiedCube samples each of the six cube faces on a g x g grid over
// [-1, 1) and warps every sample onto the sphere.
func spherifiedCube(radius float32, origin math.Position, g int) *mesh.Mesh {
	normal := math.Normal{Z: 1}
	vertices := make([]mesh.Vertex, 0, 6*g*g)
	indices := make([]uint32, 0, 6*(g-1)*(g-1)*6)
	step := 2 / float32(g)
	stride := uint32(g)

	for face := range 6 {
		for i := range g {
			for j := range g {
				sx := float32(i)*step - 1
				sy := float32(j)*step - 1

				var x, y, z float32
				switch face {
				case 0:
					x, y, z = 1, sx, sy
				case 1:
					x, y, z = -1, sx, sy
				case 2:
					x, y, z = sx, 1, sy
				case 3:
					x, y, z = sx, -1, sy
				case 4:
					x, y, z = sx, sy, 1
				default:
					x, y, z = sx, sy, -1
				}

				x, y, z = spherify(x, y, z)
				p := math.Pos(x*radius, y*radius, z*radius).Offset(origin)
				vertices = append(vertices, mesh.NewVertex(p, math.Blue, normal))

				if i < g-1 && j < g-1 {
					idx := uint32(face*g*g + i*g + j)
					indices = append(indices,
						idx, idx+stride+1, idx+1,
						idx+1, idx+stride+1, idx+stride,
					)
				}
			}
		}
	}

	return mesh.New(vertices, indices)
}
