// splinetool is a CLI utility for inspecting, meshing, and ray-testing
// spline primitives.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/mapforge/spline/pkg/collide"
	"github.com/mapforge/spline/pkg/nurbs"
	"github.com/mapforge/spline/pkg/primitive"
	"github.com/mapforge/spline/pkg/tessellate"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "info":
		cmdInfo(args)
	case "mesh":
		cmdMesh(args)
	case "hit":
		cmdHit(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`splinetool - spline surface utility

Usage:
  splinetool <command> [options] <shape> <dims...>

Commands:
  info <shape> <dims...>             Show surface structure and bounds
  mesh <shape> <dims...>             Tessellate and print a JSON mesh
  hit  <shape> <dims...>             Cast a ray at the surface

Shapes:
  plane <width> <height>
  sphere <radius>
  cylinder <radius> <height>
  cone <bottom_radius> <top_radius> <height>
  torus <major_radius> <minor_radius>

Examples:
  splinetool info sphere 1
  splinetool mesh -u 32 -v 32 -o sphere.json sphere 2.5
  splinetool hit -from 0,0,5 -dir 0,0,-1 sphere 1`)
}

func cmdInfo(args []string) {
	s := makeShape("info", args)

	u0, u1 := s.DomainU()
	v0, v1 := s.DomainV()
	min, max := s.Bounds()

	fmt.Printf("Degree:         %dx%d\n", s.DegreeU, s.DegreeV)
	fmt.Printf("Control points: %dx%d\n", s.NumU(), s.NumV())
	fmt.Printf("Knots u:        %v\n", s.KnotsU)
	fmt.Printf("Knots v:        %v\n", s.KnotsV)
	fmt.Printf("Domain:         u [%g, %g], v [%g, %g]\n", u0, u1, v0, v1)
	fmt.Printf("Bounds:         (%g, %g, %g) .. (%g, %g, %g)\n",
		min.X, min.Y, min.Z, max.X, max.Y, max.Z)
	fmt.Printf("Fingerprint:    %016x\n", s.Fingerprint())
}

func cmdMesh(args []string) {
	fs := flag.NewFlagSet("mesh", flag.ExitOnError)
	resU := fs.Int("u", 16, "Grid resolution in u")
	resV := fs.Int("v", 16, "Grid resolution in v")
	name := fs.String("name", "", "Mesh name (defaults to the shape)")
	output := fs.String("o", "", "Output file (defaults to stdout)")
	fs.Parse(args)

	s := makeShape("mesh", fs.Args())
	if *name == "" {
		*name = fs.Arg(0)
	}

	ts, err := tessellate.Tessellate(s, *resU, *resV)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	mesh := ts.Mesh(*name)

	data, err := json.MarshalIndent(mesh, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding mesh: %v\n", err)
		os.Exit(1)
	}
	data = append(data, '\n')

	if *output == "" {
		os.Stdout.Write(data)
	} else {
		if err := os.WriteFile(*output, data, 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s: %d vertices, %d triangles\n",
			*output, mesh.VertexCount(), mesh.TriangleCount())
	}
}

func cmdHit(args []string) {
	fs := flag.NewFlagSet("hit", flag.ExitOnError)
	from := fs.String("from", "0,0,5", "Ray origin as x,y,z")
	dir := fs.String("dir", "0,0,-1", "Ray direction as x,y,z")
	fs.Parse(args)

	s := makeShape("hit", fs.Args())

	origin, err := parseVec(*from)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Bad -from: %v\n", err)
		os.Exit(1)
	}
	direction, err := parseVec(*dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Bad -dir: %v\n", err)
		os.Exit(1)
	}
	if l := direction.Length(); l > nurbs.Epsilon {
		direction = direction.MulScalar(1 / l)
	} else {
		fmt.Fprintln(os.Stderr, "Bad -dir: zero direction")
		os.Exit(1)
	}

	res, err := collide.Intersect(origin, direction, s)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if !res.Hit {
		fmt.Println("Miss")
		return
	}
	fmt.Printf("Hit at:   (%g, %g, %g)\n", res.Point.X, res.Point.Y, res.Point.Z)
	fmt.Printf("Normal:   (%g, %g, %g)\n", res.Normal.X, res.Normal.Y, res.Normal.Z)
	fmt.Printf("Distance: %g\n", res.Distance)
}

// makeShape builds the named primitive from positional arguments, exiting
// with a usage message on any problem.
func makeShape(cmd string, args []string) *nurbs.Surface {
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "Usage: splinetool %s <shape> <dims...>\n", cmd)
		os.Exit(1)
	}
	shape := args[0]
	dims := make([]float64, 0, len(args)-1)
	for _, a := range args[1:] {
		f, err := strconv.ParseFloat(a, 64)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Bad dimension %q: %v\n", a, err)
			os.Exit(1)
		}
		dims = append(dims, f)
	}

	var (
		s   *nurbs.Surface
		err error
	)
	switch {
	case shape == "plane" && len(dims) == 2:
		s, err = primitive.Plane(dims[0], dims[1])
	case shape == "sphere" && len(dims) == 1:
		s, err = primitive.Sphere(dims[0])
	case shape == "cylinder" && len(dims) == 2:
		s, err = primitive.Cylinder(dims[0], dims[1])
	case shape == "cone" && len(dims) == 3:
		s, err = primitive.Cone(dims[0], dims[1], dims[2])
	case shape == "torus" && len(dims) == 2:
		s, err = primitive.Torus(dims[0], dims[1])
	default:
		fmt.Fprintf(os.Stderr, "Unknown shape or wrong dimension count: %s\n", shape)
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return s
}

// parseVec parses "x,y,z" into a vector.
func parseVec(s string) (v3.Vec, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return v3.Vec{}, fmt.Errorf("want x,y,z, got %q", s)
	}
	var out [3]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return v3.Vec{}, err
		}
		out[i] = f
	}
	return v3.Vec{X: out[0], Y: out[1], Z: out[2]}, nil
}
