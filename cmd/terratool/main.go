// terratool is a CLI utility for inspecting and converting BMP heightmaps.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/Faultbox/terraview/internal/engine/terrain"
	"github.com/Faultbox/terraview/pkg/formats"
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
	case "preview":
		cmdPreview(args)
	case "export":
		cmdExport(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`terratool - BMP heightmap utility

Usage:
  terratool <command> [options]

Commands:
  info    [-divisor N] <file.bmp>            Show heightmap and mesh statistics
  preview [-divisor N] <file.bmp> <out.png>  Write a top-down height-band preview
  export  [-divisor N] [-lit] <file.bmp> <out.obj>
                                             Export the terrain mesh as Wavefront OBJ

Examples:
  terratool info alps.bmp
  terratool preview -divisor 50 alps.bmp alps.png
  terratool export -lit alps.bmp alps.obj`)
}

// loadGrid parses the heightmap and builds the grid shared by all commands.
func loadGrid(path string, divisor int) *terrain.HeightGrid {
	bmp, err := formats.ParseBMPFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return terrain.BuildHeightGrid(bmp, int32(divisor))
}

func cmdInfo(args []string) {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	divisor := fs.Int("divisor", terrain.DefaultDivisor, "height divisor for RGB sums")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: terratool info [-divisor N] <file.bmp>")
		os.Exit(1)
	}

	grid := loadGrid(fs.Arg(0), *divisor)
	mesh := terrain.BuildMesh(grid, terrain.MeshOptions{})

	fmt.Printf("Heightmap: %s\n", fs.Arg(0))
	fmt.Printf("  Grid:      %d x %d samples\n", grid.Width, grid.Height)
	fmt.Printf("  Heights:   %d .. %d (divisor %d)\n", grid.Min, grid.Max, *divisor)
	fmt.Printf("  Vertices:  %d\n", len(mesh.Vertices))
	fmt.Printf("  Indices:   %d (%d triangles)\n", len(mesh.Indices), len(mesh.Indices)/3)
}

func cmdPreview(args []string) {
	fs := flag.NewFlagSet("preview", flag.ExitOnError)
	divisor := fs.Int("divisor", terrain.DefaultDivisor, "height divisor for RGB sums")
	fs.Parse(args)

	if fs.NArg() < 2 {
		fmt.Fprintln(os.Stderr, "Usage: terratool preview [-divisor N] <file.bmp> <out.png>")
		os.Exit(1)
	}

	grid := loadGrid(fs.Arg(0), *divisor)

	img := image.NewRGBA(image.Rect(0, 0, grid.Width, grid.Height))
	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			c := terrain.BandColor(grid.At(x, y), grid.Min, grid.Max)
			img.Set(x, y, color.RGBA{
				R: uint8(c[0] * 255),
				G: uint8(c[1] * 255),
				B: uint8(c[2] * 255),
				A: 255,
			})
		}
	}

	f, err := os.Create(fs.Arg(1))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s (%dx%d)\n", fs.Arg(1), grid.Width, grid.Height)
}

func cmdExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	divisor := fs.Int("divisor", terrain.DefaultDivisor, "height divisor for RGB sums")
	lit := fs.Bool("lit", false, "compute and export vertex normals")
	fs.Parse(args)

	if fs.NArg() < 2 {
		fmt.Fprintln(os.Stderr, "Usage: terratool export [-divisor N] [-lit] <file.bmp> <out.obj>")
		os.Exit(1)
	}

	grid := loadGrid(fs.Arg(0), *divisor)

	mode := terrain.ColorFlat
	if *lit {
		mode = terrain.ColorLit
	}
	mesh := terrain.BuildMesh(grid, terrain.MeshOptions{Mode: mode})

	positions := make([][3]float32, len(mesh.Vertices))
	for i, v := range mesh.Vertices {
		positions[i] = v.Position
	}
	var normals [][3]float32
	if *lit {
		normals = make([][3]float32, len(mesh.Vertices))
		for i, v := range mesh.Vertices {
			normals[i] = v.Normal
		}
	}

	f, err := os.Create(fs.Arg(1))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	if err := formats.WriteOBJ(f, positions, normals, mesh.Indices); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s (%d vertices, %d triangles)\n", fs.Arg(1), len(positions), len(mesh.Indices)/3)
}
