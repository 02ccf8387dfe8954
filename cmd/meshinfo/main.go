package main

import (
	"flag"
	"fmt"
	"os"

	"meshweld/internal/mesh"
	"meshweld/internal/meshio"
	"meshweld/internal/weld"
)

func main() {
	doWeld := flag.Bool("weld", false, "Also weld all meshes and report the result")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Usage: meshinfo [-weld] file...")
		os.Exit(2)
	}

	failed := false
	var all []mesh.Mesh
	for _, path := range flag.Args() {
		meshes, err := meshio.Import(path)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			failed = true
			continue
		}

		fmt.Printf("%s: %d meshes\n", path, len(meshes))
		for i, m := range meshes {
			printMesh(i, m)
		}
		all = append(all, meshes...)
	}

	if *doWeld && len(all) > 0 {
		welded, s := weld.Weld(all)
		fmt.Printf("Welded (cell %.2f):\n", 1.0/weld.GridScale)
		printMesh(0, welded)
		fmt.Printf("    Triangles: %d in, %d kept, %d degenerate, %d out of range\n",
			s.InputTris, s.Kept, s.Degenerate, s.OutOfRange)
	}

	if failed {
		os.Exit(1)
	}
}

func printMesh(i int, m mesh.Mesh) {
	fmt.Printf("  Mesh[%d] %q: verts=%d, tris=%d\n", i, m.Name, len(m.Vertices), len(m.Triangles))
	lo, hi, ok := m.Bounds()
	if !ok {
		return
	}
	fmt.Printf("    BBox: X[%.3f, %.3f] Y[%.3f, %.3f] Z[%.3f, %.3f]\n", lo[0], hi[0], lo[1], hi[1], lo[2], hi[2])
	size := hi.Sub(lo)
	fmt.Printf("    Size: %.3f x %.3f x %.3f\n", size[0], size[1], size[2])
}
