// meshattr translates mesh attributes between host meshes and glTF.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/multierr"

	"github.com/Faultbox/meshattr/internal/config"
	"github.com/Faultbox/meshattr/internal/logger"
	"github.com/Faultbox/meshattr/internal/translate"
	"github.com/Faultbox/meshattr/pkg/attr"
	"github.com/Faultbox/meshattr/pkg/formats"
	"github.com/Faultbox/meshattr/pkg/gltfio"
	"github.com/Faultbox/meshattr/pkg/grf"
	"github.com/Faultbox/meshattr/pkg/host"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	args := config.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	command := args[0]
	args = args[1:]

	switch command {
	case "inspect", "info":
		err = cmdInspect(cfg, args)
	case "export":
		err = cmdExport(cfg, args)
	case "import":
		err = cmdImport(cfg, args)
	case "list", "ls":
		err = cmdList(cfg)
	case "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		logger.Sync()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`meshattr - mesh attribute translator

Usage:
  meshattr [flags] <command> [args]

Commands:
  inspect <file.rsm|file.glb|file.gltf>  Show meshes and their encoded attributes
  export <file.rsm> [output]             Encode RSM meshes and write glTF
  import <file.glb|file.gltf>            Decode glTF attributes into host channels
  list                                   List RSM models in the -grf archive

Flags:
  -config <path>     Config file (default ./meshattr.yaml)
  -debug             Debug logging
  -animated          Encode every channel as faceVarying indexed
  -no-expand         Keep requested kinds even when values need more components
  -channels a,b      Only translate these channels
  -log-file <path>   Also log to a rotated file
  -grf <archive>     Resolve RSM paths inside a GRF archive

Examples:
  meshattr inspect data/model/prontera/fountain.rsm
  meshattr -channels uv export fountain.rsm fountain.glb
  meshattr import fountain.glb
  meshattr -grf data.grf export data/model/prontera/fountain.rsm`)
}

func cmdInspect(cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: meshattr inspect <file>")
	}
	path := args[0]

	if isGLTF(path) {
		imported, err := gltfio.Import(path)
		if err != nil {
			return err
		}
		fmt.Printf("File:   %s\n", path)
		fmt.Printf("Meshes: %d\n", len(imported))
		for _, imp := range imported {
			printMesh(imp.Mesh)
			printAttributes(imp.Attributes)
		}
		return nil
	}

	model, err := loadRSM(cfg, path)
	if err != nil {
		return err
	}
	meshes, err := model.HostMeshes()
	if err != nil {
		return err
	}

	fmt.Printf("File:     %s\n", path)
	fmt.Printf("Version:  %s\n", model.Version)
	fmt.Printf("Shading:  %s\n", model.Shading)
	fmt.Printf("Textures: %d\n", len(model.Textures))
	fmt.Printf("Nodes:    %d (%d with faces)\n", len(model.Nodes), len(meshes))
	if model.HasAnimation() {
		fmt.Printf("Animated: %d ms\n", model.AnimLength)
	}

	for _, mesh := range meshes {
		printMesh(mesh)
		attrs, err := translate.EncodeAll(mesh, cfg.Translate)
		printAttributes(attrs)
		reportSkipped(err)
	}
	return nil
}

func cmdExport(cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: meshattr export <file.rsm> [output]")
	}
	input := args[0]

	output := strings.TrimSuffix(input, filepath.Ext(input)) + ".gltf"
	if cfg.Source.Archive != "" {
		output = filepath.Base(output)
	}
	if len(args) > 1 {
		output = args[1]
	}
	if cfg.Export.Binary && !strings.EqualFold(filepath.Ext(output), ".glb") {
		output = strings.TrimSuffix(output, filepath.Ext(output)) + ".glb"
	}

	model, err := loadRSM(cfg, input)
	if err != nil {
		return err
	}
	meshes, err := model.HostMeshes()
	if err != nil {
		return err
	}

	exporter := gltfio.NewExporter(cfg.Export.Generator)
	for _, mesh := range meshes {
		attrs, err := translate.EncodeAll(mesh, cfg.Translate)
		reportSkipped(err)
		if err := exporter.AddMesh(mesh, attrs); err != nil {
			return err
		}
	}
	if err := exporter.Save(output); err != nil {
		return fmt.Errorf("writing %s: %w", output, err)
	}

	fmt.Printf("Exported %d meshes to %s\n", len(meshes), output)
	return nil
}

func cmdImport(cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: meshattr import <file.glb|file.gltf>")
	}

	imported, err := gltfio.Import(args[0])
	if err != nil {
		return err
	}
	for _, imp := range imported {
		reportSkipped(translate.DecodeAll(imp.Mesh, imp.Attributes, cfg.Translate))
		printMesh(imp.Mesh)
		if imp.Mesh.Normals != nil {
			fmt.Printf("    %-16s %d values\n", host.NormalsName, len(imp.Mesh.Normals.Values))
		}
		for _, name := range imp.Mesh.ChannelNames() {
			fmt.Printf("    %-16s %d values\n", name, len(imp.Mesh.Channel(name).Values))
		}
	}
	return nil
}

func cmdList(cfg *config.Config) error {
	if cfg.Source.Archive == "" {
		return fmt.Errorf("usage: meshattr -grf <archive> list")
	}
	archive, err := grf.Open(cfg.Source.Archive)
	if err != nil {
		return err
	}
	defer archive.Close()

	for _, p := range archive.ListExt(".rsm") {
		fmt.Println(p)
	}
	return nil
}

// loadRSM reads a model from the configured archive, or from disk when no
// archive is set.
func loadRSM(cfg *config.Config, path string) (*formats.RSM, error) {
	if cfg.Source.Archive == "" {
		return formats.ParseRSMFile(path)
	}
	archive, err := grf.Open(cfg.Source.Archive)
	if err != nil {
		return nil, err
	}
	defer archive.Close()

	data, err := archive.Read(path)
	if err != nil {
		return nil, err
	}
	return formats.ParseRSM(data)
}

func printMesh(mesh *host.Mesh) {
	fmt.Println()
	fmt.Printf("  %s: %d faces, %d vertices, %d corners", mesh.Name, mesh.FaceCount(), mesh.VertexCount(), mesh.CornerCount())
	if mesh.Mirrored {
		fmt.Print(" (mirrored)")
	}
	fmt.Println()
}

func printAttributes(attrs []*attr.Attribute) {
	for _, a := range attrs {
		layout := "unindexed"
		if a.Indexed() {
			layout = fmt.Sprintf("indexed (%d)", len(a.Indices))
		}
		fmt.Printf("    %-16s %-11s %-12s %6d values, %s\n", a.Name, a.Kind, a.Domain, a.ValueCount(), layout)
	}
}

func reportSkipped(err error) {
	for _, e := range multierr.Errors(err) {
		fmt.Fprintf(os.Stderr, "    skipped: %v\n", e)
	}
}

func isGLTF(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".glb", ".gltf":
		return true
	}
	return false
}
