// Package main provides the axial command line tool.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/axial-ml/axial"
	"github.com/axial-ml/axial/internal/buildinfo"
	"github.com/axial-ml/axial/internal/serialization"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "version":
		fmt.Printf("axial %s\n", axial.Version())
		fmt.Printf("  commit: %s\n", buildinfo.Commit)
		fmt.Printf("  built:  %s\n", buildinfo.Date)
	case "inspect":
		if err := runInspect(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "axial: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "axial: unknown command %q\n\n", os.Args[1])
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: axial <command> [arguments]")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  version              Show version and build information")
	fmt.Fprintln(os.Stderr, "  inspect <file>       List the entries of an .axl or .safetensors file")
}

func runInspect(args []string) error {
	fs := flag.NewFlagSet("inspect", flag.ExitOnError)
	skipChecksum := fs.Bool("skip-checksum", false, "do not hash the data section")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("inspect takes exactly one file argument")
	}
	path := fs.Arg(0)
	if filepath.Ext(path) == ".safetensors" {
		return inspectSafetensors(path)
	}

	r, err := serialization.NewMmapReader(path)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	defer r.Close()

	header := r.Header()
	fmt.Printf("%s: format v%d, %d entries\n", path, r.Version(), len(header.Tensors))
	if header.LibraryVersion != "" {
		fmt.Printf("  written by: axial %s\n", header.LibraryVersion)
	}
	if !header.CreatedAt.IsZero() {
		fmt.Printf("  created:    %s\n", header.CreatedAt.Format(time.RFC3339))
	}
	for _, k := range sortedKeys(header.Metadata) {
		fmt.Printf("  metadata:   %s=%s\n", k, header.Metadata[k])
	}
	fmt.Printf("  checksum:   %s\n", checksumStatus(r, *skipChecksum))

	if len(header.Tensors) == 0 {
		return nil
	}
	fmt.Println()
	for i := range header.Tensors {
		meta := &header.Tensors[i]
		fmt.Printf("  %-24s %-8s %-28s %d bytes\n", meta.Name, meta.DType, formatAxes(meta.Axes), meta.Size)
	}
	return nil
}

func inspectSafetensors(path string) error {
	r, err := serialization.NewSafetensorsReader(path)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	defer r.Close()

	names := r.Names()
	fmt.Printf("%s: safetensors, %d entries\n", path, len(names))
	for _, k := range sortedKeys(r.Metadata()) {
		if k == serialization.SafetensorsAxesKey {
			continue // rendered per entry below
		}
		fmt.Printf("  metadata:   %s=%s\n", k, r.Metadata()[k])
	}

	if len(names) == 0 {
		return nil
	}
	fmt.Println()
	for _, name := range names {
		info, err := r.EntryInfo(name)
		if err != nil {
			return err
		}
		dims := formatShape(info.Shape)
		if axes := r.Axes(name); axes != nil {
			dims = formatAxes(axes)
		}
		size := info.DataOffsets[1] - info.DataOffsets[0]
		fmt.Printf("  %-24s %-8s %-28s %d bytes\n", name, info.DType, dims, size)
	}
	return nil
}

func checksumStatus(r *serialization.MmapReader, skip bool) string {
	if r.Version() < serialization.FormatVersionV2 {
		return "none (v1 file)"
	}
	if skip {
		return "skipped"
	}
	if err := r.VerifyChecksum(); err != nil {
		return fmt.Sprintf("MISMATCH (%v)", err)
	}
	return "ok"
}

func formatAxes(axes []serialization.AxisMeta) string {
	if len(axes) == 0 {
		return "(scalar)"
	}
	parts := make([]string, len(axes))
	for i, ax := range axes {
		parts[i] = fmt.Sprintf("%s=%d", ax.Name, ax.Size)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func formatShape(shape []int) string {
	if len(shape) == 0 {
		return "(scalar)"
	}
	parts := make([]string, len(shape))
	for i, dim := range shape {
		parts[i] = strconv.Itoa(dim)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
