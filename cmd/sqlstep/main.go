// Command sqlstep generates Go migration-snapshot libraries from schema
// version descriptors.
//
// Usage:
//
//	sqlstep [-o dir] [-workers n] [-watch] descriptor.yaml ...
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/errgroup"

	"github.com/sqlstep/sqlstep/compiler/gen"
	"github.com/sqlstep/sqlstep/compiler/load"
)

func main() {
	var (
		outDir  = flag.String("o", "", "output directory (default: alongside each descriptor)")
		workers = flag.Int("workers", runtime.GOMAXPROCS(0), "parallel generation workers")
		watch   = flag.Bool("watch", false, "regenerate when a descriptor changes")
	)
	flag.Parse()
	inputs := flag.Args()
	if len(inputs) == 0 {
		fmt.Fprintln(os.Stderr, "usage: sqlstep [-o dir] [-workers n] [-watch] descriptor.yaml ...")
		os.Exit(2)
	}

	if err := generateAll(inputs, *outDir, *workers); err != nil {
		fmt.Fprintf(os.Stderr, "sqlstep: %v\n", err)
		os.Exit(1)
	}
	if !*watch {
		return
	}
	if err := watchLoop(inputs, *outDir); err != nil {
		fmt.Fprintf(os.Stderr, "sqlstep: %v\n", err)
		os.Exit(1)
	}
}

// generateAll generates every input descriptor, in parallel across inputs.
// Each single pass stays sequential and deterministic.
func generateAll(inputs []string, outDir string, workers int) error {
	var eg errgroup.Group
	eg.SetLimit(workers)
	for _, in := range inputs {
		eg.Go(func() error {
			return generate(in, outDir)
		})
	}
	return eg.Wait()
}

// generate runs one pass for one descriptor.
func generate(input, outDir string) error {
	d, err := load.ParseFile(input)
	if err != nil {
		return err
	}
	versions, err := d.Model()
	if err != nil {
		return err
	}
	g, err := gen.New(versions, gen.WithPackage(d.Package))
	if err != nil {
		return fmt.Errorf("%s: %w", input, err)
	}
	out := outputPath(input, outDir)
	if err := gen.NewWriter(g).WriteFile(out); err != nil {
		return fmt.Errorf("%s: %w", input, err)
	}
	log.Printf("generated %s from %s", out, input)
	return nil
}

// outputPath derives the artifact path: the descriptor's base name with a
// .go extension, in outDir when set, next to the descriptor otherwise.
func outputPath(input, outDir string) string {
	base := filepath.Base(input)
	base = strings.TrimSuffix(base, filepath.Ext(base)) + ".go"
	if outDir != "" {
		return filepath.Join(outDir, base)
	}
	return filepath.Join(filepath.Dir(input), base)
}

// watchLoop regenerates descriptors as they change, until interrupted.
func watchLoop(inputs []string, outDir string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	watched := make(map[string]bool, len(inputs))
	for _, in := range inputs {
		abs, err := filepath.Abs(in)
		if err != nil {
			return err
		}
		watched[abs] = true
		// Watch the directory: editors replace files on save.
		if err := watcher.Add(filepath.Dir(abs)); err != nil {
			return err
		}
	}
	log.Printf("watching %d descriptor(s)", len(inputs))

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-watcher.Errors:
			return err
		case ev := <-watcher.Events:
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			abs, err := filepath.Abs(ev.Name)
			if err != nil || !watched[abs] {
				continue
			}
			if err := generate(abs, outDir); err != nil {
				log.Printf("error: %v", err)
			}
		}
	}
}
