package bionic

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/simp-lee/bionic/epub"
)

// outputPrefix is prepended to the file name of a converted book.
const outputPrefix = "Bionic_"

// ProgressFunc receives the fraction of manifest items processed, in
// (0, 1]. Calls are serialised and the fraction never decreases.
type ProgressFunc func(done float64)

// BookOptions configures ConvertBook.
type BookOptions struct {
	// Options controls the rewrite of each content document.
	Options

	// Workers bounds the number of documents converted at once.
	// Zero or less means runtime.GOMAXPROCS(0).
	Workers int

	// Progress, when set, is called after each manifest item.
	Progress ProgressFunc
}

// Stats describes a finished conversion.
type Stats struct {
	// Title is the book's first dc:title.
	Title string

	// Items is the number of manifest items.
	Items int

	// Converted is the number of content documents rewritten.
	Converted int

	// Copied is the number of archive entries copied unchanged,
	// not counting the mimetype entry.
	Copied int

	// Warnings are the non-fatal problems reported by the container.
	Warnings []string
}

// OutputName returns the file name used for the converted copy of the
// book at path: its base name with a "Bionic_" prefix.
func OutputName(path string) string {
	return outputPrefix + filepath.Base(path)
}

// ConvertBook writes to w a copy of book in which every XHTML content
// document has been rewritten with cfg.Options. All other entries are
// copied without recompression, in their original archive order.
//
// Manifest items whose file is missing from the archive are skipped.
func ConvertBook(ctx context.Context, book *epub.Book, w io.Writer, cfg BookOptions) (Stats, error) {
	items := book.Items()
	stats := Stats{
		Title:    book.Metadata().Title(),
		Items:    len(items),
		Warnings: book.Warnings(),
	}

	converted, err := convertItems(ctx, book, items, cfg)
	if err != nil {
		return stats, err
	}

	zw := epub.NewWriter(w)
	if err := zw.WriteMimetype(); err != nil {
		return stats, err
	}
	for _, name := range book.Files() {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		if strings.EqualFold(name, "mimetype") || zw.Has(name) {
			continue
		}
		data, ok := converted[name]
		if !ok {
			if err := zw.Copy(book, name); err != nil {
				return stats, err
			}
			stats.Copied++
			continue
		}
		fw, err := zw.Create(name)
		if err != nil {
			return stats, err
		}
		if _, err := fw.Write(data); err != nil {
			return stats, fmt.Errorf("bionic: write %s: %w", name, err)
		}
		stats.Converted++
	}
	if err := zw.Close(); err != nil {
		return stats, fmt.Errorf("bionic: finish archive: %w", err)
	}
	return stats, nil
}

// convertItems rewrites the markup items of book concurrently and returns
// the new content keyed by archive path.
func convertItems(ctx context.Context, book *epub.Book, items []epub.Item, cfg BookOptions) (map[string][]byte, error) {
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	var (
		mu        sync.Mutex
		done      int
		converted = make(map[string][]byte)
	)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, item := range items {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			var out []byte
			if epub.IsMarkup(item.MediaType) {
				raw, err := book.ReadFile(item.Href)
				switch {
				case errors.Is(err, epub.ErrFileNotFound):
				case err != nil:
					return fmt.Errorf("bionic: read %s: %w", item.Href, err)
				default:
					if out, err = ConvertDocument(raw, cfg.Options); err != nil {
						return fmt.Errorf("bionic: convert %s: %w", item.Href, err)
					}
				}
			}

			mu.Lock()
			defer mu.Unlock()
			if out != nil {
				converted[item.Href] = out
			}
			done++
			if cfg.Progress != nil {
				cfg.Progress(float64(done) / float64(len(items)))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return converted, nil
}

// ConvertFile converts the book at src and writes the result to dst. The
// output is written to a temporary file next to dst and renamed into place,
// so dst is either complete or untouched.
func ConvertFile(ctx context.Context, src, dst string, cfg BookOptions) (Stats, error) {
	book, err := epub.Open(src)
	if err != nil {
		return Stats{}, err
	}
	defer book.Close()

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".bionic-*.epub")
	if err != nil {
		return Stats{}, fmt.Errorf("bionic: create output: %w", err)
	}
	defer func() {
		if tmp != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	stats, err := ConvertBook(ctx, book, tmp, cfg)
	if err != nil {
		return stats, err
	}
	if err := tmp.Chmod(0o644); err != nil {
		return stats, fmt.Errorf("bionic: chmod output: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return stats, fmt.Errorf("bionic: close output: %w", err)
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		os.Remove(tmp.Name())
		tmp = nil
		return stats, fmt.Errorf("bionic: rename output: %w", err)
	}
	tmp = nil
	return stats, nil
}
