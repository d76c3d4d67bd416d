package watch

import (
	"bytes"
	"encoding/json"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"astuart.co/goswipe"
)

const outputSuffix = ".swiper"

// Options configures a watch started with Start.
type Options struct {
	Dir      string
	OutDir   string
	Debounce time.Duration
	Render   bool
	Compiler goswipe.Options
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

// Start compiles every markup file under opts.Dir once and then again each
// time one changes. Changes arriving within the debounce window are
// compiled together.
func Start(opts Options, log *zap.Logger) (io.Closer, error) {
	if log == nil {
		log = zap.NewNop()
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := addWatchRecursive(watcher, opts.Dir); err != nil {
		_ = watcher.Close()
		return nil, err
	}

	initial, err := markupFiles(opts.Dir)
	if err != nil {
		_ = watcher.Close()
		return nil, err
	}
	compileAll(opts, initial, log)

	stopCh := make(chan struct{})
	doneCh := make(chan struct{})

	go func() {
		defer close(doneCh)
		var (
			timer   *time.Timer
			timerC  <-chan time.Time
			changed = map[string]struct{}{}
		)
		resetTimer := func() {
			if timer == nil {
				timer = time.NewTimer(opts.Debounce)
				timerC = timer.C
				return
			}
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(opts.Debounce)
			timerC = timer.C
		}

		for {
			select {
			case <-stopCh:
				if timer != nil {
					timer.Stop()
				}
				return
			case <-timerC:
				timerC = nil
				files := make([]string, 0, len(changed))
				for f := range changed {
					files = append(files, f)
				}
				changed = map[string]struct{}{}
				sort.Strings(files)
				compileAll(opts, files, log)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Warn("watcher error", zap.Error(err))
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if evt.Op&fsnotify.Create != 0 {
					if fi, statErr := os.Stat(evt.Name); statErr == nil && fi.IsDir() {
						if addErr := addWatchRecursive(watcher, evt.Name); addErr != nil {
							log.Warn("add watch failed", zap.String("path", evt.Name), zap.Error(addErr))
						}
					}
				}
				if shouldCompile(evt) {
					changed[evt.Name] = struct{}{}
					resetTimer()
				}
			}
		}
	}()

	log.Info("watching markup",
		zap.String("dir", opts.Dir),
		zap.Duration("debounce", opts.Debounce))
	return closerFunc(func() error {
		close(stopCh)
		_ = watcher.Close()
		<-doneCh
		return nil
	}), nil
}

func compileAll(opts Options, files []string, log *zap.Logger) {
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			// removed or renamed away
			continue
		}
		out, err := CompileFile(f, opts)
		if err != nil {
			log.Error("compile failed", zap.String("file", f), zap.Error(err))
			continue
		}
		log.Info("compiled", zap.String("file", f), zap.String("out", out))
	}
}

// CompileFile compiles one markup file and writes its report as
// <name>.swiper.json, plus <name>.swiper.html when rendering is on. It
// returns the report path.
func CompileFile(path string, opts Options) (string, error) {
	// #nosec G304 -- path comes from the watched directory.
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	page, err := goswipe.Compile(bytes.NewReader(b), opts.Compiler)
	if err != nil {
		return "", err
	}
	defer page.Destroy()

	js, err := json.MarshalIndent(page.Report(), "", "  ")
	if err != nil {
		return "", err
	}
	base := outputBase(path, opts)
	if err := os.MkdirAll(filepath.Dir(base), 0o750); err != nil {
		return "", err
	}
	out := base + ".json"
	if err := os.WriteFile(out, append(js, '\n'), 0o600); err != nil {
		return "", err
	}

	if opts.Render {
		var buf bytes.Buffer
		if err := page.Render(&buf); err != nil {
			return "", err
		}
		if err := os.WriteFile(base+".html", buf.Bytes(), 0o600); err != nil {
			return "", err
		}
	}
	return out, nil
}

func outputBase(path string, opts Options) string {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)) + outputSuffix
	if opts.OutDir == "" {
		return filepath.Join(filepath.Dir(path), name)
	}
	rel, err := filepath.Rel(opts.Dir, filepath.Dir(path))
	if err != nil || strings.HasPrefix(rel, "..") {
		rel = ""
	}
	return filepath.Join(opts.OutDir, rel, name)
}

func isMarkup(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return false
	}
	ext := strings.ToLower(filepath.Ext(base))
	if ext != ".html" && ext != ".htm" {
		return false
	}
	// skip our own rendered output
	return !strings.HasSuffix(strings.TrimSuffix(base, filepath.Ext(base)), outputSuffix)
}

func shouldCompile(evt fsnotify.Event) bool {
	if strings.TrimSpace(evt.Name) == "" {
		return false
	}
	if evt.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
		return false
	}
	return isMarkup(evt.Name)
}

func markupFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && isMarkup(path) {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

func addWatchRecursive(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		return watcher.Add(path)
	})
}
