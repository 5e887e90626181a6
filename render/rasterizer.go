// Package render turns composed SVG documents into PNG bytes using headless
// Chrome. The browser is not safe to drive from multiple goroutines, so all
// rendering is funneled through one dedicated worker.
package render

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/chromedp"
)

// DefaultScale is the device scale factor used for marketplace images: a
// template authored at ~500 units wide comes out around 2000px.
const DefaultScale = 4.0

// renderTimeout bounds a single render. One stuck render blocks the queue
// until this elapses, which is the documented ceiling for this workload.
const renderTimeout = 60 * time.Second

const (
	viewportWidth  = 1280
	viewportHeight = 960
)

// Options controls a single rasterization.
type Options struct {
	Scale       float64 // device scale factor; 0 means DefaultScale
	Transparent bool    // omit the white page background for an alpha channel
	FullPage    bool    // capture the full page, for templates with bleed marks outside the viewBox
}

// RenderTimeoutError reports a render that exceeded its deadline. It is
// infrastructural: operators should read it as "renderer is stuck", not
// "bad product data".
type RenderTimeoutError struct {
	Timeout time.Duration
}

func (e *RenderTimeoutError) Error() string {
	return fmt.Sprintf("svg render timed out after %s", e.Timeout)
}

type renderResult struct {
	png []byte
	err error
}

type renderRequest struct {
	svg  []byte
	opts Options
	resp chan renderResult
}

// Rasterizer owns the headless browser. Construct one at process start with
// NewRasterizer, share it by reference, and call Shutdown during process
// exit. The browser itself starts lazily on the first render.
type Rasterizer struct {
	requests chan renderRequest
	stop     chan struct{}
	stopped  chan struct{}

	mu       sync.Mutex
	started  bool
	shutdown bool
}

// NewRasterizer creates a rasterizer without starting the browser.
func NewRasterizer() *Rasterizer {
	return &Rasterizer{
		requests: make(chan renderRequest),
		stop:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
}

// detectChromePath detects the Chrome/Chromium executable. CHROME_PATH wins;
// otherwise common installation paths are probed.
func detectChromePath() string {
	if chromePath := os.Getenv("CHROME_PATH"); chromePath != "" {
		if _, err := os.Stat(chromePath); err == nil {
			return chromePath
		}
	}

	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// Rasterize renders SVG bytes to PNG. Safe to call from any goroutine;
// requests are served FIFO by the single worker and each call blocks until
// its render completes or times out.
func (r *Rasterizer) Rasterize(svg []byte, opts Options) ([]byte, error) {
	if err := r.ensureWorker(); err != nil {
		return nil, err
	}

	req := renderRequest{svg: svg, opts: opts, resp: make(chan renderResult, 1)}
	select {
	case r.requests <- req:
	case <-r.stopped:
		return nil, errors.New("rasterizer has been shut down")
	}

	res := <-req.resp
	return res.png, res.err
}

// Shutdown stops the worker and closes the browser. Safe to call more than
// once and before any render has happened.
func (r *Rasterizer) Shutdown() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.shutdown {
		return
	}
	r.shutdown = true
	if r.started {
		close(r.stop)
		<-r.stopped
	} else {
		close(r.stopped)
	}
}

// ensureWorker starts the worker goroutine at most once.
func (r *Rasterizer) ensureWorker() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.shutdown {
		return errors.New("rasterizer has been shut down")
	}
	if !r.started {
		r.started = true
		go r.worker()
	}
	return nil
}

// worker owns the browser process for its whole lifetime. No other goroutine
// may touch the chromedp contexts.
func (r *Rasterizer) worker() {
	defer close(r.stopped)

	var (
		browserCtx    context.Context
		allocCancel   context.CancelFunc
		browserCancel context.CancelFunc
	)

	ensureBrowser := func() error {
		if browserCtx != nil {
			return nil
		}
		opts := append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.NoSandbox, // required for Docker/containers
		)
		if chromePath := detectChromePath(); chromePath != "" {
			opts = append(opts, chromedp.ExecPath(chromePath))
		}
		var allocCtx context.Context
		allocCtx, allocCancel = chromedp.NewExecAllocator(context.Background(), opts...)
		browserCtx, browserCancel = chromedp.NewContext(allocCtx)

		// Run with no actions launches the browser now, so the first
		// render's deadline is not spent on process startup.
		if err := chromedp.Run(browserCtx); err != nil {
			browserCancel()
			allocCancel()
			browserCtx = nil
			return fmt.Errorf("failed to launch browser: %w", err)
		}
		return nil
	}

	for {
		select {
		case req := <-r.requests:
			if err := ensureBrowser(); err != nil {
				req.resp <- renderResult{err: err}
				continue
			}
			png, err := renderOnce(browserCtx, req.svg, req.opts)
			req.resp <- renderResult{png: png, err: err}
		case <-r.stop:
			if browserCancel != nil {
				browserCancel()
			}
			if allocCancel != nil {
				allocCancel()
			}
			return
		}
	}
}

// renderOnce loads the SVG in a fresh tab and screenshots it. Runs on the
// worker goroutine only.
func renderOnce(browserCtx context.Context, svg []byte, opts Options) ([]byte, error) {
	scale := opts.Scale
	if scale <= 0 {
		scale = DefaultScale
	}

	tmp, err := os.CreateTemp("", "signmaker-*.svg")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp svg: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)
	if _, err := tmp.Write(svg); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("failed to write temp svg: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("failed to close temp svg: %w", err)
	}

	tabCtx, cancelTab := chromedp.NewContext(browserCtx)
	defer cancelTab()
	ctx, cancel := context.WithTimeout(tabCtx, renderTimeout)
	defer cancel()

	fileURL := "file://" + filepath.ToSlash(tmpPath)

	tasks := chromedp.Tasks{
		chromedp.EmulateViewport(viewportWidth, viewportHeight, chromedp.EmulateScale(scale)),
	}
	if opts.Transparent {
		tasks = append(tasks, chromedp.ActionFunc(func(ctx context.Context) error {
			return emulation.SetDefaultBackgroundColorOverride().
				WithColor(&cdp.RGBA{R: 0, G: 0, B: 0, A: 0}).
				Do(ctx)
		}))
	}
	tasks = append(tasks,
		chromedp.Navigate(fileURL),
		chromedp.WaitVisible("svg", chromedp.ByQuery),
	)

	var buf []byte
	if opts.FullPage {
		// Full page capture includes template content outside the
		// nominal viewBox, such as bleed marks.
		tasks = append(tasks, chromedp.FullScreenshot(&buf, 100))
	} else {
		tasks = append(tasks, chromedp.Screenshot("svg", &buf, chromedp.ByQuery))
	}

	if err := chromedp.Run(ctx, tasks); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, &RenderTimeoutError{Timeout: renderTimeout}
		}
		return nil, fmt.Errorf("svg render failed: %w", err)
	}
	if len(buf) == 0 {
		return nil, errors.New("svg render produced no output")
	}
	return buf, nil
}
