package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/soocke/multiplier-advisor/domain/raster"
)

// ErrNothingToDo is returned when Options selects no operation.
var ErrNothingToDo = errors.New("nothing to do: pass -capture, -frame, -image or -edit")

// Options describes one CLI run.
type Options struct {
	Capture       bool   // grab a screen frame
	FramePath     string // use an image file as the frame instead of the screen
	Select        string // drag gesture "x0,y0,x1,y1" over the frame
	ImagePath     string // upload an image file
	EditText      string // resubmit corrected text
	ConfigPath    string // where SaveSelection writes
	SaveSelection bool   // persist the committed region as the capture area
}

func (o Options) empty() bool {
	return !o.Capture && o.FramePath == "" && o.Select == "" && o.ImagePath == "" && o.EditText == ""
}

// App runs the requested operations against a Container.
type App struct {
	c *Container
}

func New(c *Container) *App { return &App{c: c} }

// Run executes the operations in order: frame, selection, upload, edit. A
// failing step is reported and the remaining independent steps still run.
func (a *App) Run(ctx context.Context, opts Options) error {
	if opts.empty() {
		return ErrNothingToDo
	}
	var errs []error
	frameReady := false
	switch {
	case opts.FramePath != "":
		frame, err := LoadFrame(opts.FramePath)
		if err != nil {
			errs = append(errs, err)
			a.c.Console.ShowError(err)
			break
		}
		a.c.Session.LoadFrame(frame)
		frameReady = true
	case opts.Capture || opts.Select != "":
		if err := a.c.Session.Capture(ctx); err != nil {
			errs = append(errs, err)
			break
		}
		frameReady = true
	}

	if opts.Select != "" && frameReady {
		if err := a.selectAndSubmit(ctx, opts); err != nil {
			errs = append(errs, err)
		}
	}
	if opts.ImagePath != "" {
		if err := a.c.Session.Upload(ctx, opts.ImagePath); err != nil {
			errs = append(errs, err)
		}
	}
	if opts.EditText != "" {
		if err := a.c.Session.EditText(ctx, opts.EditText); err != nil {
			errs = append(errs, err)
		}
	}
	if a.c.Preview != nil && frameReady {
		if err := a.c.Preview.Flush(); err != nil {
			a.log(slog.LevelWarn, "preview", "error", err)
		}
	}
	a.logStats()
	return errors.Join(errs...)
}

func (a *App) logStats() {
	st := a.c.CaptureSvc.Stats()
	ok, failed := a.c.Session.Results.Counts()
	snap := a.c.Session.Results.Snapshot()
	kind := "none"
	if snap.HasResult {
		kind = snap.Recommendation.Kind.String()
	}
	a.log(slog.LevelDebug, "session stats",
		"recommendation", kind,
		"captures", st.Captures,
		"capture_failures", st.Failures,
		"avg_capture", st.AvgCapture,
		"submissions_ok", ok,
		"submissions_failed", failed,
	)
}

func (a *App) selectAndSubmit(ctx context.Context, opts Options) error {
	from, to, err := ParseGesture(opts.Select)
	if err != nil {
		a.c.Console.ShowError(err)
		return err
	}
	s := a.c.Session
	if err := s.PointerDown(from.X, from.Y); err != nil {
		return err
	}
	if err := s.PointerMove(to.X, to.Y); err != nil {
		return err
	}
	err = s.PointerUp(ctx, to.X, to.Y)
	if opts.SaveSelection && opts.ConfigPath != "" {
		if r, ok := s.Selection.Region(); ok {
			if prev := a.c.Config.Selection(); prev != nil && opts.FramePath == "" {
				// captured frames are already cropped to the persisted area
				r.X, r.Y = r.X+prev.X, r.Y+prev.Y
			}
			a.c.Config.SetSelection(r)
			if serr := a.c.Config.Save(opts.ConfigPath); serr != nil {
				a.log(slog.LevelWarn, "save selection", "path", opts.ConfigPath, "error", serr)
			} else {
				a.log(slog.LevelInfo, "selection saved", "rect", r.String(), "path", opts.ConfigPath)
			}
		}
	}
	return err
}

func (a *App) log(level slog.Level, msg string, attrs ...any) {
	if a.c.Logger == nil {
		return
	}
	a.c.Logger.Log(context.Background(), level, msg, attrs...)
}

// ParseGesture parses "x0,y0,x1,y1" into the press and release points.
func ParseGesture(s string) (from, to raster.Point, err error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return from, to, fmt.Errorf("selection %q: want x0,y0,x1,y1", s)
	}
	var v [4]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return from, to, fmt.Errorf("selection %q: %w", s, err)
		}
		v[i] = n
	}
	return raster.Pt(v[0], v[1]), raster.Pt(v[2], v[3]), nil
}

// LoadFrame decodes an image file into a frame buffer.
func LoadFrame(path string) (*raster.Buffer, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load frame %s: %w", path, err)
	}
	return raster.FromImage(img), nil
}
