package presenter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/soocke/multiplier-advisor/domain/multiplier"
	"github.com/soocke/multiplier-advisor/domain/raster"
	"github.com/soocke/multiplier-advisor/domain/recommend"
	"github.com/soocke/multiplier-advisor/domain/region"
	"github.com/soocke/multiplier-advisor/domain/selection"
	"github.com/soocke/multiplier-advisor/service"
	"github.com/soocke/multiplier-advisor/ui/model"
)

// FrameSource acquires a single frame.
type FrameSource interface {
	Capture(ctx context.Context) (*raster.Buffer, error)
}

// ResultView displays outcomes and errors.
type ResultView interface {
	ShowResult(res service.PredictionResult, rec recommend.Recommendation)
	ShowError(err error)
}

// PreviewView displays a rendered frame. Implementations must not retain buf
// after returning; it is recycled on the next redraw.
type PreviewView interface {
	ShowPreview(buf *raster.Buffer)
}

// FileOpener opens an image file for upload.
type FileOpener func(path string) (io.ReadCloser, error)

// SessionPresenter sequences capture, selection, submission and display. It
// is driven by one goroutine; only the pending-request flag is shared.
type SessionPresenter struct {
	source     FrameSource
	recognizer service.Recognizer
	view       ResultView
	preview    PreviewView
	style      selection.OutlineStyle
	logger     *slog.Logger

	selector *selection.Selector
	frame    *raster.Buffer
	display  *raster.Buffer
	rendered bool

	Results   *model.ResultModel
	Selection *model.SelectionModel
	requests  model.RequestModel

	open FileOpener
	now  func() time.Time
}

// NewSessionPresenter wires a presenter. preview may be nil.
func NewSessionPresenter(source FrameSource, recognizer service.Recognizer, view ResultView, preview PreviewView, style selection.OutlineStyle, logger *slog.Logger) *SessionPresenter {
	p := &SessionPresenter{
		source:     source,
		recognizer: recognizer,
		view:       view,
		preview:    preview,
		style:      style,
		logger:     logger,
		selector:   selection.NewSelector(0, 0, logger),
		Results:    model.NewResultModel(),
		Selection:  model.NewSelectionModel(),
		open:       func(path string) (io.ReadCloser, error) { return os.Open(path) },
		now:        time.Now,
	}
	p.selector.AddMoveListener(p.redraw)
	p.selector.AddReadyListener(p.Selection.Commit)
	p.selector.AddReadyListener(p.redraw)
	p.selector.AddStateListener(func(_, next selection.State) {
		switch next {
		case selection.StateSelecting:
			p.Selection.Clear()
		case selection.StateIdle:
			p.Selection.Clear()
			p.showFrame()
		}
	})
	return p
}

// Selector exposes the state machine so callers can attach listeners.
func (p *SessionPresenter) Selector() *selection.Selector { return p.selector }

// Capture acquires a new frame. On failure the current frame and selection
// are left as they were.
func (p *SessionPresenter) Capture(ctx context.Context) error {
	if p.source == nil {
		return p.reject(ErrNoInputSelected)
	}
	frame, err := p.source.Capture(ctx)
	if err != nil {
		p.log(slog.LevelWarn, "capture failed", "error", err)
		return p.reject(err)
	}
	p.LoadFrame(frame)
	return nil
}

// LoadFrame replaces the current frame and resets the selector to it.
func (p *SessionPresenter) LoadFrame(frame *raster.Buffer) {
	if frame == nil {
		return
	}
	p.frame = frame
	p.Selection.Clear()
	p.selector.Resize(frame.Width(), frame.Height())
	p.showFrame()
	p.log(slog.LevelInfo, "frame loaded", "width", frame.Width(), "height", frame.Height())
}

// PointerDown starts a drag at (x, y).
func (p *SessionPresenter) PointerDown(x, y int) error {
	if p.frame == nil {
		return p.reject(ErrNoInputSelected)
	}
	if err := p.selector.Begin(raster.Pt(x, y)); err != nil {
		return p.reject(err)
	}
	return nil
}

// PointerMove extends the drag to (x, y).
func (p *SessionPresenter) PointerMove(x, y int) error {
	return p.selector.Move(raster.Pt(x, y))
}

// PointerUp finishes the drag and submits the selected region.
func (p *SessionPresenter) PointerUp(ctx context.Context, x, y int) error {
	if err := p.selector.End(raster.Pt(x, y)); err != nil {
		return p.reject(err)
	}
	rect, _ := p.selector.Rect()
	return p.SubmitRegion(ctx, rect)
}

// PointerCancel abandons a drag in progress.
func (p *SessionPresenter) PointerCancel() { p.selector.Cancel() }

// SubmitRegion extracts rect from the current frame and sends it for recognition.
func (p *SessionPresenter) SubmitRegion(ctx context.Context, rect raster.Rect) error {
	if p.frame == nil {
		return p.reject(ErrNoInputSelected)
	}
	crop, err := region.Extract(p.frame, rect)
	if err != nil {
		return p.reject(err)
	}
	png, err := region.EncodePNG(crop)
	if err != nil {
		return p.reject(fmt.Errorf("encode region: %w", err))
	}
	p.log(slog.LevelDebug, "region encoded", "rect", rect.String(), "size", humanize.Bytes(uint64(len(png))))
	return p.submit(ctx, "screenshot", func(ctx context.Context) (*service.PredictionResult, error) {
		return p.recognizer.PredictFromScreenshot(ctx, png)
	})
}

// Upload sends the image file at path for recognition.
func (p *SessionPresenter) Upload(ctx context.Context, path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return p.reject(ErrNoInputSelected)
	}
	f, err := p.open(path)
	if err != nil {
		return p.reject(fmt.Errorf("%w: %v", ErrNoInputSelected, err))
	}
	defer f.Close()
	return p.submit(ctx, "upload", func(ctx context.Context) (*service.PredictionResult, error) {
		return p.recognizer.Upload(ctx, filepath.Base(path), f)
	})
}

// EditText resubmits corrected text. Text without any multiplier token is
// rejected before contacting the service.
func (p *SessionPresenter) EditText(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		return p.reject(ErrEmptyText)
	}
	if len(multiplier.Parse(text)) == 0 {
		return p.reject(ErrNoMultipliers)
	}
	return p.submit(ctx, "edit", func(ctx context.Context) (*service.PredictionResult, error) {
		return p.recognizer.EditText(ctx, text)
	})
}

func (p *SessionPresenter) submit(ctx context.Context, op string, call func(context.Context) (*service.PredictionResult, error)) error {
	if p.recognizer == nil {
		return p.reject(errors.New("no recognizer configured"))
	}
	if !p.requests.TryBegin() {
		return p.reject(ErrRequestPending)
	}
	defer p.requests.Done()

	start := p.now()
	res, err := call(ctx)
	if err != nil {
		p.Results.Fail(err)
		p.log(slog.LevelWarn, "submission failed", "op", op, "error", err)
		return p.reject(err)
	}
	rec := recommend.Recommend(res.Prediction, res.Multipliers)
	p.Results.Apply(*res, rec, p.now())
	p.log(slog.LevelInfo, "recommendation ready", "op", op, "kind", rec.Kind.String(), "took", p.now().Sub(start))
	if p.view != nil {
		p.view.ShowResult(*res, rec)
	}
	return nil
}

func (p *SessionPresenter) redraw(rect raster.Rect) {
	if p.preview == nil || p.frame == nil {
		return
	}
	p.show(selection.Render(p.frame, rect, p.style), true)
}

func (p *SessionPresenter) showFrame() {
	if p.preview == nil || p.frame == nil {
		return
	}
	p.show(p.frame, false)
}

func (p *SessionPresenter) show(buf *raster.Buffer, rendered bool) {
	p.preview.ShowPreview(buf)
	if p.rendered {
		raster.Recycle(p.display)
	}
	p.display, p.rendered = buf, rendered
}

func (p *SessionPresenter) reject(err error) error {
	if p.view != nil {
		p.view.ShowError(err)
	}
	return err
}

func (p *SessionPresenter) log(level slog.Level, msg string, attrs ...any) {
	if p.logger == nil {
		return
	}
	p.logger.Log(context.Background(), level, msg, attrs...)
}
