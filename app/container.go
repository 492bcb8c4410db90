package app

import (
	"io"
	"log/slog"
	"time"

	"github.com/soocke/multiplier-advisor/config"
	"github.com/soocke/multiplier-advisor/domain/capture"
	"github.com/soocke/multiplier-advisor/domain/selection"
	"github.com/soocke/multiplier-advisor/service"
	"github.com/soocke/multiplier-advisor/ui/presenter"
	"github.com/soocke/multiplier-advisor/ui/view"
)

// Container assembles services, views and presenters.
type Container struct {
	Config     *config.Config
	Logger     *slog.Logger
	CaptureSvc capture.Service
	Client     *service.Client
	Console    *view.ConsoleView
	Preview    *view.PreviewWriter

	// Presenters
	Session *presenter.SessionPresenter
	State   *presenter.StatePresenter
}

// BuildContainer constructs all components. source overrides screen capture
// when non-nil. No I/O happens until the presenter is driven.
func BuildContainer(cfg *config.Config, logger *slog.Logger, out io.Writer, source presenter.FrameSource) *Container {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	c := &Container{Config: cfg, Logger: logger}
	c.CaptureSvc = capture.NewCaptureService(logger, cfg.Selection)
	if source == nil {
		source = c.CaptureSvc
	}
	c.Client = service.NewClient(cfg.ServiceURL, time.Duration(cfg.RequestTimeoutSeconds)*time.Second, logger)
	c.Console = view.NewConsoleView(out)

	var preview presenter.PreviewView
	if cfg.PreviewPath != "" {
		c.Preview = view.NewPreviewWriter(cfg.PreviewPath, cfg.PreviewMaxW, cfg.PreviewMaxH, logger)
		preview = c.Preview
	}
	style := selection.OutlineStyle{Color: cfg.Outline(), Width: cfg.OutlineWidth}
	c.Session = presenter.NewSessionPresenter(source, c.Client, c.Console, preview, style, logger)
	c.State = presenter.NewStatePresenter(c.Console)
	c.Session.Selector().AddStateListener(c.State.OnState)
	return c
}
