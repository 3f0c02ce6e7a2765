package app

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/klemjul/msgdump/internal/export"
	"github.com/klemjul/msgdump/internal/format"
	"github.com/klemjul/msgdump/internal/graph"
	"github.com/klemjul/msgdump/internal/transcript"
	"github.com/klemjul/msgdump/internal/ui"
	"github.com/klemjul/msgdump/internal/upload"
)

type GraphService interface {
	NewClient(opts graph.ClientOptions) graph.Client
}

type ExportService interface {
	NewExporter(format string) (export.Exporter, error)
}

type UploadService interface {
	NewUploader(apiKey string) (upload.Uploader, error)
}

type TUIService interface {
	InitialModel(opts ui.InitialModelOptions) ui.TranscriptViewModel
	Run(model ui.TranscriptViewModel) (returnModel tea.Model, returnErr error)
}

type TextFormatService interface {
	FormatMarkdown(text string) (string, error)
	FormatTranscript(t transcript.Transcript) (string, error)
}

type App interface {
	Graph() GraphService
	Export() ExportService
	Upload() UploadService
	TUI() TUIService
	Format() TextFormatService
}

type DefaultGraphService struct{}

type DefaultExportService struct{}

type DefaultUploadService struct{}

type DefaultTUIService struct{}

type DefaultTextFormatService struct{}

type DefaultApp struct {
	graph  GraphService
	export ExportService
	upload UploadService
	tui    TUIService
	format TextFormatService
}

func (a *DefaultApp) Graph() GraphService       { return a.graph }
func (a *DefaultApp) Export() ExportService     { return a.export }
func (a *DefaultApp) Upload() UploadService     { return a.upload }
func (a *DefaultApp) TUI() TUIService           { return a.tui }
func (a *DefaultApp) Format() TextFormatService { return a.format }

func (g *DefaultGraphService) NewClient(opts graph.ClientOptions) graph.Client {
	return graph.NewClient(opts)
}

func (e *DefaultExportService) NewExporter(format string) (export.Exporter, error) {
	return export.NewExporter(format)
}

func (u *DefaultUploadService) NewUploader(apiKey string) (upload.Uploader, error) {
	return upload.NewOpenAIUploader(apiKey)
}

func (c *DefaultTUIService) InitialModel(opts ui.InitialModelOptions) ui.TranscriptViewModel {
	return ui.InitialModel(opts)
}
func (c *DefaultTUIService) Run(model ui.TranscriptViewModel) (returnModel tea.Model, returnErr error) {
	return tea.NewProgram(model, tea.WithAltScreen()).Run()
}

func (f *DefaultTextFormatService) FormatMarkdown(text string) (string, error) {
	return format.FormatMarkdown(text)
}

func (f *DefaultTextFormatService) FormatTranscript(t transcript.Transcript) (string, error) {
	return format.FormatTranscript(t)
}

func NewDefaultApp() App {
	return &DefaultApp{
		graph:  &DefaultGraphService{},
		export: &DefaultExportService{},
		upload: &DefaultUploadService{},
		tui:    &DefaultTUIService{},
		format: &DefaultTextFormatService{},
	}
}
