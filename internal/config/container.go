package config

import (
	"pdf-toolkit-server/internal/domain"
	"pdf-toolkit-server/internal/repository"
	"pdf-toolkit-server/internal/service"
	"pdf-toolkit-server/internal/session"
	"pdf-toolkit-server/pkg/logger"
)

// Container holds all application dependencies
type Container struct {
	Config   domain.Config
	Logger   domain.Logger
	Blobs    domain.BlobStore
	Sessions *session.Store

	Engine     domain.PDFEngine
	Extractor  domain.TextExtractor
	DocxWriter domain.DocumentWriter

	MergeService   domain.MergeService
	SplitService   domain.SplitService
	ConvertService domain.ConvertService
}

// NewContainer creates a new dependency injection container
func NewContainer() (*Container, error) {
	config := NewConfig()
	appLogger := logger.NewLogger(config.GetLogLevel())

	blobs, err := repository.NewFileBlobRepository(config.GetUploadPath(), appLogger)
	if err != nil {
		return nil, err
	}

	sessions := session.NewStore(blobs, appLogger)

	engine := service.NewPDFEngine()
	extractor := service.NewTextExtractor(appLogger)
	docxWriter := service.NewDocxWriter()

	return &Container{
		Config:     config,
		Logger:     appLogger,
		Blobs:      blobs,
		Sessions:   sessions,
		Engine:     engine,
		Extractor:  extractor,
		DocxWriter: docxWriter,

		MergeService:   service.NewMergeService(sessions, blobs, engine, appLogger),
		SplitService:   service.NewSplitService(sessions, blobs, engine, appLogger),
		ConvertService: service.NewConvertService(sessions, blobs, engine, extractor, docxWriter, appLogger),
	}, nil
}
