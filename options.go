package docxhtml

import "go.uber.org/zap"

// ConvertOptions holds configuration for a conversion.
type ConvertOptions struct {
	fullDocument  bool
	sanitize      bool
	ignoreSpacing bool

	logger *zap.Logger
}

// defaultOptions returns the default conversion options.
func defaultOptions() ConvertOptions {
	return ConvertOptions{
		fullDocument:  false,
		sanitize:      false,
		ignoreSpacing: false,
		logger:        zap.NewNop(),
	}
}

// clone creates a copy of ConvertOptions. The logger is shared.
func (o ConvertOptions) clone() ConvertOptions {
	return ConvertOptions{
		fullDocument:  o.fullDocument,
		sanitize:      o.sanitize,
		ignoreSpacing: o.ignoreSpacing,
		logger:        o.logger,
	}
}
