// internal/adapters/output/sink.go
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gokutrace/internal/core/domain"
	"gokutrace/internal/platform/errors"
	"gokutrace/internal/platform/logx"
)

// timestampLayout es el sufijo temporal de los archivos de resultados.
const timestampLayout = "20060102_150405"

// FileSink escribe el ResultSet de una corrida en un archivo del directorio
// de salida. Implementa ports.ResultSink.
type FileSink struct {
	dir    string
	logger logx.Logger
	now    func() time.Time
}

// NewFileSink crea un sink sobre dir ("" = directorio actual).
func NewFileSink(dir string, logger logx.Logger) *FileSink {
	if dir == "" {
		dir = "."
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &FileSink{
		dir:    dir,
		logger: logger.With("component", "sink"),
		now:    time.Now,
	}
}

// Filename retorna el nombre goku_<mode>_results_<timestamp>.<format>.
func Filename(mode domain.Mode, format domain.Format, at time.Time) string {
	return fmt.Sprintf("goku_%s_results_%s.%s", mode, at.Format(timestampLayout), format)
}

// Save escribe el reporte y retorna la ruta creada. Un ResultSet vacío
// retorna "" sin tocar el disco; ante un fallo de escritura también retorna
// "" junto con el error, que el llamador solo registra.
func (s *FileSink) Save(report *domain.Report, format domain.Format) (string, error) {
	if !format.IsValid() {
		return "", errors.Wrapf(domain.ErrUnsupportedFormat, "%q", format)
	}
	if report == nil || report.Results.IsEmpty() {
		s.logger.Debug("nothing to save")
		return "", nil
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(s.dir, Filename(report.Mode, format, s.now()))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create output file: %w", err)
	}

	switch format {
	case domain.FormatCSV:
		err = WriteCSV(f, report.Results)
	default:
		err = WriteJSON(f, report.Results)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("failed to write %s results: %w", format, err)
	}

	s.logger.Info("results saved", "path", path, "format", format, "variants", report.Results.Len())
	return path, nil
}
