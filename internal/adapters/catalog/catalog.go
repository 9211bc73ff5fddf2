// Package catalog carga el catálogo de plataformas desde JSON o YAML.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"gokutrace/internal/core/domain"
	"gokutrace/internal/platform/logx"
)

// DefaultPath es el archivo buscado cuando no se indica otro.
const DefaultPath = "platforms.json"

// FileLoader implementa ports.PlatformCatalog sobre el sistema de archivos.
type FileLoader struct {
	logger logx.Logger
}

// NewFileLoader crea un loader.
func NewFileLoader(logger logx.Logger) *FileLoader {
	if logger == nil {
		logger = logx.Nop()
	}
	return &FileLoader{logger: logger.With("component", "catalog")}
}

// Load lee el catálogo de path. Nunca falla: un archivo ausente o ilegible,
// o sin ninguna entrada válida, produce el catálogo por defecto. Las entradas
// inválidas o duplicadas se descartan con una advertencia.
func (l *FileLoader) Load(path string) (domain.Catalog, []string) {
	if path == "" {
		path = DefaultPath
	}

	var warnings []string
	warn := func(format string, args ...any) {
		msg := fmt.Sprintf(format, args...)
		l.logger.Warn(msg, "path", path)
		warnings = append(warnings, msg)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		warn("platform catalog unavailable, using default catalog: %v", err)
		return domain.DefaultCatalog(), warnings
	}

	entries, err := Parse(data, formatOf(path))
	if err != nil {
		warn("malformed platform catalog, using default catalog: %v", err)
		return domain.DefaultCatalog(), warnings
	}

	seen := make(map[string]struct{}, len(entries))
	valid := make([]domain.Platform, 0, len(entries))
	for i, p := range entries {
		p.Name = strings.TrimSpace(p.Name)
		p.URLTemplate = strings.TrimSpace(p.URLTemplate)

		if err := p.Validate(); err != nil {
			warn("skipping platform entry %d: %v", i, err)
			continue
		}
		if _, dup := seen[p.Name]; dup {
			warn("skipping platform entry %d: %v: %s", i, domain.ErrDuplicatePlatform, p.Name)
			continue
		}
		seen[p.Name] = struct{}{}
		valid = append(valid, p)
	}

	catalog, err := domain.NewCatalog(valid)
	if err != nil {
		warn("no usable platform entries, using default catalog: %v", err)
		return domain.DefaultCatalog(), warnings
	}

	l.logger.Debug("platform catalog loaded", "path", path, "platforms", catalog.Len())
	return catalog, warnings
}

// Format de archivo del catálogo.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

func formatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Parse decodifica una lista de plataformas sin validarlas.
func Parse(data []byte, format Format) ([]domain.Platform, error) {
	var entries []domain.Platform

	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &entries); err != nil {
			return nil, fmt.Errorf("yaml: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &entries); err != nil {
			return nil, fmt.Errorf("json: %w", err)
		}
	}
	return entries, nil
}
