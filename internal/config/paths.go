package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Paths contains all the application paths
// This is the single source of truth for ALL file paths in the application
type Paths struct {
	ExecutableDir string
	DataDir       string
	UploadsDir    string
	ExportsDir    string
	LogsDir       string

	// Well-known export files (inside ExportsDir)
	LineItemsCSV    string
	OrderSummaryCSV string
	KPIReportCSV    string
}

// GetPaths returns the application paths relative to the executable location.
// All paths are ALWAYS relative to the executable directory, never the
// current working directory.
func GetPaths() (*Paths, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to get executable path: %v", err)
	}

	// Resolve symlinks to get the actual executable location
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve executable symlinks: %v", err)
	}

	exeDir := filepath.Dir(exe)

	// Directory structure:
	// dist/
	//   ├── config.yaml
	//   ├── data/
	//   │   ├── uploads/   (uploaded workbooks, latest run only)
	//   │   └── exports/   (generated CSV exports)
	//   └── logs/
	dataDir := filepath.Join(exeDir, "data")
	exportsDir := filepath.Join(dataDir, "exports")

	paths := &Paths{
		ExecutableDir: exeDir,
		DataDir:       dataDir,
		UploadsDir:    filepath.Join(dataDir, "uploads"),
		ExportsDir:    exportsDir,
		LogsDir:       filepath.Join(exeDir, "logs"),

		LineItemsCSV:    filepath.Join(exportsDir, "line_items.csv"),
		OrderSummaryCSV: filepath.Join(exportsDir, "order_summary.csv"),
		KPIReportCSV:    filepath.Join(exportsDir, "kpi_report.csv"),
	}

	return paths, nil
}

// EnsureDirectories creates all required directories if they don't exist
func (p *Paths) EnsureDirectories() error {
	directories := []string{
		p.DataDir,
		p.UploadsDir,
		p.ExportsDir,
		p.LogsDir,
	}

	logger := slog.Default()

	for _, dir := range directories {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %v", dir, err)
		}

		if logger != nil {
			logger.Debug("Ensured directory exists",
				slog.String("directory", dir))
		}
	}

	return nil
}

// LogPathResolution logs every resolved path at startup for debugging
func (p *Paths) LogPathResolution() {
	slog.Default().Info("Resolved application paths",
		slog.String("executable_dir", p.ExecutableDir),
		slog.String("data_dir", p.DataDir),
		slog.String("uploads_dir", p.UploadsDir),
		slog.String("exports_dir", p.ExportsDir),
		slog.String("logs_dir", p.LogsDir))
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
