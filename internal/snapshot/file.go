package snapshot

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"fjacquet/spendlog/internal/fileutils"
	"fjacquet/spendlog/internal/ledgererror"
	"fjacquet/spendlog/internal/logging"
)

// FileExtension is the only extension ImportFile accepts.
const FileExtension = ".json"

const readChunk = 32 * 1024

// ExportFileName returns the name an export with extension ext written at
// the service's current instant gets.
func (s *Service) ExportFileName(ext string) string {
	return "spendlog-export-" + s.now().UTC().Format("20060102T150405Z") + ext
}

// ExportFile writes the snapshot as indented JSON into dir and returns the
// path written.
func (s *Service) ExportFile(dir string) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := fileutils.EnsureDirectoryExists(dir); err != nil {
		return "", err
	}
	data, err := s.ExportJSON()
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, s.ExportFileName(FileExtension))
	if err := fileutils.WriteFileAtomic(path, append(data, '\n'), fileutils.PermissionDataFile); err != nil {
		return "", err
	}
	s.logger.Info("Exported snapshot", logging.F(logging.FieldFile, path))
	return path, nil
}

// ExportCSVFile writes the transactions as CSV into dir and returns the
// path written.
func (s *Service) ExportCSVFile(dir string) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := fileutils.EnsureDirectoryExists(dir); err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := s.ExportCSV(&buf); err != nil {
		return "", err
	}
	path := filepath.Join(dir, s.ExportFileName(".csv"))
	if err := fileutils.WriteFileAtomic(path, buf.Bytes(), fileutils.PermissionDataFile); err != nil {
		return "", err
	}
	s.logger.Info("Exported CSV", logging.F(logging.FieldFile, path))
	return path, nil
}

// ImportFile reads the whole of path and imports it. Only .json files are
// accepted; ctx cancels the read.
func (s *Service) ImportFile(ctx context.Context, path string, mode Mode) (ImportResult, error) {
	if !fileutils.HasExtension(path, FileExtension) {
		return ImportResult{}, ledgererror.NewDocumentError("only %s files can be imported, got %s", FileExtension, filepath.Base(path))
	}

	data, err := readAll(ctx, path)
	if err != nil {
		return ImportResult{}, err
	}
	s.logger.Debug("Read import file",
		logging.F(logging.FieldFile, path),
		logging.F(logging.FieldBytes, len(data)))
	return s.Import(data, mode)
}

func readAll(ctx context.Context, path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening import file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var buf bytes.Buffer
	chunk := make([]byte, readChunk)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		n, err := f.Read(chunk)
		buf.Write(chunk[:n])
		if err == io.EOF {
			return buf.Bytes(), nil
		}
		if err != nil {
			return nil, fmt.Errorf("error reading import file: %w", err)
		}
	}
}
