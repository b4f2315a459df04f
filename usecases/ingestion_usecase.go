package usecases

import (
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"log/slog"
	"path"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/vlgmic/warehouse-ingest/models"
	"github.com/vlgmic/warehouse-ingest/pure_utils"
	"github.com/vlgmic/warehouse-ingest/repositories"
	"github.com/vlgmic/warehouse-ingest/utils"
)

// IngestionUseCase drives the staged ingestion pipeline: upload → stage on
// HDFS → external table → materialize → drop external table → clean staging
// directory. Every step is a synchronous call; nothing is retried.
type IngestionUseCase struct {
	executorFactory     repositories.ExecutorFactory
	hdfsRepository      repositories.HdfsRepository
	warehouseRepository repositories.WarehouseRepository
	externalSchema      string
	internalSchema      string
}

// StageUpload covers the first half of the pipeline: it parses the uploaded
// file as CSV, strips the header row, and stages the header-stripped copy in
// a fresh remote directory. The returned session carries the header names the
// user maps to types in the second half.
//
// The header-stripped copy is buffered per request; it is never written to a
// shared local path, so concurrent uploads of identically named files cannot
// clobber each other.
func (uc IngestionUseCase) StageUpload(
	ctx context.Context,
	filename string,
	file io.Reader,
) (models.UploadSession, error) {
	logger := utils.LoggerFromContext(ctx)

	if filename == "" {
		return models.UploadSession{}, models.ErrMissingFile
	}
	filename = path.Base(filename)

	headers, stripped, rowCount, err := stripCsvHeader(file)
	if err != nil {
		return models.UploadSession{}, errors.Mark(err, models.ErrParseCsv)
	}

	stagingDir := models.NewStagingDirectory()
	remoteFile := stagingDir + "/" + filename

	if err := uc.hdfsRepository.Mkdirs(ctx, stagingDir); err != nil {
		return models.UploadSession{}, errors.Mark(err, models.ErrUpload)
	}

	if err := uc.hdfsRepository.Upload(ctx, remoteFile, stripped); err != nil {
		// The directory was already created; remove it so a failed upload
		// leaves no trace. Best-effort only.
		if cleanupErr := uc.hdfsRepository.DeleteRecursive(ctx, stagingDir); cleanupErr != nil {
			logger.WarnContext(ctx, "failed to clean up staging directory after upload failure",
				slog.String("directory", stagingDir), slog.String("error", cleanupErr.Error()))
		}
		return models.UploadSession{}, errors.Mark(err, models.ErrUpload)
	}

	logger.InfoContext(ctx, "staged uploaded file",
		slog.String("file", remoteFile), slog.Int("data_rows", rowCount))

	return models.UploadSession{
		Filename:     filename,
		Headers:      headers,
		StagingDir:   stagingDir,
		RemoteFile:   remoteFile,
		DataRowCount: rowCount,
	}, nil
}

// stripCsvHeader reads the whole file, takes the first record as column names
// and re-encodes the remaining records, so the staged copy has exactly one
// line per data row.
func stripCsvHeader(file io.Reader) (headers []string, stripped *bytes.Buffer, rowCount int, err error) {
	reader := csv.NewReader(pure_utils.NewReaderWithoutBom(file))
	reader.FieldsPerRecord = -1

	headers, err = reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, nil, 0, errors.New("the file is empty")
		}
		return nil, nil, 0, err
	}

	stripped = &bytes.Buffer{}
	writer := csv.NewWriter(stripped)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, 0, err
		}
		if err := writer.Write(record); err != nil {
			return nil, nil, 0, err
		}
		rowCount++
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, nil, 0, err
	}
	return headers, stripped, rowCount, nil
}

// MaterializeMapping covers the second half of the pipeline. Each completed
// step pushes its inverse action; on any later failure the stack is unwound
// so no orphaned catalog object or staging directory survives the request.
func (uc IngestionUseCase) MaterializeMapping(
	ctx context.Context,
	stagingDir string,
	remoteFile string,
	mapping models.ColumnMapping,
) (models.IngestionResult, error) {
	logger := utils.LoggerFromContext(ctx)

	// Everything below touches remote state: reject bad input first.
	if err := mapping.Validate(); err != nil {
		return models.IngestionResult{}, err
	}
	if err := validateStagingPaths(stagingDir, remoteFile); err != nil {
		return models.IngestionResult{}, err
	}

	exec := uc.executorFactory.NewExecutor()
	externalRef := models.StagedTableRef{Schema: uc.externalSchema, Table: mapping.TableName}
	internalRef := models.StagedTableRef{Schema: uc.internalSchema, Table: mapping.TableName}

	// The staging directory already exists, so its inverse is on the stack
	// from the start.
	compensations := compensationStack{}
	compensations.push("delete staging directory", func(ctx context.Context) error {
		return uc.hdfsRepository.DeleteRecursive(ctx, stagingDir)
	})

	// Detect a name collision before creating any catalog object; the CTAS
	// would only fail after the external table already exists.
	exists, err := uc.warehouseRepository.TableExists(ctx, exec, internalRef)
	if err != nil {
		compensations.unwind(ctx, logger)
		return models.IngestionResult{}, markSchemaError(err)
	}
	if exists {
		compensations.unwind(ctx, logger)
		return models.IngestionResult{}, errors.Wrapf(models.ConflictError,
			"table %s already exists", internalRef.QualifiedName())
	}

	if err := uc.warehouseRepository.CreateExternalTable(ctx, exec, externalRef, remoteFile, mapping); err != nil {
		compensations.unwind(ctx, logger)
		return models.IngestionResult{}, markSchemaError(err)
	}
	compensations.push("drop external table", func(ctx context.Context) error {
		return uc.warehouseRepository.DropExternalTable(ctx, exec, externalRef)
	})

	if err := uc.warehouseRepository.CreateTableFromExternal(ctx, exec, externalRef, internalRef); err != nil {
		compensations.unwind(ctx, logger)
		return models.IngestionResult{}, markSchemaError(err)
	}
	compensations.push("drop materialized table", func(ctx context.Context) error {
		return uc.warehouseRepository.DropTable(ctx, exec, internalRef)
	})

	// Read the materialized table back. A table that cannot be counted was
	// not materialized in any useful sense.
	rowCount, err := uc.warehouseRepository.CountRows(ctx, exec, internalRef)
	if err != nil {
		compensations.unwind(ctx, logger)
		return models.IngestionResult{}, markSchemaError(err)
	}

	if err := uc.warehouseRepository.DropExternalTable(ctx, exec, externalRef); err != nil {
		compensations.unwind(ctx, logger)
		return models.IngestionResult{}, markSchemaError(err)
	}

	// Success path cleanup. A failure here is logged, never surfaced.
	if err := uc.hdfsRepository.DeleteRecursive(ctx, stagingDir); err != nil {
		logger.WarnContext(ctx, "failed to clean up staging directory",
			slog.String("directory", stagingDir), slog.String("error", err.Error()))
	}

	logger.InfoContext(ctx, "materialized uploaded file into warehouse table",
		slog.String("table", internalRef.QualifiedName()),
		slog.Int64("rows", rowCount))

	return models.IngestionResult{
		ExternalTableName: mapping.TableName,
		InternalTableName: mapping.TableName,
	}, nil
}

func markSchemaError(err error) error {
	if errors.Is(err, models.ConflictError) {
		return err
	}
	return errors.Mark(err, models.ErrSchema)
}

// validateStagingPaths pins the submitted paths to the staging namespace.
// They come back from the client between the two requests of the flow, so a
// forged value must not be able to delete an arbitrary remote directory.
func validateStagingPaths(stagingDir, remoteFile string) error {
	if !strings.HasPrefix(stagingDir, models.StagingDirPrefix) {
		return errors.Wrapf(models.BadParameterError, "%q is not a staging directory", stagingDir)
	}
	if strings.Contains(strings.TrimPrefix(stagingDir, models.StagingDirPrefix), "/") {
		return errors.Wrapf(models.BadParameterError, "%q is not a staging directory", stagingDir)
	}
	if !strings.HasPrefix(remoteFile, stagingDir+"/") {
		return errors.Wrapf(models.BadParameterError,
			"%q is not inside the staging directory %q", remoteFile, stagingDir)
	}
	if strings.Contains(remoteFile, "..") {
		return errors.Wrapf(models.BadParameterError, "%q is not a valid staging path", remoteFile)
	}
	return nil
}

type compensation struct {
	name string
	run  func(ctx context.Context) error
}

// compensationStack records the inverse of every completed pipeline step so a
// later failure can undo them in reverse order. Unwinding is best-effort:
// each inverse is attempted and failures are logged, not propagated.
type compensationStack []compensation

func (s *compensationStack) push(name string, run func(ctx context.Context) error) {
	*s = append(*s, compensation{name: name, run: run})
}

func (s *compensationStack) unwind(ctx context.Context, logger *slog.Logger) {
	for i := len(*s) - 1; i >= 0; i-- {
		comp := (*s)[i]
		if err := comp.run(ctx); err != nil {
			logger.WarnContext(ctx, "compensating action failed",
				slog.String("action", comp.name), slog.String("error", err.Error()))
		}
	}
	*s = nil
}
