package compare

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"license-reconciler/core/reconcile"
	"license-reconciler/core/skumap"
	"license-reconciler/core/storage"
	"license-reconciler/core/xlsx"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const (
	runPrefix    = "runs/"
	workbookName = "compared.xlsx"
	logName      = "decisions.json"

	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Service runs comparisons and manages the run archive.
type Service struct {
	client  storage.Client
	bucket  string
	logger  *zap.Logger
	mapPath string
}

// NewService creates a new compare service. client may be nil when the run
// archive is disabled; comparisons still work, they are just not persisted.
func NewService(client storage.Client, bucket string, logger *zap.Logger, mapPath string) *Service {
	return &Service{
		client:  client,
		bucket:  bucket,
		logger:  logger,
		mapPath: mapPath,
	}
}

// Report is the JSON-facing result of one comparison run.
type Report struct {
	RunID    string                `json:"run_id"`
	Summary  reconcile.Summary     `json:"summary"`
	Rows     []reconcile.RowResult `json:"rows"`
	Log      []reconcile.LogEntry  `json:"log"`
	Archived bool                  `json:"archived"`
}

// RunInfo describes one archived run.
type RunInfo struct {
	RunID       string `json:"run_id"`
	HasWorkbook bool   `json:"has_workbook"`
	HasLog      bool   `json:"has_log"`
}

// Exceptions loads the SKU exception table from the configured path. A
// corrupt file is logged as a warning and treated as empty, never fatal.
func (s *Service) Exceptions() skumap.Map {
	m, err := skumap.Load(s.mapPath)
	if err != nil {
		s.logger.Warn("SKU exception table unreadable, continuing without exceptions",
			zap.String("path", s.mapPath), zap.Error(err))
	}
	return m
}

// Run reconciles a PRE-EA workbook against a CSSM workbook.
//
// It returns the report and the annotated PRE-EA workbook bytes. Schema
// problems (unreadable workbook, missing sheet or required column) abort the
// run; row-level issues only surface as per-row outcomes. When the archive is
// configured the artifacts are uploaded under runs/<run-id>/.
func (s *Service) Run(ctx context.Context, preEABytes, cssmBytes []byte, exceptions skumap.Map) (*Report, []byte, error) {
	preEAFile, err := excelize.OpenReader(bytes.NewReader(preEABytes))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open PRE-EA workbook: %w", err)
	}
	defer preEAFile.Close()

	cssmFile, err := excelize.OpenReader(bytes.NewReader(cssmBytes))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open CSSM workbook: %w", err)
	}
	defer cssmFile.Close()

	preEA, err := xlsx.ReadTable(preEAFile, xlsx.PreEASpec())
	if err != nil {
		return nil, nil, err
	}
	cssm, err := xlsx.ReadTable(cssmFile, xlsx.CSSMSpec())
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info("Starting comparison",
		zap.Int("pre_ea_rows", len(preEA)),
		zap.Int("cssm_rows", len(cssm)),
		zap.Int("exceptions", len(exceptions)),
	)

	result, log, err := reconcile.Reconcile(preEA, cssm, exceptions)
	if err != nil {
		return nil, nil, err
	}
	for _, entry := range log {
		s.logger.Info("Row decided",
			zap.Int("row", entry.Row),
			zap.String("order_number", entry.OrderNumber),
			zap.String("sku", entry.SKU),
			zap.Int("matched", entry.Matched),
			zap.String("outcome", string(entry.Outcome)),
			zap.String("detail", entry.Detail),
		)
	}
	s.logger.Info("Comparison finished",
		zap.Int("total", result.Summary.Total),
		zap.Int("not_found", result.Summary.NotFound),
		zap.Int("quantity_mismatch", result.Summary.QuantityMismatch),
		zap.Int("date_issue", result.Summary.DateIssue),
		zap.Int("ok", result.Summary.OK),
	)

	if err := xlsx.Annotate(preEAFile, result.Rows); err != nil {
		return nil, nil, fmt.Errorf("failed to annotate workbook: %w", err)
	}
	buf, err := preEAFile.WriteToBuffer()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to serialize annotated workbook: %w", err)
	}
	workbook := buf.Bytes()

	report := &Report{
		RunID:   uuid.NewString(),
		Summary: result.Summary,
		Rows:    result.Rows,
		Log:     log,
	}

	if s.client != nil {
		if err := s.archive(ctx, report.RunID, workbook, log); err != nil {
			// Archive failures degrade the run to unarchived, they do not
			// discard a finished comparison.
			s.logger.Warn("Failed to archive run", zap.String("run_id", report.RunID), zap.Error(err))
		} else {
			report.Archived = true
		}
	}

	return report, workbook, nil
}

// ListRuns lists archived runs, newest object layout first by run ID.
func (s *Service) ListRuns(ctx context.Context) ([]RunInfo, error) {
	if s.client == nil {
		return []RunInfo{}, nil
	}

	runs := map[string]*RunInfo{}
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    runPrefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list runs: %w", obj.Err)
		}
		rest := strings.TrimPrefix(obj.Key, runPrefix)
		parts := strings.SplitN(rest, "/", 2)
		if len(parts) != 2 {
			continue
		}
		id, artifact := parts[0], parts[1]
		info, ok := runs[id]
		if !ok {
			info = &RunInfo{RunID: id}
			runs[id] = info
		}
		switch artifact {
		case workbookName:
			info.HasWorkbook = true
		case logName:
			info.HasLog = true
		}
	}

	out := make([]RunInfo, 0, len(runs))
	for _, info := range runs {
		out = append(out, *info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RunID < out[j].RunID })
	return out, nil
}

// FetchWorkbook streams an archived annotated workbook.
func (s *Service) FetchWorkbook(ctx context.Context, runID string) ([]byte, error) {
	return s.fetch(ctx, runID, workbookName)
}

// FetchLog streams an archived decision log.
func (s *Service) FetchLog(ctx context.Context, runID string) ([]byte, error) {
	return s.fetch(ctx, runID, logName)
}

// DeleteRun removes both artifacts of an archived run.
func (s *Service) DeleteRun(ctx context.Context, runID string) error {
	if s.client == nil {
		return fmt.Errorf("run archive is not configured")
	}
	for _, artifact := range []string{workbookName, logName} {
		if err := s.client.RemoveObject(ctx, s.bucket, runPrefix+runID+"/"+artifact, minio.RemoveObjectOptions{}); err != nil {
			return fmt.Errorf("failed to delete %s of run %s: %w", artifact, runID, err)
		}
	}
	return nil
}

func (s *Service) fetch(ctx context.Context, runID, artifact string) ([]byte, error) {
	if s.client == nil {
		return nil, fmt.Errorf("run archive is not configured")
	}
	obj, err := s.client.GetObject(ctx, s.bucket, runPrefix+runID+"/"+artifact, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s of run %s: %w", artifact, runID, err)
	}
	defer obj.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(obj); err != nil {
		return nil, fmt.Errorf("failed to read %s of run %s: %w", artifact, runID, err)
	}
	return buf.Bytes(), nil
}

func (s *Service) archive(ctx context.Context, runID string, workbook []byte, log []reconcile.LogEntry) error {
	logData, err := json.MarshalIndent(log, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode decision log: %w", err)
	}

	if _, err := s.client.PutObject(ctx, s.bucket, runPrefix+runID+"/"+workbookName,
		bytes.NewReader(workbook), int64(len(workbook)),
		minio.PutObjectOptions{ContentType: xlsxContentType}); err != nil {
		return fmt.Errorf("failed to upload workbook: %w", err)
	}
	if _, err := s.client.PutObject(ctx, s.bucket, runPrefix+runID+"/"+logName,
		bytes.NewReader(logData), int64(len(logData)),
		minio.PutObjectOptions{ContentType: "application/json"}); err != nil {
		return fmt.Errorf("failed to upload decision log: %w", err)
	}
	return nil
}
