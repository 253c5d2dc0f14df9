package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"license-reconciler/core/config"
	"license-reconciler/core/logger"
	"license-reconciler/core/storage"
	"license-reconciler/core/utils"
	"license-reconciler/feature/compare"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the compare command
	compareMapPath   string
	compareOutputDir string
	compareArchive   bool
)

// compareCmd runs a batch comparison of two workbooks.
var compareCmd = &cobra.Command{
	Use:   "compare <pre-ea.xlsx> <cssm.xlsx>",
	Short: "Compare a PRE-EA workbook against a CSSM export",
	Long: `Compare a PRE-EA workbook against a CSSM export and color-code the results.

The annotated copy of the PRE-EA workbook and the per-row decision log are
written to the output directory, which is emptied before each run.

Row colors:
  RED     order number / SKU pair not found in CSSM
  BLUE    quantity mismatch
  YELLOW  expiration date missing, unparseable, or exceeded
  GREEN   all fields agree

Examples:
  # Compare with the default sku_map.json
  license-reconciler compare pre-ea.xlsx cssm.xlsx

  # Explicit exception table and output directory
  license-reconciler compare pre-ea.xlsx cssm.xlsx --map sku_map.json --output-dir out

  # Also archive the run to the configured object storage
  license-reconciler compare pre-ea.xlsx cssm.xlsx --archive`,
	Args: cobra.ExactArgs(2),
	RunE: runCompare,
}

func init() {
	compareCmd.Flags().StringVarP(&compareMapPath, "map", "m", "", "Path to the SKU exception table (defaults to the configured skumap path)")
	compareCmd.Flags().StringVarP(&compareOutputDir, "output-dir", "o", "output_files", "Directory for the annotated workbook and decision log")
	compareCmd.Flags().BoolVar(&compareArchive, "archive", false, "Upload the run to the configured object storage")

	RootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	preEAPath, cssmPath := args[0], args[1]

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Fresh output directory before logging starts, the decision log lives there.
	if err := utils.EnsureCleanDir(compareOutputDir); err != nil {
		return fmt.Errorf("failed to prepare output directory: %w", err)
	}

	logCfg := cfg.Log
	logCfg.File = filepath.Join(compareOutputDir, "compare.log")
	l, err := logger.New(&logCfg)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	mapPath := compareMapPath
	if mapPath == "" {
		mapPath = cfg.SKUMap.Path
	}

	var client storage.Client
	if compareArchive || cfg.Storage.Enabled {
		client, err = storage.NewClient(cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to connect to storage: %w", err)
		}
		if err := storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region); err != nil {
			return err
		}
	}

	preEA, err := os.ReadFile(preEAPath)
	if err != nil {
		return fmt.Errorf("failed to read PRE-EA workbook: %w", err)
	}
	cssm, err := os.ReadFile(cssmPath)
	if err != nil {
		return fmt.Errorf("failed to read CSSM workbook: %w", err)
	}

	svc := compare.NewService(client, cfg.Storage.Bucket, l, mapPath)
	report, workbook, err := svc.Run(ctx, preEA, cssm, svc.Exceptions())
	if err != nil {
		return err
	}

	outName := strings.TrimSuffix(filepath.Base(preEAPath), ".xlsx") + "_compared.xlsx"
	outPath := filepath.Join(compareOutputDir, outName)
	if err := os.WriteFile(outPath, workbook, 0o644); err != nil {
		return fmt.Errorf("failed to write annotated workbook: %w", err)
	}

	logData, err := json.MarshalIndent(report.Log, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode decision log: %w", err)
	}
	logPath := filepath.Join(compareOutputDir, "decisions.json")
	if err := os.WriteFile(logPath, logData, 0o644); err != nil {
		return fmt.Errorf("failed to write decision log: %w", err)
	}

	l.Info("Comparison written",
		zap.String("workbook", outPath),
		zap.String("decisions", logPath),
		zap.String("run_id", report.RunID),
		zap.Bool("archived", report.Archived),
	)
	return nil
}
