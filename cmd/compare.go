package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/csvdelta/csvdelta/cmd/compressors"
	"github.com/csvdelta/csvdelta/cmd/engine"
	"github.com/csvdelta/csvdelta/cmd/tabio"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Comparison flags
	compareKeyColumns       []string
	compareExcludedColumns  []string
	compareSchemaMismatch   string
	compareIncludeUnchanged bool

	// Output flags
	compareOutput           string
	compareOutputFormat     string
	compareCompression      string
	compareCompressionLevel int
	compareDuplicatesFile   string

	// Source 1 flags
	compareSource1Type       string
	compareSource1Path       string
	compareSource1DbHost     string
	compareSource1DbPort     int
	compareSource1DbUser     string
	compareSource1DbPassword string
	compareSource1DbName     string
	compareSource1DbSSLMode  string
	compareSource1DbTable    string
	compareSource1S3Endpoint string
	compareSource1S3Bucket   string
	compareSource1S3AccessKey string
	compareSource1S3SecretKey string
	compareSource1S3Region   string

	// Source 2 flags
	compareSource2Type       string
	compareSource2Path       string
	compareSource2DbHost     string
	compareSource2DbPort     int
	compareSource2DbUser     string
	compareSource2DbPassword string
	compareSource2DbName     string
	compareSource2DbSSLMode  string
	compareSource2DbTable    string
	compareSource2S3Endpoint string
	compareSource2S3Bucket   string
	compareSource2S3AccessKey string
	compareSource2S3SecretKey string
	compareSource2S3Region   string
)

var compareCmd = &cobra.Command{
	Use:   "compare [first] [second]",
	Short: "Compare two tabular datasets by row key",
	Long: `Compare two tabular datasets (CSV or JSONL) by composite row key.
Inputs can be local files, S3 objects, or PostgreSQL tables. The result table
lists every added, removed, and changed row with old/new values for each
changed cell. Rows whose key is duplicated within a table are excluded from
the comparison and written to a separate duplicates file.`,
	Args: cobra.MaximumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		runCompare(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(compareCmd)

	// Comparison flags
	compareCmd.Flags().StringSliceVar(&compareKeyColumns, "key-columns", nil, "columns that identify a logical row (required, order-significant)")
	compareCmd.Flags().StringSliceVar(&compareExcludedColumns, "excluded-columns", nil, "columns to remove from both tables before comparison")
	compareCmd.Flags().StringVar(&compareSchemaMismatch, "schema-mismatch", "warn", "policy for column-set differences: fail, warn, ignore")
	compareCmd.Flags().BoolVar(&compareIncludeUnchanged, "include-unchanged", false, "keep unchanged rows and never-changed columns in the output")

	// Output flags
	compareCmd.Flags().StringVarP(&compareOutput, "output", "o", "comparison.csv", "output file path")
	compareCmd.Flags().StringVar(&compareOutputFormat, "output-format", "", "output format: csv, jsonl (default: derived from output path)")
	compareCmd.Flags().StringVar(&compareCompression, "compression", "none", "output compression: zstd, lz4, gzip, none")
	compareCmd.Flags().IntVar(&compareCompressionLevel, "compression-level", 0, "compression level (zstd: 1-22, lz4/gzip: 1-9, 0 = default)")
	compareCmd.Flags().StringVar(&compareDuplicatesFile, "duplicates-file", "", "path for excluded duplicate rows (default: <output>_duplicates.<ext>)")

	// Source 1 flags
	compareCmd.Flags().StringVar(&compareSource1Type, "source1-type", "file", "type of source1: file, s3, db")
	compareCmd.Flags().StringVar(&compareSource1Path, "source1-path", "", "source1 file path or S3 object key (or first positional argument)")
	compareCmd.Flags().StringVar(&compareSource1DbHost, "source1-db-host", "localhost", "source1 PostgreSQL host")
	compareCmd.Flags().IntVar(&compareSource1DbPort, "source1-db-port", 5432, "source1 PostgreSQL port")
	compareCmd.Flags().StringVar(&compareSource1DbUser, "source1-db-user", "", "source1 PostgreSQL user")
	compareCmd.Flags().StringVar(&compareSource1DbPassword, "source1-db-password", "", "source1 PostgreSQL password")
	compareCmd.Flags().StringVar(&compareSource1DbName, "source1-db-name", "", "source1 PostgreSQL database name")
	compareCmd.Flags().StringVar(&compareSource1DbSSLMode, "source1-db-sslmode", "disable", "source1 PostgreSQL SSL mode")
	compareCmd.Flags().StringVar(&compareSource1DbTable, "source1-db-table", "", "source1 PostgreSQL table name")
	compareCmd.Flags().StringVar(&compareSource1S3Endpoint, "source1-s3-endpoint", "", "source1 S3 endpoint")
	compareCmd.Flags().StringVar(&compareSource1S3Bucket, "source1-s3-bucket", "", "source1 S3 bucket")
	compareCmd.Flags().StringVar(&compareSource1S3AccessKey, "source1-s3-access-key", "", "source1 S3 access key")
	compareCmd.Flags().StringVar(&compareSource1S3SecretKey, "source1-s3-secret-key", "", "source1 S3 secret key")
	compareCmd.Flags().StringVar(&compareSource1S3Region, "source1-s3-region", "auto", "source1 S3 region")

	// Source 2 flags
	compareCmd.Flags().StringVar(&compareSource2Type, "source2-type", "file", "type of source2: file, s3, db")
	compareCmd.Flags().StringVar(&compareSource2Path, "source2-path", "", "source2 file path or S3 object key (or second positional argument)")
	compareCmd.Flags().StringVar(&compareSource2DbHost, "source2-db-host", "localhost", "source2 PostgreSQL host")
	compareCmd.Flags().IntVar(&compareSource2DbPort, "source2-db-port", 5432, "source2 PostgreSQL port")
	compareCmd.Flags().StringVar(&compareSource2DbUser, "source2-db-user", "", "source2 PostgreSQL user")
	compareCmd.Flags().StringVar(&compareSource2DbPassword, "source2-db-password", "", "source2 PostgreSQL password")
	compareCmd.Flags().StringVar(&compareSource2DbName, "source2-db-name", "", "source2 PostgreSQL database name")
	compareCmd.Flags().StringVar(&compareSource2DbSSLMode, "source2-db-sslmode", "disable", "source2 PostgreSQL SSL mode")
	compareCmd.Flags().StringVar(&compareSource2DbTable, "source2-db-table", "", "source2 PostgreSQL table name")
	compareCmd.Flags().StringVar(&compareSource2S3Endpoint, "source2-s3-endpoint", "", "source2 S3 endpoint")
	compareCmd.Flags().StringVar(&compareSource2S3Bucket, "source2-s3-bucket", "", "source2 S3 bucket")
	compareCmd.Flags().StringVar(&compareSource2S3AccessKey, "source2-s3-access-key", "", "source2 S3 access key")
	compareCmd.Flags().StringVar(&compareSource2S3SecretKey, "source2-s3-secret-key", "", "source2 S3 secret key")
	compareCmd.Flags().StringVar(&compareSource2S3Region, "source2-s3-region", "auto", "source2 S3 region")

	// Note: We don't use MarkFlagRequired because it checks before viper loads the config file.
	// Instead, validation happens in config.Validate() which runs after all config sources are loaded.

	// Bind comparison flags
	_ = viper.BindPFlag("compare.key_columns", compareCmd.Flags().Lookup("key-columns"))
	_ = viper.BindPFlag("compare.excluded_columns", compareCmd.Flags().Lookup("excluded-columns"))
	_ = viper.BindPFlag("compare.schema_mismatch", compareCmd.Flags().Lookup("schema-mismatch"))
	_ = viper.BindPFlag("compare.include_unchanged", compareCmd.Flags().Lookup("include-unchanged"))
	_ = viper.BindPFlag("compare.output", compareCmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("compare.output_format", compareCmd.Flags().Lookup("output-format"))
	_ = viper.BindPFlag("compare.compression", compareCmd.Flags().Lookup("compression"))
	_ = viper.BindPFlag("compare.compression_level", compareCmd.Flags().Lookup("compression-level"))
	_ = viper.BindPFlag("compare.duplicates_file", compareCmd.Flags().Lookup("duplicates-file"))
}

func runCompare(cmd *cobra.Command, args []string) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "\n❌ PANIC: %v\n", r)
			os.Exit(1)
		}
	}()

	// Helper function to get config value: use flag if set, otherwise use viper, fallback to flag default
	getStringConfig := func(flagValue string, flagName string, viperKey string) string {
		if flag := cmd.Flags().Lookup(flagName); flag != nil && flag.Changed {
			return flagValue
		}
		if viperValue := viper.GetString(viperKey); viperValue != "" {
			return viperValue
		}
		return flagValue
	}
	getIntConfig := func(flagValue int, flagName string, viperKey string) int {
		if flag := cmd.Flags().Lookup(flagName); flag != nil && flag.Changed {
			return flagValue
		}
		if viperValue := viper.GetInt(viperKey); viperValue != 0 {
			return viperValue
		}
		return flagValue
	}

	// Positional arguments name the two inputs; explicit --sourceN-path flags win
	source1Path := getStringConfig(compareSource1Path, "source1-path", "compare.source1.path")
	source2Path := getStringConfig(compareSource2Path, "source2-path", "compare.source2.path")
	if source1Path == "" && len(args) > 0 {
		source1Path = args[0]
	}
	if source2Path == "" && len(args) > 1 {
		source2Path = args[1]
	}

	config := &Config{
		Debug:            viper.GetBool("debug"),
		LogFormat:        viper.GetString("log_format"),
		DryRun:           viper.GetBool("dry_run"),
		KeyColumns:       getStringSliceConfig(cmd, compareKeyColumns, "key-columns", "compare.key_columns"),
		ExcludedColumns:  getStringSliceConfig(cmd, compareExcludedColumns, "excluded-columns", "compare.excluded_columns"),
		SchemaMismatch:   getStringConfig(compareSchemaMismatch, "schema-mismatch", "compare.schema_mismatch"),
		IncludeUnchanged: getBoolConfig(cmd, compareIncludeUnchanged, "include-unchanged", "compare.include_unchanged"),
		Output:           getStringConfig(compareOutput, "output", "compare.output"),
		OutputFormat:     getStringConfig(compareOutputFormat, "output-format", "compare.output_format"),
		Compression:      getStringConfig(compareCompression, "compression", "compare.compression"),
		CompressionLevel: getIntConfig(compareCompressionLevel, "compression-level", "compare.compression_level"),
		DuplicatesFile:   getStringConfig(compareDuplicatesFile, "duplicates-file", "compare.duplicates_file"),
		Source1: SourceConfig{
			Type: getStringConfig(compareSource1Type, "source1-type", "compare.source1.type"),
			Path: source1Path,
			Database: DatabaseConfig{
				Host:     getStringConfig(compareSource1DbHost, "source1-db-host", "compare.source1.db.host"),
				Port:     getIntConfig(compareSource1DbPort, "source1-db-port", "compare.source1.db.port"),
				User:     getStringConfig(compareSource1DbUser, "source1-db-user", "compare.source1.db.user"),
				Password: getStringConfig(compareSource1DbPassword, "source1-db-password", "compare.source1.db.password"),
				Name:     getStringConfig(compareSource1DbName, "source1-db-name", "compare.source1.db.name"),
				SSLMode:  getStringConfig(compareSource1DbSSLMode, "source1-db-sslmode", "compare.source1.db.sslmode"),
				Table:    getStringConfig(compareSource1DbTable, "source1-db-table", "compare.source1.db.table"),
			},
			S3: S3Config{
				Endpoint:  getStringConfig(compareSource1S3Endpoint, "source1-s3-endpoint", "compare.source1.s3.endpoint"),
				Bucket:    getStringConfig(compareSource1S3Bucket, "source1-s3-bucket", "compare.source1.s3.bucket"),
				AccessKey: getStringConfig(compareSource1S3AccessKey, "source1-s3-access-key", "compare.source1.s3.access_key"),
				SecretKey: getStringConfig(compareSource1S3SecretKey, "source1-s3-secret-key", "compare.source1.s3.secret_key"),
				Region:    getStringConfig(compareSource1S3Region, "source1-s3-region", "compare.source1.s3.region"),
			},
		},
		Source2: SourceConfig{
			Type: getStringConfig(compareSource2Type, "source2-type", "compare.source2.type"),
			Path: source2Path,
			Database: DatabaseConfig{
				Host:     getStringConfig(compareSource2DbHost, "source2-db-host", "compare.source2.db.host"),
				Port:     getIntConfig(compareSource2DbPort, "source2-db-port", "compare.source2.db.port"),
				User:     getStringConfig(compareSource2DbUser, "source2-db-user", "compare.source2.db.user"),
				Password: getStringConfig(compareSource2DbPassword, "source2-db-password", "compare.source2.db.password"),
				Name:     getStringConfig(compareSource2DbName, "source2-db-name", "compare.source2.db.name"),
				SSLMode:  getStringConfig(compareSource2DbSSLMode, "source2-db-sslmode", "compare.source2.db.sslmode"),
				Table:    getStringConfig(compareSource2DbTable, "source2-db-table", "compare.source2.db.table"),
			},
			S3: S3Config{
				Endpoint:  getStringConfig(compareSource2S3Endpoint, "source2-s3-endpoint", "compare.source2.s3.endpoint"),
				Bucket:    getStringConfig(compareSource2S3Bucket, "source2-s3-bucket", "compare.source2.s3.bucket"),
				AccessKey: getStringConfig(compareSource2S3AccessKey, "source2-s3-access-key", "compare.source2.s3.access_key"),
				SecretKey: getStringConfig(compareSource2S3SecretKey, "source2-s3-secret-key", "compare.source2.s3.secret_key"),
				Region:    getStringConfig(compareSource2S3Region, "source2-s3-region", "compare.source2.s3.region"),
			},
		},
	}

	// Initialize logger
	initLogger(config.Debug, config.LogFormat)

	// Log startup banner
	logger.Info("")
	logger.Info(fmt.Sprintf("🔍 CSV Delta v%s", Version))
	logger.Info("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")

	printCompareConfig(config)

	logger.Debug("Validating configuration...")
	if err := config.Validate(); err != nil {
		logger.Error(fmt.Sprintf("❌ Configuration error: %s", err.Error()))
		os.Exit(1)
	}
	logger.Debug("Configuration validated successfully")

	// Check for updates in background (non-blocking)
	updateCheckDone := make(chan struct{})
	go func() {
		defer close(updateCheckDone)
		result := checkForUpdates(context.Background(), Version)

		if result.UpdateAvailable {
			logger.Info("")
			logger.Info(fmt.Sprintf("💡 %s", formatUpdateMessage(result)))
		} else if result.Error != nil && config.Debug {
			logger.Debug(fmt.Sprintf("Version check failed: %v", result.Error))
		}
	}()

	select {
	case <-updateCheckDone:
		// Version check completed quickly
	case <-time.After(2 * time.Second):
		logger.Debug("Version check taking longer than expected, continuing...")
	}

	// Use the signal context created in main() before Cobra initialization
	ctx := signalContext
	if ctx == nil {
		// Fallback if SetSignalContext wasn't called (shouldn't happen)
		logger.Warn("Signal context not set, creating fallback...")
		var stop context.CancelFunc
		ctx, stop = signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
	}

	err := executeCompare(ctx, config)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Info("")
			logger.Info("⚠️  Comparison cancelled by user")
			os.Exit(130)
		}
		logger.Error(fmt.Sprintf("❌ Comparison failed: %s", err.Error()))
		os.Exit(1)
	}

	logger.Info("")
	logger.Info("✅ Comparison completed successfully!")
}

// getBoolConfig resolves a boolean setting: an explicitly set flag wins over
// the config file, so --include-unchanged=false overrides a config-file true.
func getBoolConfig(cmd *cobra.Command, flagValue bool, flagName, viperKey string) bool {
	if flag := cmd.Flags().Lookup(flagName); flag != nil && flag.Changed {
		return flagValue
	}
	return viper.GetBool(viperKey)
}

// getStringSliceConfig resolves a string-slice setting: flag if set,
// otherwise the config file, otherwise the flag default.
func getStringSliceConfig(cmd *cobra.Command, flagValue []string, flagName, viperKey string) []string {
	if flag := cmd.Flags().Lookup(flagName); flag != nil && flag.Changed {
		return flagValue
	}
	if viperValue := viper.GetStringSlice(viperKey); len(viperValue) > 0 {
		return viperValue
	}
	return flagValue
}

// executeCompare loads both inputs, runs the comparison, and writes results.
func executeCompare(ctx context.Context, config *Config) error {
	logger.Info("📥 Loading source 1...")
	first, err := loadTable(ctx, "source1", &config.Source1)
	if err != nil {
		return fmt.Errorf("failed to load source1: %w", err)
	}
	logger.Info(fmt.Sprintf("   %d rows, %d columns", len(first.Rows), len(first.Columns)))

	logger.Info("📥 Loading source 2...")
	second, err := loadTable(ctx, "source2", &config.Source2)
	if err != nil {
		return fmt.Errorf("failed to load source2: %w", err)
	}
	logger.Info(fmt.Sprintf("   %d rows, %d columns", len(second.Rows), len(second.Columns)))

	if err := ctx.Err(); err != nil {
		return err
	}

	logger.Info("🔍 Comparing...")
	result, err := engine.Compare(first, second, engine.Options{
		KeyColumns:       config.KeyColumns,
		ExcludedColumns:  config.ExcludedColumns,
		SchemaMismatch:   engine.MismatchPolicy(config.SchemaMismatch),
		IncludeUnchanged: config.IncludeUnchanged,
	})
	if err != nil {
		return err
	}

	for _, diag := range result.Diagnostics {
		logger.Warn(fmt.Sprintf("⚠️  %s", diag.String()))
	}

	printSummary(result)

	if config.DryRun {
		logger.Info("")
		logger.Info(fmt.Sprintf("🏜️  Dry run: would write %d rows to %s", len(result.Output.Rows), config.Output))
		return nil
	}

	format := config.OutputFormat
	if format == "" {
		format = tabio.FormatForPath(config.Output)
	}

	outputPath, err := writeTable(config.Output, format, config.Compression, config.CompressionLevel, result.Output)
	if err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	logger.Info(fmt.Sprintf("💾 Wrote %d rows to %s", len(result.Output.Rows), outputPath))

	if len(result.Duplicates) > 0 {
		duplicatesPath := config.DuplicatesFile
		if duplicatesPath == "" {
			duplicatesPath = duplicatesPathFor(config.Output)
		}
		duplicates := duplicatesTable(first, second, result.Duplicates)
		dupPath, err := writeTable(duplicatesPath, format, config.Compression, config.CompressionLevel, duplicates)
		if err != nil {
			return fmt.Errorf("failed to write duplicates: %w", err)
		}
		logger.Info(fmt.Sprintf("💾 Wrote %d duplicate rows to %s", len(duplicates.Rows), dupPath))
	}

	return nil
}

// printCompareConfig prints a table of configuration information
func printCompareConfig(config *Config) {
	logger.Info("")
	logger.Info("📋 Configuration:")
	logger.Info("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")

	for _, side := range []struct {
		label string
		src   *SourceConfig
	}{{"Source 1", &config.Source1}, {"Source 2", &config.Source2}} {
		logger.Info(fmt.Sprintf("  %s:", side.label))
		logger.Info(fmt.Sprintf("    Type:              %s", side.src.Type))
		switch side.src.Type {
		case "db":
			logger.Info(fmt.Sprintf("    Host:              %s", side.src.Database.Host))
			logger.Info(fmt.Sprintf("    Port:              %d", side.src.Database.Port))
			logger.Info(fmt.Sprintf("    User:              %s", maskString(side.src.Database.User)))
			logger.Info(fmt.Sprintf("    Database:          %s", side.src.Database.Name))
			logger.Info(fmt.Sprintf("    Table:             %s", side.src.Database.Table))
			logger.Info(fmt.Sprintf("    SSL Mode:          %s", side.src.Database.SSLMode))
		case "s3":
			logger.Info(fmt.Sprintf("    Endpoint:          %s", side.src.S3.Endpoint))
			logger.Info(fmt.Sprintf("    Bucket:            %s", side.src.S3.Bucket))
			logger.Info(fmt.Sprintf("    Access Key:        %s", maskString(side.src.S3.AccessKey)))
			logger.Info(fmt.Sprintf("    Region:            %s", side.src.S3.Region))
			logger.Info(fmt.Sprintf("    Key:               %s", side.src.Path))
		default:
			logger.Info(fmt.Sprintf("    Path:              %s", side.src.Path))
		}
	}

	logger.Info("  Comparison:")
	logger.Info(fmt.Sprintf("    Key Columns:       %s", strings.Join(config.KeyColumns, ", ")))
	if len(config.ExcludedColumns) > 0 {
		logger.Info(fmt.Sprintf("    Excluded Columns:  %s", strings.Join(config.ExcludedColumns, ", ")))
	}
	logger.Info(fmt.Sprintf("    Schema Mismatch:   %s", config.SchemaMismatch))
	logger.Info(fmt.Sprintf("    Include Unchanged: %v", config.IncludeUnchanged))

	logger.Info("  Output:")
	logger.Info(fmt.Sprintf("    Path:              %s", config.Output))
	if config.OutputFormat != "" {
		logger.Info(fmt.Sprintf("    Format:            %s", config.OutputFormat))
	} else {
		logger.Info(fmt.Sprintf("    Format:            %s (derived)", tabio.FormatForPath(config.Output)))
	}
	logger.Info(fmt.Sprintf("    Compression:       %s", config.Compression))

	logger.Info("  Settings:")
	logger.Info(fmt.Sprintf("    Dry Run:           %v", config.DryRun))
	logger.Info(fmt.Sprintf("    Debug:             %v", config.Debug))
	logger.Info("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	logger.Info("")
}

func printSummary(result *engine.Result) {
	logger.Info("")
	logger.Info(infoStyle.Render("📊 Summary:"))
	logger.Info(fmt.Sprintf("    Added:     %d", result.Summary.Added))
	logger.Info(fmt.Sprintf("    Removed:   %d", result.Summary.Removed))
	logger.Info(fmt.Sprintf("    Changed:   %d", result.Summary.Changed))
	logger.Info(fmt.Sprintf("    Unchanged: %d", result.Summary.Unchanged))
	if len(result.Duplicates) > 0 {
		logger.Info(fmt.Sprintf("    Excluded duplicate rows: %d", len(result.Duplicates)))
	}
}

// writeTable encodes, compresses, and writes one table. It returns the final
// path, which gains the compression extension when one applies.
func writeTable(path, format, compression string, level int, table *engine.Table) (string, error) {
	var buf bytes.Buffer
	writer, err := tabio.NewWriter(format, &buf)
	if err != nil {
		return "", err
	}
	if err := writer.Write(table); err != nil {
		return "", fmt.Errorf("failed to encode table: %w", err)
	}

	compressor, err := compressors.GetCompressor(compression)
	if err != nil {
		return "", err
	}
	if level == 0 {
		level = compressor.DefaultLevel()
	}
	data, err := compressor.Compress(buf.Bytes(), level)
	if err != nil {
		return "", fmt.Errorf("failed to compress table: %w", err)
	}

	finalPath := path
	if ext := compressor.Extension(); ext != "" && !strings.HasSuffix(path, ext) {
		finalPath = path + ext
	}

	if err := os.WriteFile(finalPath, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", finalPath, err)
	}
	return finalPath, nil
}

// duplicatesPathFor derives the duplicates side-file path from the output
// path: "out.csv" becomes "out_duplicates.csv".
func duplicatesPathFor(output string) string {
	base := output
	for _, ext := range []string{".gz", ".zst", ".lz4"} {
		base = strings.TrimSuffix(base, ext)
	}
	ext := filepath.Ext(base)
	return strings.TrimSuffix(base, ext) + "_duplicates" + ext
}

// duplicatesTable builds the side table of excluded duplicate rows. Columns
// are the first table's columns followed by any extra columns of the second,
// prefixed with the source table name and the display form of the row key.
func duplicatesTable(first, second *engine.Table, duplicates []engine.DuplicateRow) *engine.Table {
	columns := []string{"Table", "Row Key"}
	seen := make(map[string]bool, len(first.Columns)+len(second.Columns))
	for _, col := range first.Columns {
		if !seen[col] {
			seen[col] = true
			columns = append(columns, col)
		}
	}
	for _, col := range second.Columns {
		if !seen[col] {
			seen[col] = true
			columns = append(columns, col)
		}
	}

	table := engine.NewTable("duplicates", columns)
	for _, dup := range duplicates {
		row := engine.Row{
			"Table":   dup.Table,
			"Row Key": engine.DisplayKey(dup.Key),
		}
		for col, val := range dup.Row {
			row[col] = val
		}
		table.AppendRow(row)
	}
	return table
}
