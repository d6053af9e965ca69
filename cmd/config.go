package cmd

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/csvdelta/csvdelta/cmd/engine"
)

// Static errors for configuration validation
var (
	ErrKeyColumnsRequired      = errors.New("at least one key column is required")
	ErrKeyColumnEmpty          = errors.New("key column names must not be empty")
	ErrSchemaMismatchInvalid   = errors.New("schema mismatch policy must be one of: fail, warn, ignore")
	ErrOutputRequired          = errors.New("output path is required")
	ErrOutputFormatInvalid     = errors.New("output format must be one of: csv, jsonl")
	ErrCompressionInvalid      = errors.New("compression must be one of: zstd, lz4, gzip, none")
	ErrCompressionLevelInvalid = errors.New("compression level must be between 1 and 22 (zstd), 1-9 (lz4/gzip)")
	ErrSourceTypeInvalid       = errors.New("source type must be one of: file, s3, db")
	ErrSourcePathRequired      = errors.New("source path is required")
	ErrDatabaseUserRequired    = errors.New("database user is required")
	ErrDatabaseNameRequired    = errors.New("database name is required")
	ErrDatabasePortInvalid     = errors.New("database port must be between 1 and 65535")
	ErrTableNameRequired       = errors.New("table name is required")
	ErrTableNameInvalid        = errors.New("table name is invalid: must be 1-63 characters, start with a letter or underscore, and contain only letters, numbers, and underscores")
	ErrS3EndpointRequired      = errors.New("S3 endpoint is required")
	ErrS3BucketRequired        = errors.New("S3 bucket is required")
	ErrS3AccessKeyRequired     = errors.New("S3 access key is required")
	ErrS3SecretKeyRequired     = errors.New("S3 secret key is required")
	ErrS3KeyRequired           = errors.New("S3 object key is required")
	ErrS3RegionInvalid         = errors.New("S3 region contains invalid characters or is too long")
)

const regionAuto = "auto"

type Config struct {
	Debug            bool
	LogFormat        string
	DryRun           bool
	KeyColumns       []string
	ExcludedColumns  []string
	SchemaMismatch   string
	IncludeUnchanged bool
	Output           string
	OutputFormat     string // empty = derive from output path
	Compression      string
	CompressionLevel int
	DuplicatesFile   string // empty = derive from output path
	Source1          SourceConfig
	Source2          SourceConfig
}

// SourceConfig describes where one side of the comparison comes from.
type SourceConfig struct {
	Type     string // file, s3, db
	Path     string // file path (file type) or S3 object key (s3 type)
	Database DatabaseConfig
	S3       S3Config
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	Table    string
}

type S3Config struct {
	Endpoint  string
	Bucket    string
	AccessKey string
	SecretKey string
	Region    string
}

// validSQLIdentifier checks if a string is a valid SQL identifier
// to prevent SQL injection attacks
var validSQLIdentifier = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// isValidTableName validates that a table name is safe to use in SQL queries
func isValidTableName(name string) bool {
	if name == "" || len(name) > 63 {
		return false
	}
	return validSQLIdentifier.MatchString(name)
}

// isValidRegion validates that an S3 region is reasonable
func isValidRegion(region string) bool {
	if region == "" {
		return false
	}
	if len(region) > 50 {
		return false
	}
	matched, _ := regexp.MatchString(`^[a-zA-Z0-9_-]+$`, region)
	return matched
}

// isValidOutputFormat validates the output format
func isValidOutputFormat(format string) bool {
	validFormats := map[string]bool{
		"csv":   true,
		"jsonl": true,
	}
	return validFormats[format]
}

// isValidCompression validates the compression type
func isValidCompression(compression string) bool {
	validCompressions := map[string]bool{
		"zstd": true,
		"lz4":  true,
		"gzip": true,
		"none": true,
	}
	return validCompressions[compression]
}

// isValidCompressionLevel validates compression level based on compression type
func isValidCompressionLevel(compression string, level int) bool {
	switch compression {
	case "zstd":
		return level >= 0 && level <= 22
	case "lz4", "gzip":
		return level >= 0 && level <= 9
	case "none":
		return level == 0
	default:
		return false
	}
}

// isValidSourceType validates the source type
func isValidSourceType(sourceType string) bool {
	validTypes := map[string]bool{
		"file": true,
		"s3":   true,
		"db":   true,
	}
	return validTypes[sourceType]
}

// validateSource validates one side's source configuration.
// The label ("source1" or "source2") is prepended to errors so the
// user can tell which side failed.
func validateSource(label string, src *SourceConfig) error {
	if !isValidSourceType(src.Type) {
		return fmt.Errorf("%s: %w, got '%s'", label, ErrSourceTypeInvalid, src.Type)
	}

	switch src.Type {
	case "file":
		if src.Path == "" {
			return fmt.Errorf("%s: %w", label, ErrSourcePathRequired)
		}
	case "s3":
		if src.S3.Endpoint == "" {
			return fmt.Errorf("%s: %w", label, ErrS3EndpointRequired)
		}
		if src.S3.Bucket == "" {
			return fmt.Errorf("%s: %w", label, ErrS3BucketRequired)
		}
		if src.S3.AccessKey == "" {
			return fmt.Errorf("%s: %w", label, ErrS3AccessKeyRequired)
		}
		if src.S3.SecretKey == "" {
			return fmt.Errorf("%s: %w", label, ErrS3SecretKeyRequired)
		}
		if src.Path == "" {
			return fmt.Errorf("%s: %w", label, ErrS3KeyRequired)
		}
		if src.S3.Region != "" && src.S3.Region != regionAuto {
			if !isValidRegion(src.S3.Region) {
				return fmt.Errorf("%s: %w: %s", label, ErrS3RegionInvalid, src.S3.Region)
			}
		}
	case "db":
		if src.Database.User == "" {
			return fmt.Errorf("%s: %w", label, ErrDatabaseUserRequired)
		}
		if src.Database.Name == "" {
			return fmt.Errorf("%s: %w", label, ErrDatabaseNameRequired)
		}
		if src.Database.Port < 1 || src.Database.Port > 65535 {
			return fmt.Errorf("%s: %w, got %d", label, ErrDatabasePortInvalid, src.Database.Port)
		}
		if src.Database.Table == "" {
			return fmt.Errorf("%s: %w", label, ErrTableNameRequired)
		}
		if !isValidTableName(src.Database.Table) {
			return fmt.Errorf("%s: %w: '%s'", label, ErrTableNameInvalid, src.Database.Table)
		}
	}

	return nil
}

func (c *Config) Validate() error {
	// Key columns are what the comparison keys on; nothing works without them
	if len(c.KeyColumns) == 0 {
		return ErrKeyColumnsRequired
	}
	for _, col := range c.KeyColumns {
		if col == "" {
			return ErrKeyColumnEmpty
		}
	}

	// Empty means the engine default (warn)
	if c.SchemaMismatch != "" && !engine.MismatchPolicy(c.SchemaMismatch).Valid() {
		return fmt.Errorf("%w, got '%s'", ErrSchemaMismatchInvalid, c.SchemaMismatch)
	}

	if c.Output == "" {
		return ErrOutputRequired
	}

	// Output format is optional; empty means derive from the output path
	if c.OutputFormat != "" && !isValidOutputFormat(c.OutputFormat) {
		return fmt.Errorf("%w: '%s'", ErrOutputFormatInvalid, c.OutputFormat)
	}

	if !isValidCompression(c.Compression) {
		return fmt.Errorf("%w: '%s'", ErrCompressionInvalid, c.Compression)
	}
	if !isValidCompressionLevel(c.Compression, c.CompressionLevel) {
		return fmt.Errorf("%w for compression %s: got %d", ErrCompressionLevelInvalid, c.Compression, c.CompressionLevel)
	}

	if err := validateSource("source1", &c.Source1); err != nil {
		return err
	}
	if err := validateSource("source2", &c.Source2); err != nil {
		return err
	}

	return nil
}
