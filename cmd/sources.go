package cmd

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/csvdelta/csvdelta/cmd/compressors"
	"github.com/csvdelta/csvdelta/cmd/engine"
	"github.com/csvdelta/csvdelta/cmd/tabio"
	"github.com/lib/pq"
)

// loadTable loads one side of the comparison from its configured source.
// The name labels the resulting table in diagnostics.
func loadTable(ctx context.Context, name string, src *SourceConfig) (*engine.Table, error) {
	switch src.Type {
	case "file":
		return loadTableFromFile(name, src.Path)
	case "s3":
		return loadTableFromS3(ctx, name, src)
	case "db":
		return loadTableFromDatabase(ctx, name, src)
	default:
		return nil, fmt.Errorf("%w: %s", ErrSourceTypeInvalid, src.Type)
	}
}

// loadTableFromFile reads a local file, looking through any compression
// extension to find the table format.
func loadTableFromFile(name, path string) (*engine.Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	decompressed, err := compressors.ForPath(path).Decompress(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress %s: %w", path, err)
	}
	defer decompressed.Close()

	reader, err := tabio.NewReader(tabio.FormatForPath(path), name, decompressed)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	return reader.ReadAll()
}

// loadTableFromS3 downloads an object into memory and decodes it like a file.
func loadTableFromS3(ctx context.Context, name string, src *SourceConfig) (*engine.Table, error) {
	sess, err := session.NewSession(&aws.Config{
		Endpoint:         aws.String(src.S3.Endpoint),
		Region:           aws.String(src.S3.Region),
		Credentials:      credentials.NewStaticCredentials(src.S3.AccessKey, src.S3.SecretKey, ""),
		S3ForcePathStyle: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 session: %w", err)
	}

	downloader := s3manager.NewDownloader(sess)
	buffer := aws.NewWriteAtBuffer([]byte{})

	_, err = downloader.DownloadWithContext(ctx, buffer, &s3.GetObjectInput{
		Bucket: aws.String(src.S3.Bucket),
		Key:    aws.String(src.Path),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to download s3://%s/%s: %w", src.S3.Bucket, src.Path, err)
	}

	decompressed, err := compressors.ForPath(src.Path).Decompress(bytes.NewReader(buffer.Bytes()))
	if err != nil {
		return nil, fmt.Errorf("failed to decompress s3://%s/%s: %w", src.S3.Bucket, src.Path, err)
	}
	defer decompressed.Close()

	reader, err := tabio.NewReader(tabio.FormatForPath(src.Path), name, decompressed)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	return reader.ReadAll()
}

// loadTableFromDatabase reads a whole PostgreSQL table into memory.
func loadTableFromDatabase(ctx context.Context, name string, src *SourceConfig) (*engine.Table, error) {
	if !isValidTableName(src.Database.Table) {
		return nil, fmt.Errorf("%w: '%s'", ErrTableNameInvalid, src.Database.Table)
	}

	sslMode := src.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	// lib/pq handles password escaping internally, so we don't need URL encoding
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		src.Database.Host,
		src.Database.Port,
		src.Database.User,
		src.Database.Password,
		src.Database.Name,
		sslMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return queryTable(ctx, db, src.Database.Table, name)
}

// queryTable reads every row of a table, rendering each cell as text.
// NULL cells become absent entries, matching how JSONL null is decoded.
func queryTable(ctx context.Context, db *sql.DB, tableName, name string) (*engine.Table, error) {
	query := fmt.Sprintf("SELECT * FROM %s", pq.QuoteIdentifier(tableName))

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query table %s: %w", tableName, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}

	table := engine.NewTable(name, columns)
	values := make([]sql.NullString, len(columns))
	scanArgs := make([]interface{}, len(columns))
	for i := range values {
		scanArgs[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(scanArgs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		row := make(engine.Row, len(columns))
		for i, col := range columns {
			if values[i].Valid {
				row[col] = values[i].String
			}
		}
		table.AppendRow(row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return table, nil
}
