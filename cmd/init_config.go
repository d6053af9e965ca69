package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// ErrConfigFileExists is returned when init-config would overwrite a file
var ErrConfigFileExists = errors.New("config file already exists")

// exampleConfig documents every setting the compare command reads. Values
// match the flag defaults.
const exampleConfig = `# csvdelta configuration
# Place this file at $HOME/.csvdelta.yaml or pass it with --config.
# Every setting can also be given as a flag or a CSVDELTA_* environment variable.

debug: false
log_format: text # text, logfmt, json
dry_run: false

compare:
  key_columns:
    - ID
  excluded_columns: []
  schema_mismatch: warn # fail, warn, ignore
  include_unchanged: false
  output: comparison.csv
  output_format: "" # csv, jsonl (empty = derived from output path)
  compression: none # zstd, lz4, gzip, none
  compression_level: 0 # 0 = compressor default
  duplicates_file: "" # empty = <output>_duplicates.<ext>

  source1:
    type: file # file, s3, db
    path: old.csv
    # db:
    #   host: localhost
    #   port: 5432
    #   user: reader
    #   password: ""
    #   name: prod
    #   sslmode: disable
    #   table: users
    # s3:
    #   endpoint: https://s3.example.com
    #   bucket: exports
    #   access_key: ""
    #   secret_key: ""
    #   region: auto

  source2:
    type: file
    path: new.csv
`

var initConfigForce bool

var initConfigCmd = &cobra.Command{
	Use:   "init-config [path]",
	Short: "Write an example configuration file",
	Long: `Write an example configuration file documenting every compare setting.
The file is written to the given path, or .csvdelta.yaml in the current
directory when no path is given. Existing files are not overwritten unless
--force is set.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		path := ".csvdelta.yaml"
		if len(args) > 0 {
			path = args[0]
		}
		return writeExampleConfig(path, initConfigForce)
	},
}

func init() {
	rootCmd.AddCommand(initConfigCmd)
	initConfigCmd.Flags().BoolVar(&initConfigForce, "force", false, "overwrite an existing file")
}

func writeExampleConfig(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s (use --force to overwrite)", ErrConfigFileExists, path)
		}
	}

	if err := os.WriteFile(path, []byte(exampleConfig), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Printf("✅ Wrote example config to %s\n", path)
	return nil
}
