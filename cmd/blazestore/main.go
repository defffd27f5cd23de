package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/blazekit/blazestore/internal/config"
	"github.com/blazekit/blazestore/internal/output"
	"github.com/blazekit/blazestore/internal/store"
)

var (
	rootFlag    string
	formatFlag  string
	limitFlag   int
	absPathFlag bool
	rewriteOnly bool
)

var rootCmd = &cobra.Command{
	Use:   "blazestore",
	Short: "Query a filesystem-backed parquet table store with SQL",
	Long: `blazestore keeps one directory per logical table under a store root,
each holding parquet files, optionally partitioned by column values.
Queries reference tables by name; blazestore rewrites every reference
into a glob read expression over the table's files and executes the
result.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var queryCmd = &cobra.Command{
	Use:   "query <sql>",
	Short: "Rewrite and execute a SQL query against the store",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}

		var opts []store.QueryOption
		if absPathFlag {
			opts = append(opts, store.AbsPath())
		}

		r, err := s.SQL(cmd.Context(), args[0], opts...)
		if err != nil {
			return err
		}

		if rewriteOnly {
			fmt.Println(r.Query())
			return nil
		}

		rows, err := r.Collect(cmd.Context())
		if err != nil {
			return err
		}
		if limitFlag > 0 && len(rows) > limitFlag {
			rows = rows[:limitFlag]
		}

		formatter, err := newFormatter(formatFlag)
		if err != nil {
			return err
		}
		return formatter.Format(rows)
	},
}

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "List the logical tables in the store",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}

		names, err := s.List()
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	},
}

var pathCmd = &cobra.Command{
	Use:   "path <table>",
	Short: "Print a table's physical directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		fmt.Println(s.TablePath(args[0]))
		return nil
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the settings file if it does not exist",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		root := rootFlag
		if root == "" {
			var err error
			root, err = config.DefaultRoot()
			if err != nil {
				return err
			}
		}
		if err := config.Ensure(root); err != nil {
			return err
		}
		fmt.Println(config.Path(root))
		return nil
	},
}

func openStore() (*store.Store, error) {
	if rootFlag != "" {
		return store.Open(rootFlag), nil
	}
	return store.OpenDefault()
}

func newFormatter(format string) (output.Formatter, error) {
	switch format {
	case "json", "jsonl":
		return output.NewJSONFormatter(os.Stdout), nil
	case "csv":
		return output.NewCSVFormatter(os.Stdout), nil
	case "table":
		return output.NewTableFormatter(os.Stdout), nil
	default:
		return nil, fmt.Errorf("unsupported format %q (supported: json, jsonl, csv, table)", format)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootFlag, "root", "", "Store root directory (default: configured or ~/BlazeStore)")

	queryCmd.Flags().StringVarP(&formatFlag, "format", "f", "jsonl", "Output format: json, jsonl, csv, table")
	queryCmd.Flags().IntVar(&limitFlag, "limit", 0, "Limit number of rows (0 = unlimited)")
	queryCmd.Flags().BoolVar(&absPathFlag, "abs-path", false, "Treat table names as absolute directory paths")
	queryCmd.Flags().BoolVar(&rewriteOnly, "rewrite-only", false, "Print the rewritten SQL without executing it")

	rootCmd.AddCommand(queryCmd, tablesCmd, pathCmd, initCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
