package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	drill "github.com/o-ludvik/Olivers-pages"
	"github.com/o-ludvik/Olivers-pages/internal/api"
	"github.com/o-ludvik/Olivers-pages/internal/importer"
	"github.com/o-ludvik/Olivers-pages/internal/store"
)

var dbPath string

func main() {
	// Optional .env for DRILL_DB and DRILL_ADDR.
	godotenv.Load()

	defaultDB := os.Getenv("DRILL_DB")
	if defaultDB == "" {
		defaultDB = filepath.Join("data", "drill.db")
	}

	rootCmd := &cobra.Command{
		Use:   "drill",
		Short: "Arithmetic fill-in-the-blank worksheets: evaluate, grade, serve",
	}

	rootCmd.PersistentFlags().StringVar(&dbPath, "db", defaultDB, "sheet database path")

	rootCmd.AddCommand(evalCmd())
	rootCmd.AddCommand(checkCmd())
	rootCmd.AddCommand(gradeCmd())
	rootCmd.AddCommand(importCmd())
	rootCmd.AddCommand(sheetsCmd())
	rootCmd.AddCommand(showCmd())
	rootCmd.AddCommand(rmCmd())
	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func getStore() (*store.Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	return store.Open(dbPath)
}

func evalCmd() *cobra.Command {
	var verb string

	cmd := &cobra.Command{
		Use:   "eval [expression]...",
		Short: "Evaluate arithmetic expressions",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			for _, arg := range args {
				fmt.Printf(verb+"\n", drill.Evaluate(drill.Tokenize(arg)))
			}
		},
	}

	cmd.Flags().StringVar(&verb, "fmt", "%g", "result formatting string")
	return cmd
}

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [equation]...",
		Short: "Check whether equations hold",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			for _, arg := range args {
				fmt.Printf("%s\t%t\n", arg, drill.CheckEquation(arg))
			}
		},
	}
}

func gradeCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "grade [fields.json]",
		Short: "Grade a field snapshot read from a JSON file or stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in io.Reader = os.Stdin
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}
			var fields []drill.Field
			if err := json.NewDecoder(in).Decode(&fields); err != nil {
				return fmt.Errorf("decode fields: %w", err)
			}

			result := drill.Grade(fields)
			if asJSON {
				return json.NewEncoder(os.Stdout).Encode(result)
			}
			ids := make([]string, 0, len(result.Statuses))
			for id := range result.Statuses {
				ids = append(ids, id)
			}
			sort.Strings(ids)
			for _, id := range ids {
				fmt.Printf("%s\t%s\n", id, result.Statuses[id])
			}
			fmt.Printf("solved\t%t\n", result.Solved)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "emit the raw grading result as JSON")
	return cmd
}

func importCmd() *cobra.Command {
	cfg := importer.DefaultConfig()
	var name string

	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import a sheet definition from an Excel or CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Path = args[0]
			if name == "" {
				name = strings.TrimSuffix(filepath.Base(cfg.Path), filepath.Ext(cfg.Path))
			}

			fields, result, err := importer.Read(cfg)
			if err != nil {
				return err
			}
			for _, msg := range result.Errors {
				fmt.Fprintln(os.Stderr, msg)
			}
			if len(fields) == 0 {
				return fmt.Errorf("no fields in %s", cfg.Path)
			}

			s, err := getStore()
			if err != nil {
				return err
			}
			defer s.Close()

			sheet, err := s.CreateSheet(name, fields)
			if err != nil {
				return err
			}
			fmt.Printf("Imported sheet: %s\n", sheet.ID[:8])
			fmt.Printf("Fields: %d imported, %d skipped, %d bad rows\n",
				result.Imported, result.Skipped, len(result.Errors))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "sheet name (default: file name)")
	cmd.Flags().StringVar(&cfg.SheetName, "sheet", cfg.SheetName, "Excel worksheet name")
	cmd.Flags().IntVar(&cfg.StartRow, "start-row", cfg.StartRow, "first data row, 1-based")
	return cmd
}

func sheetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sheets",
		Short: "List stored sheets",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := getStore()
			if err != nil {
				return err
			}
			defer s.Close()

			sheets, err := s.ListSheets()
			if err != nil {
				return err
			}
			for _, sh := range sheets {
				fmt.Printf("%s  %s  %s\n", sh.ID[:8], sh.CreatedAt.Format("2006-01-02 15:04"), sh.Name)
			}
			return nil
		},
	}
}

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [sheet-id]",
		Short: "Show a sheet's fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := getStore()
			if err != nil {
				return err
			}
			defer s.Close()

			sheet, err := s.GetSheet(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("%s (%s)\n", sheet.Name, sheet.ID)
			for _, f := range sheet.Fields {
				kind := "given"
				if f.Unknown {
					kind = "unknown"
				}
				fmt.Printf("  %-12s %-8s tags=%-10q text=%q placeholder=%q\n",
					f.ID, kind, f.EquationTags, f.Text, f.Placeholder)
			}
			return nil
		},
	}
}

func rmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm [sheet-id]",
		Short: "Delete a stored sheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := getStore()
			if err != nil {
				return err
			}
			defer s.Close()
			return s.DeleteSheet(args[0])
		},
	}
}

func serveCmd() *cobra.Command {
	defaultAddr := os.Getenv("DRILL_ADDR")
	if defaultAddr == "" {
		defaultAddr = ":8080"
	}
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the grading API over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := getStore()
			if err != nil {
				return err
			}
			defer s.Close()
			return api.New(s, addr).Run()
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "listen address")
	return cmd
}
