package cmd

import (
	"fmt"

	"github.com/KaramelBytes/dataprep-cli/internal/analysis"
	"github.com/KaramelBytes/dataprep-cli/internal/clean"
	cfgpkg "github.com/KaramelBytes/dataprep-cli/internal/config"
	"github.com/KaramelBytes/dataprep-cli/internal/table"
	"github.com/KaramelBytes/dataprep-cli/internal/utils"
	"github.com/spf13/cobra"
)

var (
	inOutputPath string
	inTop        int
	inNormalize  bool
	inDelimiter  string
	inSheetName  string
	inSheetIndex int
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [file]",
	Short: "Profile a dataset (types, missing values) without cleaning it",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := currentConfig()
		path := c.InputPath
		if len(args) == 1 {
			path = args[0]
		}
		delimSetting := c.Delimiter
		if cmd.Flags().Changed("delimiter") {
			delimSetting = inDelimiter
		}
		delim, err := cfgpkg.ParseDelimiter(delimSetting)
		if err != nil {
			return err
		}
		opt := table.LoadOptions{
			Delimiter:  delim,
			Encoding:   c.Encoding,
			SheetName:  c.SheetName,
			SheetIndex: c.SheetIndex,
			NAValues:   c.NAValues,
		}
		if cmd.Flags().Changed("sheet-name") {
			opt.SheetName = inSheetName
		}
		if cmd.Flags().Changed("sheet-index") {
			opt.SheetIndex = inSheetIndex
		}
		t, err := table.Load(path, opt)
		if err != nil {
			return err
		}
		if inNormalize {
			clean.NormalizeSchema(t)
		}
		top := c.TopMissing
		if cmd.Flags().Changed("top") {
			top = inTop
		}
		p := analysis.ProfileTable(t)
		md := p.Markdown() + "\n[MISSING VALUES]\n" + analysis.FormatMissing(p.TopMissing(top))

		if inOutputPath != "" {
			if err := utils.SafeWriteFile(inOutputPath, []byte(md)); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote profile to %s\n", inOutputPath)
			return nil
		}
		fmt.Fprint(cmd.OutOrStdout(), md)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().StringVarP(&inOutputPath, "output", "o", "", "optional path to write the profile (Markdown)")
	inspectCmd.Flags().IntVar(&inTop, "top", 5, "number of columns to list by missing count (0 = all)")
	inspectCmd.Flags().BoolVar(&inNormalize, "normalize", false, "canonicalize column names before profiling")
	inspectCmd.Flags().StringVar(&inDelimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab' | '|'")
	inspectCmd.Flags().StringVar(&inSheetName, "sheet-name", "", "XLSX: sheet name to inspect")
	inspectCmd.Flags().IntVar(&inSheetIndex, "sheet-index", 1, "XLSX: 1-based sheet index (used if --sheet-name not provided)")
}
