// Package modelscmder provides the models command for browsing the model
// catalog.
package modelscmder

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/vidgen/pkg/catalog"
	"github.com/papercomputeco/vidgen/pkg/cliui"
	"github.com/papercomputeco/vidgen/pkg/config"
)

const modelsLongDesc string = `List the models in the catalog.

Models are grouped by category: t2v (text to video), i2v (image to
video) and r2v (reference to video). Recommended models are the ones
picked when --model is not given.

Examples:
  vidgen models
  vidgen models --filter i2v
  vidgen models --format json
  vidgen models show veo_3_1_t2v_fast_landscape`

const modelsShortDesc string = "List available models"

const (
	formatTable = "table"
	formatJSON  = "json"
)

type modelsCommander struct {
	filter string
	format string
}

func NewModelsCmd() *cobra.Command {
	cmder := &modelsCommander{}

	cmd := &cobra.Command{
		Use:   "models",
		Short: modelsShortDesc,
		Long:  modelsLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := loadCatalog(cmd)
			if err != nil {
				return err
			}
			return cmder.run(cmd, cat)
		},
	}

	cmd.Flags().StringVar(&cmder.filter, "filter", "", "Only list one category (t2v, i2v, r2v)")
	cmd.Flags().StringVar(&cmder.format, "format", formatTable, "Output format (table, json)")
	cmd.PersistentFlags().String(config.GenerateFlags[config.FlagCatalog].Name, "", config.GenerateFlags[config.FlagCatalog].Description)

	cmd.AddCommand(newShowCmd())

	return cmd
}

func (c *modelsCommander) run(cmd *cobra.Command, cat *catalog.Catalog) error {
	models, err := c.models(cat)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch c.format {
	case formatJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(models)

	case formatTable:
		rows := make([][]string, 0, len(models))
		for _, m := range models {
			rec := ""
			if m.Recommended {
				rec = cliui.SuccessMark
			}
			rows = append(rows, []string{m.ID, m.Name, string(m.Category), rec})
		}
		fmt.Fprintln(out, cliui.Table([]string{"ID", "Name", "Category", "Recommended"}, rows))
		return nil

	default:
		return fmt.Errorf("unknown format %q (available: %s, %s)", c.format, formatTable, formatJSON)
	}
}

func (c *modelsCommander) models(cat *catalog.Catalog) ([]catalog.Model, error) {
	category, err := catalog.ParseCategory(c.filter)
	if err != nil {
		return nil, err
	}
	return cat.List(category), nil
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show details for one model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := loadCatalog(cmd)
			if err != nil {
				return err
			}

			m, err := cat.Get(args[0])
			if err != nil {
				return err
			}

			rendered, err := cliui.RenderMarkdown(Markdown(m))
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), rendered)
			return nil
		},
		ValidArgsFunction: func(cmd *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) != 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			cat, err := loadCatalog(cmd)
			if err != nil {
				return nil, cobra.ShellCompDirectiveError
			}
			return cat.IDs(), cobra.ShellCompDirectiveNoFileComp
		},
	}
}

// Markdown describes m as a markdown document.
func Markdown(m catalog.Model) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", m.Name)
	fmt.Fprintf(&b, "`%s` · %s", m.ID, m.Category)
	if m.Version != "" {
		fmt.Fprintf(&b, " · %s", m.Version)
	}
	if m.Recommended {
		b.WriteString(" · **recommended**")
	}
	b.WriteString("\n\n")

	if m.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", m.Description)
	}

	if len(m.Features) > 0 {
		b.WriteString("## Features\n\n")
		for _, f := range m.Features {
			fmt.Fprintf(&b, "- %s\n", f)
		}
	}

	return b.String()
}

// loadCatalog honours --catalog, then catalog.path from config.
func loadCatalog(cmd *cobra.Command) (*catalog.Catalog, error) {
	configDir, _ := cmd.Flags().GetString("config-dir")

	v, err := config.InitViper(configDir)
	if err != nil {
		return nil, err
	}
	config.BindRegisteredFlags(v, cmd, config.GenerateFlags, []string{config.FlagCatalog})

	return catalog.Load(v.GetString("catalog.path"))
}
