package main

import (
	"encoding/json"
	"fmt"

	"github.com/aretw0/dropzone/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Browse the component catalog",
}

var catalogLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List catalog components by category",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog(cfg)
		if err != nil {
			return err
		}
		category, _ := cmd.Flags().GetString("category")
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			defs := cat.All()
			if category != "" {
				defs = cat.ByCategory(category)
			}
			return printJSON(cmd, defs)
		}
		return printMarkdown(cmd, tui.CatalogMarkdown(cat, category))
	},
}

var catalogShowCmd = &cobra.Command{
	Use:   "show <component-id>",
	Short: "Show one catalog component",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog(cfg)
		if err != nil {
			return err
		}
		def, err := cat.Get(args[0])
		if err != nil {
			return err
		}
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return printJSON(cmd, def)
		}
		return printMarkdown(cmd, tui.DefinitionMarkdown(def))
	},
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

func printMarkdown(cmd *cobra.Command, md string) error {
	out, err := tui.NewRenderer()(md)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogLsCmd)
	catalogCmd.AddCommand(catalogShowCmd)
	catalogCmd.PersistentFlags().Bool("json", false, "Print JSON instead of markdown")
	catalogLsCmd.Flags().String("category", "", "Only list this category")
}
