package main

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var importClasses []string

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Maintain the spell catalog",
	Long: `The spell catalog holds the named spells books can learn with learn-key.
It is stored in Redis when REDIS_URL points at a reachable server; otherwise
it is an in-memory catalog preloaded with the built-in spells.`,
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog spells",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		defs, err := provider.CatalogService.List(cmd.Context())
		if err != nil {
			return err
		}
		if len(defs) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "The catalog is empty.")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "KEY\tNAME\tELEMENT\tMANA\tSOURCE")
		for _, def := range defs {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", def.Key, def.Name, def.Element, def.ManaCost, def.Source)
		}
		return w.Flush()
	},
}

var catalogSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Store the built-in spells",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := provider.CatalogService.SeedDefaults(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d spells.\n", n)
		return nil
	},
}

var catalogLoadCmd = &cobra.Command{
	Use:   "load <file.yaml>",
	Short: "Store the spells listed in a YAML file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open spell file: %w", err)
		}
		defer f.Close()

		n, err := provider.CatalogService.LoadYAML(cmd.Context(), f, filepath.Base(args[0]))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Loaded %d spells.\n", n)
		return nil
	},
}

var catalogImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Import damage spells from the D&D 5e SRD",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		classes := importClasses
		if len(classes) == 0 {
			classes = cfg.DND5E.Classes
		}

		result, err := provider.CatalogService.ImportSRD(cmd.Context(), classes)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d spells, skipped %d without a matching element.\n",
			result.Imported, result.Skipped)
		return nil
	},
}

func init() {
	catalogImportCmd.Flags().StringSliceVar(&importClasses, "class", nil, "Classes to import (default from SPELLBOOK_IMPORT_CLASSES)")

	catalogCmd.AddCommand(catalogListCmd, catalogSeedCmd, catalogLoadCmd, catalogImportCmd)
}
