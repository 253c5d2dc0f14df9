package cmd

import (
	"fmt"

	"license-reconciler/core/config"
	"license-reconciler/core/skumap"

	"github.com/spf13/cobra"
)

var skumapPath string

// skumapCmd is the parent command for exception table maintenance.
var skumapCmd = &cobra.Command{
	Use:   "skumap",
	Short: "Maintain the SKU exception table",
	Long: `Maintain the SKU exception table (sku_map.json).

The table maps a PRE-EA SKU to the CSSM SKU it should be compared against
when the two systems name the same item differently.`,
}

var skumapListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all SKU exceptions",
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := loadTable()
		if err != nil {
			return err
		}
		if len(m) == 0 {
			fmt.Println("no SKU exceptions configured")
			return nil
		}
		for _, key := range m.Keys() {
			fmt.Printf("%s -> %s\n", key, m[key])
		}
		return nil
	},
}

var skumapSetCmd = &cobra.Command{
	Use:   "set <pre-ea-sku> <cssm-sku>",
	Short: "Add or overwrite one SKU exception",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := loadTable()
		if err != nil {
			return err
		}
		m.Put(args[0], args[1])
		return skumap.Save(m, resolvedMapPath())
	},
}

var skumapRemoveCmd = &cobra.Command{
	Use:   "remove <pre-ea-sku>",
	Short: "Remove one SKU exception",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := loadTable()
		if err != nil {
			return err
		}
		m.Remove(args[0])
		return skumap.Save(m, resolvedMapPath())
	},
}

func init() {
	skumapCmd.PersistentFlags().StringVarP(&skumapPath, "map", "m", "", "Path to the SKU exception table (defaults to the configured skumap path)")
	skumapCmd.AddCommand(skumapListCmd)
	skumapCmd.AddCommand(skumapSetCmd)
	skumapCmd.AddCommand(skumapRemoveCmd)
	RootCmd.AddCommand(skumapCmd)
}

func resolvedMapPath() string {
	if skumapPath != "" {
		return skumapPath
	}
	if cfg, err := config.LoadConfig("."); err == nil {
		return cfg.SKUMap.Path
	}
	return "sku_map.json"
}

// loadTable surfaces a corrupt table as an error here: maintenance commands
// must not silently rewrite a file the user may want to repair by hand.
func loadTable() (skumap.Map, error) {
	m, err := skumap.Load(resolvedMapPath())
	if err != nil {
		return nil, err
	}
	return m, nil
}
