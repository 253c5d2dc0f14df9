package skumap

// Config holds configuration for the SKU exception table.
type Config struct {
	// Path is the location of the persisted sku_map.json file.
	Path string `mapstructure:"path" default:"sku_map.json"`
}
