package settings

// StoreKey is the fixed key the store settings live under.
const StoreKey = "store_config"

// StoreSettings is serialized as-is into the settings value column, so the
// JSON names are the storage format as well as the wire format.
type StoreSettings struct {
	Name   string `json:"name"`
	IsOpen bool   `json:"isOpen"`
}
