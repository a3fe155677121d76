package security

// Static client registry for the token endpoint. Permissions gate the /v1
// surface: catalog.* covers customers/products/orders, reports.read the
// aggregation endpoints.
type Client struct {
	ID      string
	Secret  string
	Perms   []string
	Enabled bool
}

var Clients = map[string]Client{
	"backoffice-ui": {
		ID:      "backoffice-ui",
		Secret:  "backoffice-ui-secret",
		Perms:   []string{"catalog.read", "catalog.write", "reports.read"},
		Enabled: true,
	},
	"svc-storefront": {
		ID:      "svc-storefront",
		Secret:  "storefront-secret",
		Perms:   []string{"catalog.read", "catalog.write"},
		Enabled: true,
	},
	"svc-analytics": {
		ID:      "svc-analytics",
		Secret:  "ana-secret",
		Perms:   []string{"catalog.read", "reports.read"},
		Enabled: true,
	},
}
