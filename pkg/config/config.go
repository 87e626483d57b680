package config

import (
	"fmt"
	"strings"
)

// Environment variable names for the signer CLI and adapter configuration
const (
	EnvSignerKeystorePath     = "SIGNER_KEYSTORE_PATH"
	EnvSignerKeystoreBackend  = "SIGNER_KEYSTORE_BACKEND"
	EnvSignerKeypairPath      = "SIGNER_KEYPAIR_PATH"
	EnvSignerDisconnectPolicy = "SIGNER_DISCONNECT_POLICY"
	EnvSignerVerbose          = "SIGNER_VERBOSE"
)

// DisconnectPolicy controls what happens to the held identity when the
// adapter disconnects. The wallet shim this design comes from retained the
// identity across disconnects; both behaviors are supported explicitly.
type DisconnectPolicy string

func (p DisconnectPolicy) String() string {
	return string(p)
}

const (
	// DisconnectPolicyRetainIdentity keeps the identity so the adapter can
	// reconnect without being reconfigured. This is the default.
	DisconnectPolicyRetainIdentity DisconnectPolicy = "retain"

	// DisconnectPolicyClearIdentity drops the identity on disconnect;
	// subsequent operations fail until a new identity is supplied.
	DisconnectPolicyClearIdentity DisconnectPolicy = "clear"
)

func ParseDisconnectPolicy(s string) (DisconnectPolicy, error) {
	switch DisconnectPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", DisconnectPolicyRetainIdentity:
		return DisconnectPolicyRetainIdentity, nil
	case DisconnectPolicyClearIdentity:
		return DisconnectPolicyClearIdentity, nil
	default:
		return "", fmt.Errorf("unsupported disconnect policy: %q", s)
	}
}

// Default adapter metadata. The icon is a data URI so no asset loading is
// ever required.
const (
	DefaultAdapterName = "Local Keypair"
	DefaultAdapterURL  = "https://github.com/solstice-labs/solana-signer-go"
	DefaultAdapterIcon = "data:image/svg+xml;base64,PHN2ZyB4bWxucz0iaHR0cDovL3d3dy53My5vcmcvMjAwMC9zdmciIHZpZXdCb3g9IjAgMCAzMiAzMiI+PHJlY3Qgd2lkdGg9IjMyIiBoZWlnaHQ9IjMyIiByeD0iNiIgZmlsbD0iIzE0MTQyMCIvPjxwYXRoIGQ9Ik03IDExaDE1bDMgM0gxMHptMCA3aDE1bDMgM0gxMHoiIGZpbGw9IiMwMGZmYTMiLz48L3N2Zz4="
)

// AdapterConfig carries the metadata the wallet-adapter contract exposes
// plus the disconnect policy.
type AdapterConfig struct {
	Name             string
	URL              string
	Icon             string
	DisconnectPolicy DisconnectPolicy
}

func DefaultAdapterConfig() *AdapterConfig {
	return &AdapterConfig{
		Name:             DefaultAdapterName,
		URL:              DefaultAdapterURL,
		Icon:             DefaultAdapterIcon,
		DisconnectPolicy: DisconnectPolicyRetainIdentity,
	}
}

func (c *AdapterConfig) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("adapter name cannot be empty")
	}
	if !strings.HasPrefix(c.Icon, "data:") {
		return fmt.Errorf("adapter icon must be a data URI")
	}
	switch c.DisconnectPolicy {
	case DisconnectPolicyRetainIdentity, DisconnectPolicyClearIdentity:
	default:
		return fmt.Errorf("unsupported disconnect policy: %q", c.DisconnectPolicy)
	}
	return nil
}
