package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDisconnectPolicy(t *testing.T) {
	cases := []struct {
		input    string
		expected DisconnectPolicy
	}{
		{"", DisconnectPolicyRetainIdentity},
		{"retain", DisconnectPolicyRetainIdentity},
		{"RETAIN", DisconnectPolicyRetainIdentity},
		{" clear ", DisconnectPolicyClearIdentity},
	}
	for _, tc := range cases {
		policy, err := ParseDisconnectPolicy(tc.input)
		require.NoError(t, err, "input %q", tc.input)
		assert.Equal(t, tc.expected, policy)
	}

	_, err := ParseDisconnectPolicy("drop")
	require.Error(t, err)
}

func TestAdapterConfig_Validate(t *testing.T) {
	cfg := DefaultAdapterConfig()
	require.NoError(t, cfg.Validate())

	noName := DefaultAdapterConfig()
	noName.Name = ""
	require.Error(t, noName.Validate())

	badIcon := DefaultAdapterConfig()
	badIcon.Icon = "https://example.com/icon.svg"
	require.Error(t, badIcon.Validate())

	badPolicy := DefaultAdapterConfig()
	badPolicy.DisconnectPolicy = "drop"
	require.Error(t, badPolicy.Validate())
}
