package main

import (
	"net"
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroadcastAddr(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		cidr string
		want string
	}{
		{"192.0.2.10/24", "192.0.2.255"},
		{"10.1.2.3/8", "10.255.255.255"},
		{"198.51.100.9/32", "198.51.100.9"},
	}
	for _, tc := range testCases {
		ip, ipnet, err := net.ParseCIDR(tc.cidr)
		require.NoError(t, err)
		ipnet.IP = ip
		got, err := broadcastAddr(ipnet)
		require.NoError(t, err)
		assert.Equal(t, netip.MustParseAddr(tc.want), got, tc.cidr)
	}

	_, ipnet, err := net.ParseCIDR("2001:db8::/64")
	require.NoError(t, err)
	_, err = broadcastAddr(ipnet)
	assert.Error(t, err)
}

func TestCheckOverride(t *testing.T) {
	t.Parallel()
	for _, ip := range []string{"0.0.0.0", "224.0.0.1", "255.255.255.255"} {
		assert.Len(t, checkOverride(Options{IP: netip.MustParseAddr(ip)}), 1, ip)
	}

	// TEST-NET-1 is never assigned to a host
	nonLocal := netip.MustParseAddr("192.0.2.77")
	assert.NotEmpty(t, checkOverride(Options{IP: nonLocal}))
	assert.Empty(t, checkOverride(Options{IP: nonLocal, Freebind: true}))
}
