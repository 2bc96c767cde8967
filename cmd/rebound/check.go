package main

import (
	"fmt"
	"net"
	"net/netip"
)

// checkOverride returns warnings about binding to opts.IP on this host.
// Problems finding the local addresses are reported as warnings too, since
// the bind itself is the real test.
func checkOverride(opts Options) []string {
	ip := opts.IP
	switch {
	case ip.IsUnspecified():
		return []string{fmt.Sprintf("%s binds every local address", ip)}
	case ip.IsMulticast():
		return []string{fmt.Sprintf("%s is a multicast address, only UDP sockets can bind it", ip)}
	case ip == netip.AddrFrom4([4]byte{255, 255, 255, 255}):
		return []string{fmt.Sprintf("%s is the limited broadcast address", ip)}
	}

	local, broadcast, err := localAddrs()
	if err != nil {
		return []string{fmt.Sprintf("cannot list local addresses: %v", err)}
	}
	var warnings []string
	if name, ok := broadcast[ip]; ok {
		warnings = append(warnings, fmt.Sprintf("%s is the broadcast address of interface %s", ip, name))
	}
	if _, ok := local[ip]; !ok && !opts.Freebind {
		warnings = append(warnings, fmt.Sprintf("%s is not assigned to any interface, binds will fail unless --freebind is set", ip))
	}
	return warnings
}

// localAddrs maps every IPv4 address and IPv4 broadcast address on the
// host's interfaces to the name of its interface.
func localAddrs() (local, broadcast map[netip.Addr]string, err error) {
	interfaces, err := net.Interfaces()
	if err != nil {
		return nil, nil, err
	}

	local = make(map[netip.Addr]string)
	broadcast = make(map[netip.Addr]string)
	for _, i := range interfaces {
		addrs, err := i.Addrs()
		if err != nil {
			return nil, nil, err
		}
		for _, a := range addrs {
			ipnet, ok := a.(*net.IPNet)
			if !ok {
				continue
			}
			// only IPv4 is rewritten
			addr, ok := netip.AddrFromSlice(ipnet.IP.To4())
			if !ok {
				continue
			}
			local[addr] = i.Name
			if brd, err := broadcastAddr(ipnet); err == nil && brd != addr {
				broadcast[brd] = i.Name
			}
		}
	}
	return local, broadcast, nil
}

// broadcastAddr calculates the broadcast address of an IPv4 net.IPNet.
func broadcastAddr(ipnet *net.IPNet) (netip.Addr, error) {
	ip4 := ipnet.IP.To4()
	if ip4 == nil {
		return netip.Addr{}, fmt.Errorf("only IPv4 addresses have a broadcast address")
	}
	mask := ipnet.Mask
	if len(mask) == net.IPv6len {
		mask = mask[12:]
	}
	if len(mask) != net.IPv4len {
		return netip.Addr{}, fmt.Errorf("invalid IPv4 mask length: %d", len(ipnet.Mask))
	}

	var brd [4]byte
	for i := range brd {
		brd[i] = ip4[i] | ^mask[i]
	}
	return netip.AddrFrom4(brd), nil
}
