package rebound

import "net/netip"

// ParseOverride parses s as a dotted-decimal IPv4 address.
func ParseOverride(s string) (netip.Addr, error) {
	ip, err := netip.ParseAddr(s)
	if err != nil {
		return netip.Addr{}, &OverrideError{Var: EnvIP, Value: s, Err: err}
	}
	if !ip.Is4() {
		return netip.Addr{}, &OverrideError{Var: EnvIP, Value: s}
	}
	return ip, nil
}

// Rewrite returns a copy of req with its address replaced by override.
// Family, port and the remaining fields are those of req.
func Rewrite(req SockaddrInet4, override string) (SockaddrInet4, error) {
	ip, err := ParseOverride(override)
	if err != nil {
		return req, err
	}
	naddr := req
	naddr.Addr = ip
	return naddr, nil
}
