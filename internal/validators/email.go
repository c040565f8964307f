package validators

import (
	"net"
	"strings"
)

// IsEmailDomainValid checks that the part after the @ resolves in DNS,
// catching typo domains at registration instead of at first delivery.
func IsEmailDomainValid(email string) bool {
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	return domainResolves(email[at+1:])
}

// MX is authoritative; a plain A/AAAA record still counts because small
// domains often receive mail directly on the apex host.
func domainResolves(domain string) bool {
	if mx, err := net.LookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}

	ips, err := net.LookupIP(domain)
	return err == nil && len(ips) > 0
}
