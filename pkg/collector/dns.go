package collector

import (
	"context"
	"strings"

	"github.com/miekg/dns"
)

// lookupDNS checks whether the domain resolves at all and whether its TXT
// records carry SPF and DMARC policies. A NOERROR response proves the name
// exists even when no TXT records come back.
func (c *Collector) lookupDNS(ctx context.Context, domain string) (*DNSInfo, error) {
	client := dns.Client{}
	m := dns.Msg{}
	m.SetQuestion(dns.Fqdn(domain), dns.TypeTXT)

	in, _, err := client.ExchangeContext(ctx, &m, c.cfg.DNSResolver)
	if err != nil {
		return nil, err
	}

	info := &DNSInfo{}
	if in.Rcode == dns.RcodeSuccess {
		info.HasRecord = true
	}

	for _, a := range in.Answer {
		if t, ok := a.(*dns.TXT); ok {
			for _, txt := range t.Txt {
				if strings.HasPrefix(txt, "v=spf1") {
					info.HasSPF = true
				} else if strings.Contains(txt, "dmarc") {
					info.HasDMARC = true
				}
			}
		}
	}
	return info, nil
}
