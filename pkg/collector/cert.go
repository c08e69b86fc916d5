package collector

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"net"
	"time"
)

// inspectCertificate dials the domain on 443 and reports on the served leaf
// certificate. Verification is skipped on purpose: an invalid chain is a
// signal to report, not a reason to give up.
func (c *Collector) inspectCertificate(ctx context.Context, domain string) (*CertInfo, error) {
	dialer := &net.Dialer{}
	rawConn, err := dialer.DialContext(ctx, "tcp", domain+":443")
	if err != nil {
		return nil, fmt.Errorf("tcp dial failed: %w", err)
	}
	defer rawConn.Close()

	tlsConn := tls.Client(rawConn, &tls.Config{
		ServerName:         domain,
		InsecureSkipVerify: true,
	})
	defer tlsConn.Close()

	if err := tlsConn.HandshakeContext(ctx); err != nil {
		return nil, fmt.Errorf("tls handshake failed: %w", err)
	}

	certs := tlsConn.ConnectionState().PeerCertificates
	if len(certs) == 0 {
		return nil, fmt.Errorf("no peer certificates presented")
	}

	leaf := certs[0]
	return &CertInfo{
		Valid:     leaf.NotAfter.After(time.Now()),
		IssuerOrg: issuerOrganization(leaf),
		AgeDays:   int(time.Since(leaf.NotBefore).Hours() / 24),
	}, nil
}

func issuerOrganization(cert *x509.Certificate) string {
	if len(cert.Issuer.Organization) > 0 {
		return cert.Issuer.Organization[0]
	}
	for _, name := range cert.Issuer.Names {
		if name.Type.String() == "2.5.4.10" {
			return fmt.Sprintf("%v", name.Value)
		}
	}
	return ""
}
