package idcard

import (
	"crypto/x509"
	"fmt"

	"github.com/Iranians-Vote-Digital-Democracy/INIDCA/pkg/iso7816"
)

// ParseCertificate decodes a certificate payload read from a card file.
// Certificate files are allocated at a fixed size and zero-padded past the
// DER structure, so the payload is trimmed to the outer SEQUENCE length
// before parsing.
func ParseCertificate(payload string) (*x509.Certificate, error) {
	raw, err := iso7816.HexToBytes(payload)
	if err != nil {
		return nil, err
	}

	der, err := trimToDER(raw)
	if err != nil {
		return nil, err
	}

	cert, err := x509.ParseCertificate(der)
	if err != nil {
		return nil, fmt.Errorf("idcard: certificate parse: %w", err)
	}
	return cert, nil
}

// trimToDER cuts the buffer down to the outer DER SEQUENCE it starts with.
func trimToDER(raw []byte) ([]byte, error) {
	if len(raw) < 2 || raw[0] != 0x30 {
		return nil, fmt.Errorf("idcard: payload does not start with a DER sequence")
	}

	var total int
	switch l := raw[1]; {
	case l < 0x80:
		total = 2 + int(l)
	case l == 0x81 && len(raw) >= 3:
		total = 3 + int(raw[2])
	case l == 0x82 && len(raw) >= 4:
		total = 4 + int(raw[2])<<8 + int(raw[3])
	default:
		return nil, fmt.Errorf("idcard: unsupported DER length form %02X", raw[1])
	}

	if total > len(raw) {
		return nil, fmt.Errorf("idcard: DER length %d exceeds payload %d", total, len(raw))
	}
	return raw[:total], nil
}

// CertificateSummary renders the fields presentation layers care about.
func CertificateSummary(cert *x509.Certificate) string {
	return fmt.Sprintf("subject=%q serial=%s valid=%s..%s",
		cert.Subject.String(),
		cert.SerialNumber.String(),
		cert.NotBefore.Format("2006-01-02"),
		cert.NotAfter.Format("2006-01-02"))
}
