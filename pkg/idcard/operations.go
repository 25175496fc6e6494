package idcard

import (
	"github.com/Iranians-Vote-Digital-Democracy/INIDCA/pkg/bits"
	"github.com/Iranians-Vote-Digital-Democracy/INIDCA/pkg/iso7816"
	"github.com/Iranians-Vote-Digital-Democracy/INIDCA/pkg/tlv"
)

// Dates holds the issue and expiry date fields as read from the card, hex
// text as stored. Either may be empty if the field is absent.
type Dates struct {
	Issue  string
	Expiry string
}

// AFIS is the decoded biometric-check flag.
type AFIS struct {
	// Raw is the flag field as stored.
	Raw string

	// Required is true when the flag marks the holder for a biometric
	// (fingerprint) check.
	Required bool
}

// Serial holds the identifiers cut from the manufacturer metadata image.
type Serial struct {
	// Number is the chip serial number window.
	Number string

	// Reference is the fabrication reference window.
	Reference string
}

// ReadSigningCertificate reads the digital-signature certificate file. The
// payload is the raw certificate image; feed it to ParseCertificate.
func (o *Orchestrator) ReadSigningCertificate() (Result, error) {
	return o.Run(SigningCertificate())
}

// ReadAuthenticationCertificate reads the card-holder authentication
// certificate file.
func (o *Orchestrator) ReadAuthenticationCertificate() (Result, error) {
	return o.Run(AuthenticationCertificate())
}

// ReadDates reads the date file and extracts the issue and expiry fields.
// The expiry scan starts after the issue match so identical byte patterns
// earlier in the file cannot be matched twice.
func (o *Orchestrator) ReadDates() (Dates, Result, error) {
	res, err := o.Run(DateFile())
	if err != nil || !res.Success {
		return Dates{}, res, err
	}

	issue, next := tlv.ScanTagFrom(res.Payload, 0, tagIssueDate)
	if next < 0 {
		next = 0
	}
	expiry, _ := tlv.ScanTagFrom(res.Payload, next, tagExpiryDate)

	return Dates{Issue: issue, Expiry: expiry}, res, nil
}

// ReadAFISFlag reads and decodes the biometric-check flag. The operation's
// extractor already cut the flag field out of the file, so the result
// payload is the raw flag value itself.
func (o *Orchestrator) ReadAFISFlag() (AFIS, Result, error) {
	res, err := o.Run(AFISFile())
	if err != nil || !res.Success {
		return AFIS{}, res, err
	}

	flag := AFIS{Raw: res.Payload}

	if b, err := iso7816.HexToBytes(res.Payload); err == nil && len(b) > 0 {
		flag.Required = bits.IsSet(b[0], 1)
	}

	return flag, res, nil
}

// ReadCardSerial reads the manufacturer metadata image and cuts the serial
// and reference windows from it.
func (o *Orchestrator) ReadCardSerial() (Serial, Result, error) {
	res, err := o.Run(MetadataFile())
	if err != nil || !res.Success {
		return Serial{}, res, err
	}

	return Serial{
		Number:    tlv.ExtractAt(res.Payload, serialOffset, serialLength),
		Reference: tlv.ExtractAt(res.Payload, referenceOffset, referenceLength),
	}, res, nil
}
