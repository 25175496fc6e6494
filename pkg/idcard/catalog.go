package idcard

import (
	"github.com/Iranians-Vote-Digital-Democracy/INIDCA/pkg/card"
	"github.com/Iranians-Vote-Digital-Democracy/INIDCA/pkg/iso7816"
	"github.com/Iranians-Vote-Digital-Democracy/INIDCA/pkg/tlv"
)

// COMMAND CATALOGS:
// Everything in this file is configuration data for one card profile, not
// logic: the named selection sequences that navigate the card's file
// hierarchy, the per-file read parameters, and the tags and offsets of the
// extracted fields. Supporting a different card profile means swapping these
// tables, the orchestration code stays untouched.

// Application identifiers on the card.
var (
	// aidCardManager is the GlobalPlatform card manager.
	aidCardManager = iso7816.F("00 A4 04 00 08 A0 00 00 00 18 43 4D 00")

	// aidPKI selects the PKI applet holding the certificate files.
	aidPKI = iso7816.F("00 A4 04 00 0C A0 00 00 00 18 30 03 01 00 00 00 00")

	// aidIdentity selects the identity applet holding dates, the biometric
	// flag and the manufacturer metadata image.
	aidIdentity = iso7816.F("00 A4 04 00 0C A0 00 00 00 18 30 04 01 00 00 00 00")
)

// Selection sequences, in protocol order.
var (
	selectSigningCertificate = card.SelectionSequence{
		{Name: "select master file", Frame: iso7816.F("00 A4 00 0C 02 3F 00")},
		{Name: "select PKI applet", Frame: aidPKI},
		{Name: "select signing certificate file", Frame: iso7816.F("00 A4 02 0C 02 01 02")},
	}

	selectAuthCertificate = card.SelectionSequence{
		{Name: "select master file", Frame: iso7816.F("00 A4 00 0C 02 3F 00")},
		{Name: "select PKI applet", Frame: aidPKI},
		{Name: "select authentication certificate file", Frame: iso7816.F("00 A4 02 0C 02 01 01")},
	}

	selectDateFile = card.SelectionSequence{
		{Name: "select master file", Frame: iso7816.F("00 A4 00 0C 02 3F 00")},
		{Name: "select identity applet", Frame: aidIdentity},
		{Name: "select date file", Frame: iso7816.F("00 A4 02 0C 02 02 03")},
	}

	selectAFISFile = card.SelectionSequence{
		{Name: "select master file", Frame: iso7816.F("00 A4 00 0C 02 3F 00")},
		{Name: "select identity applet", Frame: aidIdentity},
		{Name: "select AFIS file", Frame: iso7816.F("00 A4 02 0C 02 02 07")},
	}

	selectMetadataFile = card.SelectionSequence{
		{Name: "select card manager", Frame: aidCardManager},
		{Name: "select manufacturer metadata file", Frame: iso7816.F("00 A4 02 0C 02 2F E2")},
	}
)

// Field tags in the identity applet's flat TLV files.
const (
	tagIssueDate  byte = 0xC1
	tagExpiryDate byte = 0xC2
	tagAFIS       byte = 0xAD
)

// Fixed-offset windows inside the manufacturer metadata (CPLC-style) image.
const (
	serialOffset    = 13
	serialLength    = 8
	referenceOffset = 21
	referenceLength = 4
)

// certificateRead covers the large certificate files; the PKI applet accepts
// full-size chunks there.
var certificateRead = card.ReadConfig{ChunkSize: 0xFF}

// identityRead covers the small identity files, which reject reads larger
// than 0xF8 bytes.
var identityRead = card.ReadConfig{ChunkSize: 0xF8}

// SigningCertificate is the operation reading the digital-signature
// certificate. Selection is strict: reading a certificate from the wrong
// file would hand garbage to the verifier.
func SigningCertificate() Operation {
	return Operation{
		Name:            "read signing certificate",
		Selection:       selectSigningCertificate,
		StrictSelection: true,
		Read:            certificateRead,
	}
}

// AuthenticationCertificate is the operation reading the card-holder
// authentication certificate.
func AuthenticationCertificate() Operation {
	return Operation{
		Name:            "read authentication certificate",
		Selection:       selectAuthCertificate,
		StrictSelection: true,
		Read:            certificateRead,
	}
}

// DateFile is the operation reading the issue/expiry date file. Selection is
// lenient: some card batches answer the applet selection with a warning but
// still serve the file.
func DateFile() Operation {
	return Operation{
		Name:      "read card dates",
		Selection: selectDateFile,
		Read:      identityRead,
	}
}

// AFISFile is the operation reading the biometric-check flag file. The
// extractor cuts the flag field out of the file; an absent tag yields an
// empty payload with the field-absent diagnostic.
func AFISFile() Operation {
	return Operation{
		Name:            "read AFIS flag",
		Selection:       selectAFISFile,
		StrictSelection: true,
		Read:            identityRead,
		Extract: func(payload string) string {
			return tlv.ScanTag(payload, tagAFIS)
		},
	}
}

// MetadataFile is the operation reading the manufacturer metadata image from
// which serial and reference numbers are cut. Lenient: the card manager
// selection warns on some profiles.
func MetadataFile() Operation {
	return Operation{
		Name:      "read card serial",
		Selection: selectMetadataFile,
		Read:      identityRead,
	}
}
