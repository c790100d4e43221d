package gdprconsent

import "time"

// V1 is a version-1 vendor consent record.
type V1 struct {
	// Epoch time when the consent string was first created.
	// Decisecond (100ms) wire resolution.
	Created time.Time

	// Epoch time when the consent string was last updated.
	// Decisecond (100ms) wire resolution.
	LastUpdated time.Time

	// Consent Manager Provider ID that last updated the consent string. 12-bit.
	CmpID uint16

	// Consent Manager Provider version. 12-bit.
	CmpVersion uint16

	// Screen number in the CMP where consent was given. 6-bit.
	ConsentScreen uint8

	// Two-letter lowercase ISO 639-1 language code the CMP asked for consent in.
	ConsentLanguage string

	// Version of the vendor list used in the most recent update. 12-bit.
	VendorListVersion uint16

	// Purposes (IDs 1..24) the user has consented to.
	PurposesAllowed *BitSet

	// Highest vendor ID representable in VendorConsent. Bounds the domain of
	// whichever vendor payload encoding is chosen on the wire.
	MaxVendorID uint16

	// Vendor IDs (1..MaxVendorID) the user has consented to.
	VendorConsent *BitSet
}

// Field widths and derived limits of the v1 wire schema.
const (
	version1 = 1

	versionBits     = 6
	timestampBits   = 36
	cmpIDBits       = 12
	cmpVersionBits  = 12
	screenBits      = 6
	languageBits    = 6
	listVersionBits = 12
	purposesBits    = 24
	maxVendorIDBits = 16
	numEntriesBits  = 12
	vendorIDBits    = 16

	maxPurposeID  = purposesBits
	maxTimestamp  = 1<<timestampBits - 1
	maxNumEntries = 1<<numEntriesBits - 1
)

const (
	decisPerSec   = 10
	nanosPerDecis = 100_000_000
)

// toDeciseconds truncates t to the 100ms wire resolution.
func toDeciseconds(t time.Time) int64 {
	return t.Unix()*decisPerSec + int64(t.Nanosecond())/nanosPerDecis
}

func fromDeciseconds(d int64) time.Time {
	return time.Unix(d/decisPerSec, d%decisPerSec*nanosPerDecis).UTC()
}
