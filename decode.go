package gdprconsent

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/unkn0wn-root/gdprconsent/internal/bits"
)

// Decode parses a vendor consent string into a V1 record. Both the standard
// and the URL-safe base64 alphabets are accepted, with or without padding;
// historical producers vary.
func Decode(s string) (*V1, error) {
	raw, err := decodeBase64(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBase64, err)
	}

	r := bits.NewReader(raw)
	version, err := r.Read(versionBits)
	if err != nil {
		return nil, ErrUnexpectedEnd
	}
	if version != version1 {
		return nil, &UnsupportedVersionError{Version: uint8(version)}
	}

	v, err := parseV1(r)
	if err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, ErrUnexpectedEnd
		}
		return nil, err
	}
	return v, nil
}

func decodeBase64(s string) ([]byte, error) {
	s = strings.TrimRight(s, "=")
	enc := base64.RawURLEncoding
	if strings.ContainsAny(s, "+/") {
		enc = base64.RawStdEncoding
	}
	return enc.DecodeString(s)
}

func parseV1(r *bits.Reader) (*V1, error) {
	created, err := r.Read(timestampBits)
	if err != nil {
		return nil, err
	}
	lastUpdated, err := r.Read(timestampBits)
	if err != nil {
		return nil, err
	}
	cmpID, err := r.Read(cmpIDBits)
	if err != nil {
		return nil, err
	}
	cmpVersion, err := r.Read(cmpVersionBits)
	if err != nil {
		return nil, err
	}
	screen, err := r.Read(screenBits)
	if err != nil {
		return nil, err
	}

	var lang [2]byte
	for i := range lang {
		c, err := r.Read(languageBits)
		if err != nil {
			return nil, err
		}
		lang[i] = byte(c) + 'a'
	}

	listVersion, err := r.Read(listVersionBits)
	if err != nil {
		return nil, err
	}

	// fixed 3-byte purposes bitmap; bit i (MSB first) is purpose i+1
	purposesRaw, err := r.Read(purposesBits)
	if err != nil {
		return nil, err
	}
	purposes := NewBitSet()
	for i := 0; i < maxPurposeID; i++ {
		if purposesRaw>>(maxPurposeID-1-i)&1 == 1 {
			purposes.Set(i + 1)
		}
	}

	maxVendorID, err := r.Read(maxVendorIDBits)
	if err != nil {
		return nil, err
	}

	isRange, err := r.ReadBool()
	if err != nil {
		return nil, err
	}
	var vendors *BitSet
	if isRange {
		vendors, err = parseRange(r, int(maxVendorID))
	} else {
		vendors, err = parseBitfield(r, int(maxVendorID))
	}
	if err != nil {
		return nil, err
	}

	return &V1{
		Created:           fromDeciseconds(int64(created)),
		LastUpdated:       fromDeciseconds(int64(lastUpdated)),
		CmpID:             uint16(cmpID),
		CmpVersion:        uint16(cmpVersion),
		ConsentScreen:     uint8(screen),
		ConsentLanguage:   string(lang[:]),
		VendorListVersion: uint16(listVersion),
		PurposesAllowed:   purposes,
		MaxVendorID:       uint16(maxVendorID),
		VendorConsent:     vendors,
	}, nil
}

// parseBitfield reads a dense maxVendorID-bit consent bitmap. Full bytes
// first, then exactly maxVendorID%8 trailing bits; the trailing group is
// never padded to a whole byte.
func parseBitfield(r *bits.Reader, maxVendorID int) (*BitSet, error) {
	vendors := NewBitSet()

	full := maxVendorID / 8
	for i := 0; i < full; i++ {
		b, err := r.Read(8)
		if err != nil {
			return nil, err
		}
		for j := 0; j < 8; j++ {
			if b>>(7-j)&1 == 1 {
				vendors.Set(i*8 + j + 1)
			}
		}
	}

	if rem := uint(maxVendorID % 8); rem > 0 {
		b, err := r.Read(rem)
		if err != nil {
			return nil, err
		}
		for j := 0; j < int(rem); j++ {
			if b>>(rem-1-uint(j))&1 == 1 {
				vendors.Set(full*8 + j + 1)
			}
		}
	}

	return vendors, nil
}

// parseRange reads a default-consent bit and a list of single/span entries,
// then materializes the dense set. Entries flip covered IDs to the opposite
// of the default; overlapping entries are idempotent since every flip targets
// the same value.
func parseRange(r *bits.Reader, maxVendorID int) (*BitSet, error) {
	defaultConsent, err := r.ReadBool()
	if err != nil {
		return nil, err
	}
	numEntries, err := r.Read(numEntriesBits)
	if err != nil {
		return nil, err
	}

	vendors := NewBitSet()
	if defaultConsent {
		for id := 1; id <= maxVendorID; id++ {
			vendors.Set(id)
		}
	}

	apply := func(id int) {
		if defaultConsent {
			vendors.Clear(id)
		} else {
			vendors.Set(id)
		}
	}

	for i := uint64(0); i < numEntries; i++ {
		isSpan, err := r.ReadBool()
		if err != nil {
			return nil, err
		}
		start, err := r.Read(vendorIDBits)
		if err != nil {
			return nil, err
		}
		end := start
		if isSpan {
			end, err = r.Read(vendorIDBits)
			if err != nil {
				return nil, err
			}
		}
		switch {
		case start == 0:
			return nil, &MalformedRecordError{Detail: "range entry references vendor ID 0"}
		case start > end:
			return nil, &MalformedRecordError{Detail: fmt.Sprintf("range entry %d-%d is inverted", start, end)}
		case end > uint64(maxVendorID):
			return nil, &MalformedRecordError{Detail: fmt.Sprintf("range entry exceeds max vendor ID %d", maxVendorID)}
		}
		for id := start; id <= end; id++ {
			apply(int(id))
		}
	}

	return vendors, nil
}
