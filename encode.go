package gdprconsent

import (
	"encoding/base64"

	"github.com/unkn0wn-root/gdprconsent/internal/bits"
)

// Encode serializes the record into its canonical wire string: URL-safe,
// unpadded base64 over the bit-packed v1 layout, with the smaller of the
// bitfield and range vendor payload encodings. The record is not modified;
// timestamps finer than 100ms are truncated on the wire only.
func (v *V1) Encode() (string, error) {
	if err := v.validate(); err != nil {
		return "", err
	}

	vendors := v.VendorConsent
	if vendors == nil {
		vendors = NewBitSet()
	}

	// With at least half the IDs consented, "consented" becomes the range
	// default and the entries list the withheld IDs. Floor division on
	// purpose: other implementations of this format do the same, and the
	// midpoint behavior is wire-visible.
	defaultConsent := vendors.Len() >= int(v.MaxVendorID)/2

	var entries []rangeEntry
	var rangeBits int
	if defaultConsent {
		entries, rangeBits = falseRange(vendors, int(v.MaxVendorID))
	} else {
		entries, rangeBits = trueRange(vendors)
	}

	// The bitfield costs exactly MaxVendorID bits. Ties favor the bitfield.
	useBitfield := int(v.MaxVendorID) <= rangeBits

	w := bits.NewWriter()
	w.Write(versionBits, version1)
	w.Write(timestampBits, uint64(toDeciseconds(v.Created)))
	w.Write(timestampBits, uint64(toDeciseconds(v.LastUpdated)))
	w.Write(cmpIDBits, uint64(v.CmpID))
	w.Write(cmpVersionBits, uint64(v.CmpVersion))
	w.Write(screenBits, uint64(v.ConsentScreen))
	w.Write(languageBits, uint64(v.ConsentLanguage[0]-'a'))
	w.Write(languageBits, uint64(v.ConsentLanguage[1]-'a'))
	w.Write(listVersionBits, uint64(v.VendorListVersion))
	w.WriteBytes(v.purposesBitmap())
	w.Write(maxVendorIDBits, uint64(v.MaxVendorID))

	if useBitfield {
		w.Write(1, 0)
		for id := 1; id <= int(v.MaxVendorID); id++ {
			w.WriteBool(vendors.Has(id))
		}
	} else {
		// Unreachable for any 16-bit MaxVendorID (the bitfield wins long
		// before 4096 entries), but the count field is only 12 bits wide.
		if len(entries) > maxNumEntries {
			return "", &FieldOverflowError{Field: "num_entries", Value: uint64(len(entries)), Max: maxNumEntries}
		}
		w.Write(1, 1)
		w.WriteBool(defaultConsent)
		w.Write(numEntriesBits, uint64(len(entries)))
		for _, e := range entries {
			if e.kind == entrySingle {
				w.Write(1, 0)
				w.Write(vendorIDBits, uint64(e.start))
			} else {
				w.Write(1, 1)
				w.Write(vendorIDBits, uint64(e.start))
				w.Write(vendorIDBits, uint64(e.end))
			}
		}
	}

	return base64.RawURLEncoding.EncodeToString(w.Bytes()), nil
}

func (v *V1) validate() error {
	if len(v.ConsentLanguage) != 2 {
		return &InvalidLanguageError{Language: v.ConsentLanguage, Detail: "length must be 2"}
	}
	for i := 0; i < 2; i++ {
		if c := v.ConsentLanguage[i]; c < 'a' || c > 'z' {
			return &InvalidLanguageError{Language: v.ConsentLanguage, Detail: "characters must be in a..z"}
		}
	}

	fields := []struct {
		name  string
		value uint64
		max   uint64
	}{
		{"created", uint64(toDeciseconds(v.Created)), maxTimestamp},
		{"last_updated", uint64(toDeciseconds(v.LastUpdated)), maxTimestamp},
		{"cmp_id", uint64(v.CmpID), 1<<cmpIDBits - 1},
		{"cmp_version", uint64(v.CmpVersion), 1<<cmpVersionBits - 1},
		{"consent_screen", uint64(v.ConsentScreen), 1<<screenBits - 1},
		{"vendor_list_version", uint64(v.VendorListVersion), 1<<listVersionBits - 1},
	}
	for _, f := range fields {
		if f.value > f.max {
			return &FieldOverflowError{Field: f.name, Value: f.value, Max: f.max}
		}
	}

	if v.PurposesAllowed != nil {
		if m := v.PurposesAllowed.Max(); m > maxPurposeID {
			return &FieldOverflowError{Field: "purposes_allowed", Value: uint64(m), Max: maxPurposeID}
		}
	}
	if v.VendorConsent != nil {
		if m := v.VendorConsent.Max(); m > int(v.MaxVendorID) {
			return &FieldOverflowError{Field: "vendor_consent", Value: uint64(m), Max: uint64(v.MaxVendorID)}
		}
	}
	return nil
}

// purposesBitmap renders PurposesAllowed as the fixed 3-byte wire bitmap.
func (v *V1) purposesBitmap() []byte {
	var buf [purposesBits / 8]byte
	if v.PurposesAllowed == nil {
		return buf[:]
	}
	for id := range v.PurposesAllowed.All() {
		buf[(id-1)/8] |= 1 << (7 - uint(id-1)&7)
	}
	return buf[:]
}
