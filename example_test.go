package gdprconsent_test

import (
	"fmt"
	"time"

	"github.com/unkn0wn-root/gdprconsent"
)

func ExampleDecode() {
	v, err := gdprconsent.Decode("BOEFBi5OEFBi5AHABDENAI4AAAB9vABAASA")
	if err != nil {
		panic(err)
	}
	fmt.Println(v.CmpID, v.ConsentLanguage, v.MaxVendorID, v.VendorConsent.Has(9))
	// Output: 7 en 2011 false
}

// Decode a consent string, withdraw consent for vendor 10, stamp the update
// time, and re-encode.
func Example_modifyConsent() {
	v, err := gdprconsent.Decode("BOEFEAyOEFEAyAHABDENAI4AAAB9vABAASA")
	if err != nil {
		panic(err)
	}

	v.LastUpdated = time.Date(2018, 5, 11, 12, 0, 0, 0, time.UTC)
	v.VendorConsent.Clear(10)

	s, err := v.Encode()
	if err != nil {
		panic(err)
	}
	fmt.Println(s)
	// Output: BOEFEAyONlzmAAHABDENAI4AAAB9vABgASABQA
}
