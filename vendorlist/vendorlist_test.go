package vendorlist

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

const sampleJSON = `{
	"vendorListVersion": 8,
	"lastUpdated": "2018-05-30T16:00:15Z",
	"purposes": [
		{"id": 2, "name": "Personalisation", "description": "..."},
		{"id": 1, "name": "Information storage and access", "description": "..."}
	],
	"features": [
		{"id": 1, "name": "Matching Data to Offline Sources", "description": "..."}
	],
	"vendors": [
		{"id": 32, "name": "AppNexus", "policyUrl": "https://www.appnexus.com/platform-privacy-policy",
		 "purposeIds": [1, 2], "legIntPurposeIds": [], "featureIds": [1]},
		{"id": 8, "name": "Emerse", "policyUrl": "https://www.emerse.com/privacy-policy/",
		 "purposeIds": [1], "legIntPurposeIds": [2], "featureIds": []}
	]
}`

func mustUnmarshal(t *testing.T, s string) *VendorList {
	t.Helper()
	l := &VendorList{}
	if err := json.Unmarshal([]byte(s), l); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return l
}

func TestUnmarshalRekeysByID(t *testing.T) {
	l := mustUnmarshal(t, sampleJSON)

	if l.Version != 8 {
		t.Fatalf("version: got %d want 8", l.Version)
	}
	if want := time.Date(2018, 5, 30, 16, 0, 15, 0, time.UTC); !l.LastUpdated.Equal(want) {
		t.Fatalf("lastUpdated: got %v want %v", l.LastUpdated, want)
	}
	if len(l.Purposes) != 2 || len(l.Features) != 1 || len(l.Vendors) != 2 {
		t.Fatalf("collection sizes: %d/%d/%d", len(l.Purposes), len(l.Features), len(l.Vendors))
	}

	appnexus, ok := l.Vendors[32]
	if !ok {
		t.Fatalf("vendor 32 not keyed")
	}
	if appnexus.Name != "AppNexus" || len(appnexus.PurposeIDs) != 2 {
		t.Fatalf("vendor 32: %+v", appnexus)
	}
	if p, ok := l.Purposes[2]; !ok || p.Name != "Personalisation" {
		t.Fatalf("purpose 2: %+v ok=%v", p, ok)
	}
}

func TestMarshalEmitsSortedLists(t *testing.T) {
	// input arrays are deliberately unsorted; serialized order is derived
	l := mustUnmarshal(t, sampleJSON)

	out, err := json.Marshal(l)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(out)

	if i, j := strings.Index(s, `"id":8`), strings.Index(s, `"id":32`); i == -1 || j == -1 || i > j {
		t.Fatalf("vendors not sorted ascending by ID: %s", s)
	}
	if i, j := strings.Index(s, "Information storage"), strings.Index(s, "Personalisation"); i == -1 || j == -1 || i > j {
		t.Fatalf("purposes not sorted ascending by ID: %s", s)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	l := mustUnmarshal(t, sampleJSON)
	out, err := json.Marshal(l)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	back := mustUnmarshal(t, string(out))

	if back.Version != l.Version || len(back.Vendors) != len(l.Vendors) {
		t.Fatalf("round trip drifted: %+v", back)
	}
	for id, v := range l.Vendors {
		got, ok := back.Vendors[id]
		if !ok || got.Name != v.Name || got.PolicyURL != v.PolicyURL {
			t.Fatalf("vendor %d: got %+v want %+v", id, got, v)
		}
	}
}
