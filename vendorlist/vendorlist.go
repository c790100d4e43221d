// Package vendorlist models the public IAB global vendor list: the JSON
// manifest of vendor/purpose/feature metadata that consent strings reference
// by ID. In memory every collection is keyed by ID; on the wire the manifest
// carries plain arrays. Serialized array order is a derived, sorted view
// (ascending by ID), not whatever order a producer originally submitted.
package vendorlist

import (
	"cmp"
	"encoding/json"
	"slices"
	"time"
)

type Purpose struct {
	ID          uint8  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type Feature struct {
	ID          uint8  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type Vendor struct {
	ID               uint16  `json:"id"`
	Name             string  `json:"name"`
	PolicyURL        string  `json:"policyUrl"`
	PurposeIDs       []uint8 `json:"purposeIds"`
	LegIntPurposeIDs []uint8 `json:"legIntPurposeIds"`
	FeatureIDs       []uint8 `json:"featureIds"`
}

// VendorList is one version of the global vendor list.
type VendorList struct {
	Version     uint16
	LastUpdated time.Time
	Purposes    map[uint8]Purpose
	Features    map[uint8]Feature
	Vendors     map[uint16]Vendor
}

// wireList is the list-shaped JSON representation.
type wireList struct {
	Version     uint16    `json:"vendorListVersion"`
	LastUpdated time.Time `json:"lastUpdated"`
	Purposes    []Purpose `json:"purposes"`
	Features    []Feature `json:"features"`
	Vendors     []Vendor  `json:"vendors"`
}

func (l *VendorList) UnmarshalJSON(b []byte) error {
	var w wireList
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	l.Version = w.Version
	l.LastUpdated = w.LastUpdated
	l.Purposes = keyByID(w.Purposes, func(p Purpose) uint8 { return p.ID })
	l.Features = keyByID(w.Features, func(f Feature) uint8 { return f.ID })
	l.Vendors = keyByID(w.Vendors, func(v Vendor) uint16 { return v.ID })
	return nil
}

func (l *VendorList) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireList{
		Version:     l.Version,
		LastUpdated: l.LastUpdated,
		Purposes:    sortedByID(l.Purposes, func(p Purpose) uint8 { return p.ID }),
		Features:    sortedByID(l.Features, func(f Feature) uint8 { return f.ID }),
		Vendors:     sortedByID(l.Vendors, func(v Vendor) uint16 { return v.ID }),
	})
}

func keyByID[K comparable, V any](items []V, id func(V) K) map[K]V {
	m := make(map[K]V, len(items))
	for _, it := range items {
		m[id(it)] = it
	}
	return m
}

func sortedByID[K cmp.Ordered, V any](m map[K]V, id func(V) K) []V {
	out := make([]V, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	slices.SortFunc(out, func(a, b V) int { return cmp.Compare(id(a), id(b)) })
	return out
}
