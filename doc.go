// Package gdprconsent implements the IAB Europe v1 vendor consent string:
// a base64-armored, bit-packed binary record of a user's GDPR consent
// decisions. Decode and Encode are pure functions over their input;
// re-encoding a decoded record reproduces the wire string byte for byte.
//
// Components:
//   - Decode / (*V1).Encode: the bidirectional transcoder between the wire
//     string and the V1 record. Encode picks the smaller of the two vendor
//     payload encodings (dense bitfield vs. range list).
//   - BitSet: dense 1-based ID set used for purposes and vendor consent.
//   - vendorlist: companion model for the public vendor-list JSON manifest,
//     with an optional caching HTTP client (see the vendorlist, codec and
//     store subpackages).
//
// Wire layout (bits, big-endian, MSB first):
//
//	version(6)=1 | created(36) | lastUpdated(36) | cmpID(12) | cmpVersion(12) |
//	consentScreen(6) | language(6+6) | vendorListVersion(12) | purposes(24) |
//	maxVendorID(16) | selector(1) | payload(...) | zero padding to byte boundary
//
// Timestamps are stored as deciseconds since the Unix epoch; anything finer
// than 100ms is truncated on encode. Decoding accepts both standard and
// URL-safe base64, padded or not; encoding always emits URL-safe unpadded.
package gdprconsent
