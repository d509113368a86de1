// Package section defines the fixed header of the profile container.
//
// # Container Layout
//
// All integers are little-endian:
//
//	Offset | Field       | Type             | Description
//	-------|-------------|------------------|------------------------------------------
//	0      | Version     | uint8            | container version, always 3
//	1      | TotalLength | uint32           | number of float32 values in the payload
//	5      | Checksum    | uint32           | Adler-32 over the catalog's packed lengths
//	9      | Payload     | float32[Total]   | one segment per feature, in catalog order
//
// The payload carries no delimiters: segment boundaries come from the feature catalog the
// container is read with, and the checksum ties the two together.
package section
