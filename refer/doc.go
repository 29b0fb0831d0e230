// Package refer disguises encoded DNA strings as genomic annotation
// data and recovers them again. Both directions are fully offline.
//
// An encoded string is split into 8-base chunks and each chunk is
// replaced by a real hg38 genome coordinate drawn from a lookup table,
// producing a standard BED file that is indistinguishable from routine
// bioinformatics output. Decoding reverses the substitution with the
// table's reverse index.
//
// # Table File Format
//
// The lookup table is a little-endian binary file produced by the
// dendec-buildtable tool and loaded at runtime:
//
//	offset  len  field
//	0       4    magic 0x44 0x52 0x46 0x54 ("DRFT")
//	4       1    version, currently 1
//	5       2    chromosome count, uint16
//	7       var  accession strings, [len uint8][UTF-8 bytes] each
//	...     var  65,536 entries in 8-mer index order:
//	             [count uint8] then count coordinates of
//	             [chrom uint8][start uint32][strand uint8]
//
// The 8-mer index is the base-4 value of the chunk with A=0, T=1, G=2,
// C=3. This fixed ordering is unrelated to the password-derived
// alphabet used by the codec; refer treats the symbol string as opaque
// text.
package refer
