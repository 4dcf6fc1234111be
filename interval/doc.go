/*Package interval holds the coordinate type and ingestion helpers shared by
  the memoization index: closed intervals on named contigs, samtools-style
  region strings, and BED files.
  Unlike a BED union, intervals read here are never merged; every record is
  kept so that it can carry its own payload.
  It assumes every position fits in a PosType, which is currently defined as
  int32 since that's what BAM files are limited to.
*/
package interval
