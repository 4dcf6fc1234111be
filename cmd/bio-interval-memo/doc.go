/*
bio-interval-memo inspects and exercises the alignment memoization index.

  bio-interval-memo query -bed done.bed [-all] chr1:100-200 chr2:5

reports, for each region, whether any interval recorded in done.bed overlaps
it.

  bio-interval-memo export -bed done.bed [-out index.tsv]

writes the index as TSV, one line per interval in tree order, including the
balance factor, cached max end and depth of each node.

  bio-interval-memo stats [-bed done.bed] [-random 50 -seed 1]

prints per-contig tree size, height and rotation counts, after auditing every
tree.

  bio-interval-memo align -ref ref.fa [-bed done.bed] [-window 64] targets.fa chr1:1-1000

aligns each target sequence against the region window by window, skipping
windows already recorded for that target.
*/
package main
