/*Package interval reads scored BED intervals and rewrites BED annotations.
  Coordinates follow the BED convention: 0-based, half-open [start, end).
  Positions are int64; unlike BAM-derived data, BED inputs may describe
  arbitrarily long contigs.
  "browser" and "track" declarations and '#' comments are structural lines:
  readers skip them and rewriters pass them through unchanged.
*/
package interval
