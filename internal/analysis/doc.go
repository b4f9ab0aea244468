// Package analysis looks for periodic structure in recorded frame series.
//
// A pointer sweeping back and forth across the field makes the connection
// count rise and fall with it:
//
//	ps := analysis.PowerSpectrum(links)
//	if peak, ok := analysis.Dominant(ps, len(links)); ok {
//	    fmt.Printf("period: %.1f frames\n", peak.Period)
//	}
package analysis
