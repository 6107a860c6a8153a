// Package analysis characterizes how a rendered animation changes over time.
//
// It works on the per-frame color statistics of a run:
//
//   - [PowerSpectrum]: magnitude spectrum of a series with its mean removed
//   - [DominantPeriod]: the strongest repeating period, in frames
//   - [Flicker]: mean absolute change between consecutive frames
//   - [Analyze]: all of the above for every color channel and luminance
package analysis
