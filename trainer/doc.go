// Package trainer provides the epoch callbacks used around sequential.Model.Fit.
// It checkpoints the weights whenever a monitored value improves, stops training
// once it stops improving, and resumes a run from a stored weight file.
package trainer
