// Package main provides the imagenn command line tool. It edits image pixels, trains
// the small dense and convolutional classifiers of the presets on MNIST style data,
// evaluates and predicts with stored weights, and plots learning curves.
package main
